package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Files in load order, values from the first file take precedence.
func Files() []string {
	return []string{
		".env.local",
		".env",
	}
}

// LoadDotEnv loads envs from ".env" files if they exist. Existing envs take precedence.
func LoadDotEnv(logger *zap.SugaredLogger, osEnvs *Map, dir string) *Map {
	envs := osEnvs.Clone()

	for _, file := range Files() {
		path := filepath.Join(dir, file)
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			// Expected file, found dir
			continue
		case err != nil && os.IsNotExist(err):
			continue
		case err != nil:
			logger.Warnf(`Cannot check if path "%s" exists: %s`, path, err)
			continue
		}

		fileEnvs, err := LoadEnvFile(path)
		if err != nil {
			logger.Warnf(`%s`, err.Error())
			continue
		}
		logger.Debugf(`Loaded env file "%s"`, path)

		// Merge ENVs, existing keys take precedence.
		envs.Merge(fileEnvs, false)
	}

	return envs
}

func LoadEnvFile(path string) (*Map, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(`cannot read env file "%s": %w`, path, err)
	}
	envs, err := LoadEnvString(string(content))
	if err != nil {
		return nil, fmt.Errorf(`cannot parse env file "%s": %w`, path, err)
	}
	return envs, nil
}

func LoadEnvString(str string) (*Map, error) {
	envsMap, err := godotenv.Unmarshal(str)
	if err != nil {
		return nil, err
	}
	return FromMap(envsMap), nil
}

// SaveKey writes the key to the ".env" file in dir, other keys are preserved.
func SaveKey(dir string, key string, value string) error {
	path := filepath.Join(dir, ".env")

	data := make(map[string]string)
	if _, err := os.Stat(path); err == nil {
		loaded, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf(`cannot read env file "%s": %w`, path, err)
		}
		data = loaded
	}

	data[key] = value
	if err := godotenv.Write(data, path); err != nil {
		return fmt.Errorf(`cannot write env file "%s": %w`, path, err)
	}
	return nil
}
