// Package options resolves CLI flags and environment variables into one
// configuration struct. Precedence: flag > ENV > default.
package options

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/qtmops/coco-cloner/internal/pkg/env"
	"github.com/qtmops/coco-cloner/internal/pkg/remote"
	"github.com/qtmops/coco-cloner/internal/pkg/utils"
)

// Fields that commands may require, see Validate.
const (
	FieldEnvironment = "environment"
	FieldProjectId   = "project-id"
	FieldAuthToken   = "auth-token"
	FieldUsername    = "username"
	FieldPassword    = "password"
)

// envNaming maps option keys to ENV variable names used by the original
// tooling, loaded from the OS environment and ".env" files.
var envNaming = map[string]string{ // nolint: gochecknoglobals
	"environment": "QTM_ENVIRONMENT",
	"project":     "PROJECT_ID",
	"token":       "AUTH_TOKEN",
	"username":    "AUTH_USERNAME",
	"password":    "AUTH_PASSWORD",
}

type Options struct {
	Verbose     bool   // print details
	VerboseApi  bool   // log each API request and response
	Environment string // qa, dev, staging or prod
	ProjectId   int
	AuthToken   string
	Username    string
	Password    string
	SourceFile  string // path to the source configuration JSON
	LogFilePath string // path to the log file
}

func NewOptions() *Options {
	return &Options{}
}

// BindPersistentFlags defines flags shared by all sub-commands.
func (o *Options) BindPersistentFlags(flags *pflag.FlagSet) {
	flags.SortFlags = true
	flags.BoolP("verbose", "v", false, "print details")
	flags.Bool("verbose-api", false, "log each API request and response")
	flags.StringP("environment", "e", remote.DefaultEnvironment, "target QTM environment")
	flags.IntP("project", "p", 0, "project ID")
	flags.StringP("token", "t", "", "bearer token, skips authentication")
	flags.StringP("log-file", "l", "", "path to a log file for details")
	flags.StringP("working-dir", "d", "", "use other working directory")
}

// Load options from flags and ENVs.
func (o *Options) Load(flags *pflag.FlagSet, envs *env.Map) error {
	v := viper.New()
	v.SetDefault("environment", remote.DefaultEnvironment)

	// ENVs, under the flag-like keys
	envValues := make(map[string]interface{})
	for key, envName := range envNaming {
		if value, found := envs.Lookup(envName); found {
			envValues[key] = value
		}
	}
	if err := v.MergeConfigMap(envValues); err != nil {
		return err
	}

	// Flags take precedence over ENVs
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	o.Verbose = v.GetBool("verbose")
	o.VerboseApi = v.GetBool("verbose-api")
	o.Environment = v.GetString("environment")
	o.ProjectId = v.GetInt("project")
	o.AuthToken = v.GetString("token")
	o.Username = v.GetString("username")
	o.Password = v.GetString("password")
	o.SourceFile = v.GetString("source")
	o.LogFilePath = v.GetString("log-file")
	return nil
}

// Dump options to a string, sensitive values are masked.
func (o *Options) Dump() string {
	masked := *o
	if masked.AuthToken != "" {
		masked.AuthToken = "*****"
	}
	if masked.Password != "" {
		masked.Password = "*****"
	}
	return fmt.Sprintf("Parsed options: %+v", masked)
}

// Validate the required fields, the error lists all problems at once.
func (o *Options) Validate(required ...string) error {
	errs := utils.NewMultiError()
	validate := validator.New()

	check := func(value interface{}, message string) {
		if err := validate.Var(value, "required"); err != nil {
			errs.AppendRaw(message)
		}
	}

	for _, field := range required {
		switch field {
		case FieldEnvironment:
			check(o.Environment, `- missing environment, set the QTM_ENVIRONMENT env or the "--environment" flag`)
		case FieldProjectId:
			check(o.ProjectId, `- missing project ID, set the PROJECT_ID env or the "--project" flag`)
		case FieldAuthToken:
			check(o.AuthToken, `- missing auth token, run the "auth" command or set the AUTH_TOKEN env`)
		case FieldUsername:
			check(o.Username, `- missing user name, set the AUTH_USERNAME env`)
		case FieldPassword:
			check(o.Password, `- missing password, set the AUTH_PASSWORD env`)
		default:
			panic(fmt.Errorf(`unexpected required field "%s"`, field))
		}
	}

	if errs.Len() > 0 {
		errs.SetPrefix("invalid configuration:")
		return errs
	}
	return nil
}
