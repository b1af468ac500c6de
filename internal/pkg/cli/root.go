package cli

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qtmops/coco-cloner/internal/pkg/env"
	"github.com/qtmops/coco-cloner/internal/pkg/interaction"
	"github.com/qtmops/coco-cloner/internal/pkg/log"
	"github.com/qtmops/coco-cloner/internal/pkg/options"
	"github.com/qtmops/coco-cloner/internal/pkg/remote"
	"github.com/qtmops/coco-cloner/internal/pkg/version"
)

const description = `
CoCo cloner

Clone collection configurations between workflow
phases of a QTM project.

Start with the "auth" sub-command to store a token,
then run "clone" to copy the source configuration
into an eligible phase.
`

const usageTemplate = `Usage:{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{else if .Runnable}}
  {{.UseLine}}{{end}}{{if gt (len .Aliases) 0}}

Aliases:`

type rootCommand struct {
	cmd          *cobra.Command
	envs         *env.Map            // ENVs from OS and ".env" files
	options      *options.Options    // parsed flags and env variables
	prompt       *interaction.Prompt // user interaction
	ctx          context.Context     // context for API requests
	api          *remote.QtmApi      // GetQtmApi should be used to initialize
	start        time.Time           // cmd start time
	initialized  bool                // init method was called
	workingDir   string              // ".env" files and relative paths are resolved here
	logFile      *os.File            // log file instance
	logFileClear bool                // is log file temporary? if yes, it will be removed at the end, if no error occurs
	logger       *zap.SugaredLogger  // log to console and logFile
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, prompt *interaction.Prompt) *rootCommand {
	root := &rootCommand{
		options: options.NewOptions(),
		prompt:  prompt,
		ctx:     context.Background(),
		start:   time.Now(),
	}

	// Command definition
	root.cmd = &cobra.Command{
		Use:          path.Base(os.Args[0]), // name of the binary
		Version:      version.Version(),
		Short:        description,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return root.cmd.Help()
		},
	}

	// Setup in/out
	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Setup templates
	root.cmd.SetVersionTemplate("{{.Version}}")
	root.cmd.SetUsageTemplate(
		regexp.MustCompile(`Usage:(.|\n)*Aliases:`).ReplaceAllString(root.cmd.UsageTemplate(), usageTemplate),
	)

	// Persistent flags for all sub-commands
	root.options.BindPersistentFlags(root.cmd.PersistentFlags())
	root.cmd.PersistentFlags().BoolP("help", "h", false, "print help for command")

	// Root command flags
	root.cmd.Flags().SortFlags = true
	root.cmd.Flags().BoolP("version", "V", false, "print version")

	// Init when flags are parsed
	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return root.init(cmd)
	}

	// Sub-commands
	root.cmd.AddCommand(
		authCommand(root),
		phasesCommand(root),
		cloneCommand(root),
		transformCommand(root),
	)

	return root
}

// Execute command or sub-command.
func (root *rootCommand) Execute() (exitCode int) {
	defer root.tearDown()
	if err := root.cmd.Execute(); err != nil {
		// Init, it can be uninitialized, if error occurred before PersistentPreRun call
		_ = root.init(root.cmd)
		// Error is already logged
		return 1
	}
	return 0
}

func (root *rootCommand) ValidateOptions(required ...string) error {
	if err := root.options.Validate(required...); err != nil {
		root.logger.Warn(err.Error())
		return fmt.Errorf("invalid configuration, see output above")
	}
	return nil
}

// GetQtmApi returns API and initialize it first time.
func (root *rootCommand) GetQtmApi() (*remote.QtmApi, error) {
	if root.api == nil {
		baseUrl, err := remote.BaseUrl(root.options.Environment)
		if err != nil {
			return nil, err
		}
		root.api = remote.NewQtmApi(root.ctx, baseUrl, root.logger, root.options.VerboseApi).
			WithToken(root.options.AuthToken)
	}
	return root.api, nil
}

// tearDown makes clean-up after command execution.
func (root *rootCommand) tearDown() {
	if err := recover(); err == nil {
		if root.logFile != nil {
			if closeErr := root.logFile.Close(); closeErr != nil {
				panic(fmt.Errorf("cannot close log file \"%s\": %w", root.options.LogFilePath, closeErr))
			}
		}

		// No error -> remove log file if temporary
		if root.logFileClear {
			// nolint: forbidigo
			if removeErr := os.Remove(root.options.LogFilePath); removeErr != nil {
				panic(fmt.Errorf("cannot remove temp log file \"%s\": %w", root.options.LogFilePath, removeErr))
			}
		}
	} else {
		// Error -> log and close the log file, it is preserved for the user
		root.logger.Debugf("Unexpected panic: %s", err)
		root.logger.Debugf("Trace:\n" + string(debug.Stack()))
		root.logger.Info("Unexpected error, this is not your fault.")
		if len(root.options.LogFilePath) > 0 {
			root.logger.Infof(`Details can be found in the log file "%s".`, root.options.LogFilePath)
		}
		if root.logFile != nil {
			_ = root.logFile.Close()
		}
		os.Exit(1)
	}
}

// init sets envs, logger and options after flags are parsed.
func (root *rootCommand) init(cmd *cobra.Command) (err error) {
	if root.initialized {
		return
	}

	// Run only once
	root.initialized = true

	// Logger must always be set up, even if there is a panic somewhere
	defer func() {
		if root.logger == nil {
			root.setupLogger()
		}
	}()

	// Working directory
	root.workingDir, _ = cmd.Flags().GetString("working-dir")
	if root.workingDir == "" {
		// nolint: forbidigo
		if root.workingDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	// ENVs from OS, completed from ".env" files in the working directory
	root.envs = env.LoadDotEnv(log.NewNopLogger(), env.FromOs(), root.workingDir)

	// Load values from flags and envs
	if err = root.options.Load(cmd.Flags(), root.envs); err != nil {
		return err
	}

	// Setup logger
	root.setupLogger()
	root.logDebugInfo()
	return nil
}

// setupLogger according to the options.
func (root *rootCommand) setupLogger() {
	logFile, logFileErr := root.getLogFile()
	root.logger = log.NewLogger(root.cmd.OutOrStdout(), root.cmd.ErrOrStderr(), logFile, root.options.Verbose)
	root.logFile = logFile

	// Warn if user specified log file and it cannot be opened
	if logFileErr != nil && !root.logFileClear {
		root.logger.Warnf("Cannot open log file: %s", logFileErr)
	}
}

func (root *rootCommand) logDebugInfo() {
	root.logger.Debug(root.cmd.Version)
	root.logger.Debugf("Running command %v", os.Args)
	root.logger.Debug(root.options.Dump())
}

// Get log file defined in the flags or create a temp file.
func (root *rootCommand) getLogFile() (logFile *os.File, logFileErr error) {
	if len(root.options.LogFilePath) > 0 {
		root.logFileClear = false // log file defined by user will be preserved
	} else {
		// Generate a unique hash if multiple instances start simultaneously
		randomHash := ``
		randomBytes := make([]byte, 6)
		if _, err := rand.Read(randomBytes); err == nil {
			randomHash = fmt.Sprintf(`-%x`, randomBytes)
		}

		// nolint: forbidigo
		root.options.LogFilePath = filepath.Join(os.TempDir(), fmt.Sprintf("coco-cloner-%d%s.txt", time.Now().Unix(), randomHash))
		root.logFileClear = true // temp log file will be removed, it is preserved only in case of error
	}

	// nolint: forbidigo
	logFile, logFileErr = os.OpenFile(root.options.LogFilePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if logFileErr != nil {
		root.options.LogFilePath = ""
		return nil, logFileErr
	}
	return logFile, nil
}
