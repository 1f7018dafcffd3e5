// Package cli implements the webutils command line.
package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dassana-io/web-utils/internal/app"
	"github.com/dassana-io/web-utils/internal/config"
	"github.com/dassana-io/web-utils/internal/logging"
)

// Version information (set via ldflags during build).
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// state is shared by every command of one invocation.
type state struct {
	configPath string
	logLevel   string
	dataDir    string

	cfg    config.Config
	logger zerolog.Logger
	closer io.Closer
}

// NewRootCmd builds the webutils command tree.
func NewRootCmd() *cobra.Command {
	st := &state{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "webutils",
		Short:         "Client web utilities",
		Long:          "webutils exercises the shared client utilities: shortcuts, theme sync, storage, the API client and formatting.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.closer != nil {
				_ = st.closer.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&st.configPath, "config", "c", os.Getenv(config.PathEnv), "config file (default ~/.config/webutils/config.toml)")
	flags.StringVar(&st.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&st.dataDir, "data-dir", "", "directory for local storage and the widget cache")

	root.AddCommand(
		newRunCmd(st),
		newThemeCmd(st),
		newCacheCmd(st),
		newFetchCmd(st),
		newLoginCmd(st),
		newLogoutCmd(st),
		newKeysCmd(st),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}

func (st *state) load(cmd *cobra.Command) error {
	cfg, err := config.Load(st.configPath)
	if err != nil {
		return err
	}
	if st.logLevel != "" {
		cfg.Log.Level = st.logLevel
	}
	if st.dataDir != "" {
		cfg.Paths.DataDir = st.dataDir
	}
	st.cfg = cfg
	return st.initLogger(cmd.ErrOrStderr())
}

func (st *state) initLogger(out io.Writer) error {
	if st.closer != nil {
		_ = st.closer.Close()
	}
	logger, closer, err := logging.New(logging.Options{
		Level: st.cfg.Log.Level,
		File:  st.cfg.Log.File,
		JSON:  st.cfg.Log.JSON,
		Out:   out,
	})
	if err != nil {
		return err
	}
	st.logger, st.closer = logger, closer
	return nil
}

// openApp builds the application without running it.
func (st *state) openApp() (*app.Application, error) {
	cfg := st.cfg
	return app.New(app.Options{Config: &cfg, Logger: st.logger})
}
