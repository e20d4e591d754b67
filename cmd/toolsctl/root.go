package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/skybi/tools-sys/internal/client"
	"github.com/skybi/tools-sys/internal/config"
	"github.com/skybi/tools-sys/internal/session"
	"github.com/skybi/tools-sys/internal/session/storage/file"
	"github.com/skybi/tools-sys/internal/session/storage/inmem"
	"github.com/skybi/tools-sys/internal/shell"
	"github.com/skybi/tools-sys/internal/view"
	"github.com/spf13/cobra"
)

// app holds everything a command needs; it is built before any command runs
type app struct {
	cfg       *config.ClientConfig
	verbose   bool
	ephemeral bool

	renderer *view.Renderer
	shell    *shell.Shell

	// sessionPath is empty if the session is kept in memory only
	sessionPath string
}

func rootCmd(cfg *config.ClientConfig) *cobra.Command {
	application := &app{cfg: cfg}

	cmd := &cobra.Command{
		Use:           "toolsctl",
		Short:         "Tools-Sys client",
		Long:          "Browse the Tools-Sys developer tool catalog and manage it as an administrator.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return application.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.APIURL, "api", cfg.APIURL, "base URL of the Tools-Sys API")
	flags.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "file the session is persisted to")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout of a single API request")
	flags.BoolVar(&application.ephemeral, "ephemeral", false, "keep the session in memory only")
	flags.BoolVarP(&application.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		loginCmd(application),
		logoutCmd(application),
		statusCmd(application),
		toolsCmd(application),
		toolCmd(application),
		adminCmd(application),
	)
	return cmd
}

func (application *app) setup(cmd *cobra.Command) error {
	if application.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var store session.Store
	if application.ephemeral {
		store = inmem.New()
	} else {
		fileStore, err := file.Open(application.cfg.SessionFile)
		if err != nil {
			return fmt.Errorf("opening the session file: %w", err)
		}
		store = fileStore
		application.sessionPath = fileStore.Path()
	}

	api := client.New(application.cfg.APIURL, application.cfg.Timeout)
	application.renderer = view.New(cmd.OutOrStdout())
	application.shell = shell.New(session.NewManager(store, api), api, application.renderer)
	return nil
}
