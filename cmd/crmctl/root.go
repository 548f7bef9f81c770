package main

import (
	"log/slog"
	"os"

	"github.com/dangerclosesec/crmboard/internal/config"
	"github.com/spf13/cobra"
)

type options struct {
	configDir string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "crmctl",
		Short:         "Operate a crmboard deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "directory holding crmboard.yaml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newRemindersCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *options) loadConfig() (*config.Config, error) {
	if o.configDir != "" {
		return config.Load(o.configDir)
	}
	return config.Load()
}
