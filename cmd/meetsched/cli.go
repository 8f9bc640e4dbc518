package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikmy/meetsched/pkg/environment"
	"github.com/nikmy/meetsched/pkg/errors"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

type app struct {
	root *cobra.Command

	configPath string
	env        environment.Env
}

func newApp() *app {
	a := &app{}

	a.root = &cobra.Command{
		Use:   "meetsched",
		Short: "Shared meeting calendar with workload limits",
		Long: `meetsched books meetings into one shared calendar without
double-booking and enforces daily and weekly meeting load limits.`,
		SilenceUsage: true,
	}

	a.root.PersistentFlags().StringVar(&a.configPath, "config", "config.yaml", "path to the yaml config")
	a.root.PersistentFlags().Var(&a.env, "env", "environment (dev, prod), overrides the config")

	a.root.AddCommand(a.serveCmd())
	a.root.AddCommand(a.versionCmd())

	return a
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the telegram bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.configPath, a.env)
			if err != nil {
				return errors.WrapFail(err, "load config")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
			defer cancel()

			return serve(ctx, cfg)
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "meetsched %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *app) execute(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}
