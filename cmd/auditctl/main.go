package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Itish41/asset-audit/initializers"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool
	asJSON  bool

	cfg    *initializers.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "auditctl",
	Short: "Operate asset audit plans from the command line",
	Long: `auditctl runs the same operations as the HTTP API against the configured
database: detect discrepancies, generate corrective actions and send reminders.

Configuration comes from config.yaml and the environment, exactly as for the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializers.LoadEnv(); err != nil {
			return err
		}
		c, err := initializers.LoadConfig()
		if err != nil {
			return err
		}
		if verbose {
			c.Logger.Level = "debug"
		}
		logger, err = initializers.NewLogger(c.Logger)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(migrateCmd, discrepanciesCmd, generateCmd, remindCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
