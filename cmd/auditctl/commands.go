package main

import (
	"context"
	"fmt"

	"github.com/Itish41/asset-audit/initializers"
	services "github.com/Itish41/asset-audit/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var planID string

// newApp is swapped in tests.
var newApp = initializers.NewApp

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := initializers.ConnectDB(cmd.Context(), cfg.Database, logger)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		return initializers.Migrate(db, cfg.Database.MigrationsPath, logger)
	},
}

var discrepanciesCmd = &cobra.Command{
	Use:   "discrepancies",
	Short: "List the unactioned discrepancies of an audit plan",
	Long: `Loads the plan's assets, actions and roster, classifies every unresolved
asset without an open corrective action and suggests assignees for each.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(app *initializers.App) error {
			ws := services.NewPlanWorkspace(app.Service, planID)
			if err := ws.Refresh(cmd.Context()); err != nil {
				return err
			}
			found := ws.Discrepancies()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			return renderDiscrepancies(cmd.OutOrStdout(), found, ws.Candidates)
		})
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create corrective actions for every new discrepancy of a plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(app *initializers.App) error {
			result, err := app.Service.BulkGenerate(cmd.Context(), planID)
			if result == nil {
				return err
			}
			if asJSON {
				if werr := writeJSON(cmd.OutOrStdout(), result); werr != nil {
					return werr
				}
			} else {
				renderGenerate(cmd.OutOrStdout(), result)
			}
			return err
		})
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send one reminder per assignee with open, dated actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(app *initializers.App) error {
			result, err := app.Service.SendReminders(cmd.Context(), planID)
			if result == nil {
				return err
			}
			if asJSON {
				if werr := writeJSON(cmd.OutOrStdout(), result); werr != nil {
					return werr
				}
			} else {
				renderReminders(cmd.OutOrStdout(), result)
			}
			return err
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{discrepanciesCmd, generateCmd, remindCmd} {
		c.Flags().StringVarP(&planID, "plan", "p", "", "audit plan id")
		_ = c.MarkFlagRequired("plan")
	}
}

func withApp(ctx context.Context, fn func(*initializers.App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Close()

	logger.Debug("running command", zap.String("plan_id", planID))
	return fn(app)
}
