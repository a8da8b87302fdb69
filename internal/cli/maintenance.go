package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magicboy5300/exchange/internal/bootstrap"
	"github.com/magicboy5300/exchange/internal/cron"
	"github.com/magicboy5300/exchange/internal/db"
)

func migrateCmd(a *app) *cobra.Command {
	var attempts uint

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is not set")
			}
			conn, err := db.ConnectPostgres(cmdContext(cmd), a.cfg.DatabaseURL, attempts)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Migrate(conn); err != nil {
				return err
			}
			a.logger.Info("migrations applied")
			return nil
		},
	}
	cmd.Flags().UintVar(&attempts, "attempts", 5, "Connection attempts before giving up")
	return cmd
}

func pruneCmd(a *app) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Trim stored rate snapshots to the newest N",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			stores := bootstrap.InitStores(ctx, a.cfg, a.logger)
			defer stores.Close()

			targets := stores.Snapshots()
			if len(targets) == 0 {
				return errors.New("no snapshot store configured")
			}
			if keep <= 0 {
				return fmt.Errorf("--keep must be positive, got %d", keep)
			}
			return cron.NewRetentionPruner(targets, keep, 0, a.logger).RunOnce(ctx)
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 0, "Snapshots to keep (defaults to retention_keep)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if !cmd.Flags().Changed("keep") {
			keep = a.cfg.RetentionKeep
		}
	}
	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
