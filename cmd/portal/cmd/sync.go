package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/intranet-portal/portal-api/internal/core/service"
	"github.com/intranet-portal/portal-api/internal/infrastructure/db/relational"
	"github.com/intranet-portal/portal-api/pkg/logger"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize directory accounts into the database",
	Long: `Searches the directory for person accounts and upserts their roles, areas
and users. Existing role assignments are kept. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer closeDB(db)

		dir, err := newDirectory()
		if err != nil {
			return err
		}

		workers, _ := cmd.Flags().GetInt("workers")
		if workers <= 0 {
			workers = cfg.Sync.Workers
		}

		job := service.NewDirectorySyncService(dir, relational.NewDirectoryRepository(db), service.DirectorySyncConfig{
			Filter:      cfg.Directory.UserFilter,
			DefaultRole: cfg.Sync.DefaultRole,
			Workers:     workers,
		}, logger.Component("sync"))

		report, err := job.Run(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "found=%d processed=%d skipped=%d failed=%d\n", report.Found, report.Processed, report.Skipped, report.Failed)
		return nil
	},
}

func init() {
	syncCmd.Flags().Int("workers", 0, "Number of sync workers (env: SYNC_WORKERS)")
	rootCmd.AddCommand(syncCmd)
}
