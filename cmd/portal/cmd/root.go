package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/intranet-portal/portal-api/internal/pkg/config"
	"github.com/intranet-portal/portal-api/pkg/logger"
)

const serviceName = "portal-api"

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Intranet portal API",
	Long: `Portal serves the intranet web client: directory login, the home page
carousel, birthdays and the resource catalog. It also runs the directory
synchronization job and database migrations.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		level := cfg.LogLevel
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			level = "debug"
		}
		log = logger.Init(logger.Options{
			Level:   level,
			Pretty:  cfg.LogPretty,
			Service: serviceName,
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (overrides LOG_LEVEL)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
