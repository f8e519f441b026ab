package cmd

import (
	"fmt"
	"os"

	"github.com/issuetrack-api/config"
	"github.com/issuetrack-api/database"
	"github.com/issuetrack-api/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "issuetrack",
	Short: "Issue tracking API",
	Long:  `A project and issue tracker with membership based access control, a status workflow and a per issue audit trail.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded

		return logger.Init(logger.Config{
			Level:       cfg.LogLevel,
			Environment: cfg.Server.Env,
			ServiceName: cfg.ServiceName,
		})
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openMigrated connects to the configured database and brings the schema up to date
func openMigrated() (*gorm.DB, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
