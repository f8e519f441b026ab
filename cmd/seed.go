package cmd

import (
	"fmt"

	"github.com/issuetrack-api/database"
	"github.com/issuetrack-api/utils"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, projects and issues",
	Long:  `Creates an admin plus alice, bob and charlie, two projects and a few issues. Uses SEED_PASSWORD for every account, or prints a generated one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openMigrated()
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		password := cfg.SeedPassword
		generated := password == ""
		if generated {
			password = utils.GenerateSecurePassword(12)
		}

		result, err := database.Seed(db, password)
		if err != nil {
			return fmt.Errorf("seed failed: %w", err)
		}
		if result.Skipped {
			fmt.Println("Database already seeded")
			return nil
		}

		fmt.Printf("Seeded %d users, %d projects, %d issues\n", result.Users, result.Projects, result.Issues)
		if generated {
			fmt.Printf("Password for all seeded accounts: %s\n", password)
		}
		return nil
	},
}
