// Command seed loads demo data into the configured database. It is a
// one-off operator tool, separate from the server boot path.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"stayfinder-backend/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the StayFinder database with demo hosts, listings and add-ons",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Println("⚠️  .env not found, using environment variables")
			}
			return config.ConnectDatabase()
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Insert demo data (idempotent: skips anything already present)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SeedDatabase(config.DB); err != nil {
				return err
			}
			log.Println("✅ Demo data seeded")
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations only",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Migrate(config.DB); err != nil {
				return err
			}
			log.Println("✅ Migrations applied")
			return nil
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
