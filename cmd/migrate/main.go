package main

import (
	"fmt"
	"os"

	"github.com/prohmpiriya/cinema-booking/pkg/config"
	"github.com/prohmpiriya/cinema-booking/pkg/database"
	"github.com/spf13/cobra"
)

var (
	configPath     string
	migrationsPath string
	steps          int

	rootCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back cinema booking database migrations",
	}

	upCmd = &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, path, err := target()
			if err != nil {
				return err
			}
			if err := database.MigrateUp(url, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}

	downCmd = &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}
			url, path, err := target()
			if err != nil {
				return err
			}
			if err := database.MigrateDown(url, path, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, path, err := target()
			if err != nil {
				return err
			}
			version, dirty, err := database.MigrationVersion(url, path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "env file path (optional, uses env vars by default)")
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "", "migrations directory (default: DATABASE_MIGRATIONS_PATH)")
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	rootCmd.AddCommand(upCmd, downCmd, versionCmd)
}

// target resolves the database URL and migrations directory
func target() (string, string, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadWithPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to load config: %w", err)
	}

	path := migrationsPath
	if path == "" {
		path = cfg.Database.MigrationsPath
	}
	return cfg.Database.URL(), path, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
