package main

import (
	"adaptivequiz/internal/app"
	"adaptivequiz/internal/config"
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate and maintain the adaptive quiz store",
	Long:  "Seed imports questions into the quiz store and retrains the difficulty model from stored results.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("driver", "", "Store driver, mongo or sqlite (overrides STORE_DRIVER)")
	rootCmd.PersistentFlags().String("sqlite", "", "Path to SQLite database file (overrides SQLITE_PATH)")

	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(opentdbCmd)
	rootCmd.AddCommand(retrainCmd)
}

// openApp loads the config, applies flag overrides and connects the stores
func openApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if d, _ := cmd.Flags().GetString("driver"); d != "" {
		cfg.Store.Driver = d
	}
	if p, _ := cmd.Flags().GetString("sqlite"); p != "" {
		cfg.Store.Driver = config.DriverSQLite
		cfg.Store.SQLitePath = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return app.New(context.Background(), cfg)
}
