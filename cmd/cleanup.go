package cmd

import (
	"fmt"
	"time"

	"curationsla/internal/archive"

	"github.com/spf13/cobra"
)

var cleanupRetentionDays int

// cleanupCmd summarizes-and-deletes publication directories past retention.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Clean up publication directories past the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		out := cmd.OutOrStdout()

		retention := cleanupRetentionDays
		if retention == 0 {
			retention = cfg.Archive.RetentionDays
		}

		cleaner := &archive.Cleaner{
			ContentDir: cfg.Newsletter.ContentDir,
			HubDir:     cfg.Archive.HubDir,
		}

		fmt.Fprintln(out, "🧹 Cleaning up old archives...")
		result, err := cleaner.Cleanup(retention, time.Now().UTC())
		fmt.Fprintf(out, "✅ Cleaned %d old archives, kept %d recent ones\n", result.CleanedCount, result.KeptCount)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ Some cleanup steps failed: %v\n", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	cleanupCmd.Flags().IntVar(&cleanupRetentionDays, "retention-days", 0, "retention window in days (default: config)")
}
