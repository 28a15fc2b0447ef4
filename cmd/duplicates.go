package cmd

import (
	"context"
	"fmt"
	"time"

	"curationsla/internal/archive"

	"github.com/spf13/cobra"
)

var dupLookbackDays int

// duplicatesCmd checks a publication directory against recent publications.
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates <path>",
	Short: "Check a publication directory for duplicate content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		dir := args[0]
		out := cmd.OutOrStdout()

		lookback := dupLookbackDays
		if lookback == 0 {
			lookback = cfg.Archive.LookbackDays
		}

		items, err := archive.ExtractItems(dir)
		if err != nil {
			return err
		}

		idx, err := archive.Open(indexPath(cfg))
		if err != nil {
			return err
		}
		defer idx.Close()

		fmt.Fprintf(out, "🔍 Checking for duplicates in: %s\n", dir)
		report, err := idx.CheckDuplicates(context.Background(), items, lookback, time.Now().UTC())
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "📊 Found %d duplicates, %d unique items\n", report.DuplicateCount, report.UniqueCount)
		for i, dup := range report.Duplicates {
			if i >= 5 {
				break
			}
			fmt.Fprintf(out, "   🔄 Duplicate: %s... (previously %s)\n",
				truncate(dup.Item.Content, 60), dup.Previous.PublicationDate.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(duplicatesCmd)
	duplicatesCmd.Flags().IntVar(&dupLookbackDays, "lookback-days", 0, "lookback window in days (default: config)")
}
