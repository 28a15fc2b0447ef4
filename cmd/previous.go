package cmd

import (
	"context"
	"fmt"
	"time"

	"curationsla/internal/archive"
	"curationsla/internal/clierr"

	"github.com/spf13/cobra"
)

var previousBefore string

// previousCmd shows the most recent publication before a date.
var previousCmd = &cobra.Command{
	Use:   "previous",
	Short: "Show the most recent previous publication",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		out := cmd.OutOrStdout()

		before := time.Now().UTC()
		if previousBefore != "" {
			d, err := time.Parse("2006-01-02", previousBefore)
			if err != nil {
				return fmt.Errorf("%w: invalid --before %q: %v", clierr.ErrParse, previousBefore, err)
			}
			before = d
		}

		idx, err := archive.Open(indexPath(cfg))
		if err != nil {
			return err
		}
		defer idx.Close()

		fmt.Fprintf(out, "🔍 Searching for publications before %s...\n", before.Format("Monday, January 2, 2006"))
		rec, err := idx.FindPrevious(context.Background(), before)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "✅ Previous publication: %s (%d items)\n", rec.Date.Format("2006-01-02"), rec.ContentCount)
		fmt.Fprintf(out, "📁 Path: %s\n", rec.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previousCmd)
	previousCmd.Flags().StringVar(&previousBefore, "before", "", "reference date (YYYY-MM-DD; default: today)")
}
