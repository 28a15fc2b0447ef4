package cmd

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"time"

	"curationsla/internal/archive"
	"curationsla/internal/clierr"

	"github.com/spf13/cobra"
)

var archiveDate string

var pathDatePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// archiveCmd records an existing publication directory in the index.
var archiveCmd = &cobra.Command{
	Use:   "archive <path>",
	Short: "Archive a publication directory into the index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		dir := args[0]

		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%w: publication path %s", clierr.ErrNotFound, dir)
		}

		date := time.Now().UTC()
		if archiveDate != "" {
			d, err := time.Parse("2006-01-02", archiveDate)
			if err != nil {
				return fmt.Errorf("%w: invalid --date %q: %v", clierr.ErrParse, archiveDate, err)
			}
			date = d
		} else if m := pathDatePattern.FindString(dir); m != "" {
			if d, err := time.Parse("2006-01-02", m); err == nil {
				date = d
			}
		}

		idx, err := archive.Open(indexPath(cfg))
		if err != nil {
			return err
		}
		defer idx.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "📁 Archiving publication: %s\n", dir)
		count, err := idx.ArchivePublication(context.Background(), date, dir, dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Archived %s with %d items\n", date.Format("2006-01-02"), count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.Flags().StringVar(&archiveDate, "date", "", "publication date (YYYY-MM-DD; default: from path, else today)")
}
