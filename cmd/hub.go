package cmd

import (
	"context"
	"fmt"
	"time"

	"curationsla/internal/archive"

	"github.com/spf13/cobra"
)

// hubCmd regenerates the archive hub page and the JSON index export.
var hubCmd = &cobra.Command{
	Use:   "hub",
	Short: "Generate the archive hub index",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		out := cmd.OutOrStdout()

		idx, err := archive.Open(indexPath(cfg))
		if err != nil {
			return err
		}
		defer idx.Close()

		fmt.Fprintln(out, "🏗️  Generating archive hub...")
		policy := archive.RetentionPolicy{
			Days:             cfg.Archive.RetentionDays,
			ArchiveThreshold: cfg.Archive.ArchiveThreshold,
		}
		path, err := archive.GenerateHub(context.Background(), idx, cfg.Archive.HubDir, policy, time.Now().UTC())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Archive hub generated: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hubCmd)
}
