package cmd

import (
	"fmt"
	"strings"

	"curationsla/internal/vibes"

	"github.com/spf13/cobra"
)

// analyzeCmd scores a piece of text and shows which keywords fired, for
// tuning the lexicon and debugging surprising scores.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <text...>",
	Short: "Score a piece of text and show the keywords that fired",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		out := cmd.OutOrStdout()

		text := strings.Join(args, " ")
		a := vibes.NewDefaultScorer().Analyze(text, cfg.Newsletter.Threshold)

		verdict := "❌ filtered out"
		if a.PassesFilter {
			verdict = "✅ passes filter"
		}
		fmt.Fprintf(out, "Vibe score: %.2f (%s at threshold %.2f)\n", a.VibeScore, verdict, cfg.Newsletter.Threshold)
		fmt.Fprintf(out, "📍 Neighborhood: %s\n", a.Neighborhood)
		if len(a.GoodKeywords) > 0 {
			fmt.Fprintf(out, "Good keywords: %s\n", strings.Join(a.GoodKeywords, ", "))
		}
		if len(a.BadKeywords) > 0 {
			fmt.Fprintf(out, "Blocked keywords: %s\n", strings.Join(a.BadKeywords, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
