package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathcross/internal/config"
	"github.com/vovakirdan/tui-mathcross/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [tier]",
	Short: "Show the leaderboard",
	Long: `Display the top 10 results per tier. With a tier argument only
that tier is shown.

Examples:
  mathcross scores
  mathcross scores hard`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	tiers := cfg.Tiers
	if len(args) == 1 {
		t, ok := cfg.Tier(config.TierName(args[0]))
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown tier %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'mathcross tiers' to see available tiers.")
			os.Exit(1)
		}
		tiers = []config.Tier{t}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	found := false
	for _, t := range tiers {
		entries, err := store.TopResults(string(t.Name), 10)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
		if len(entries) == 0 {
			continue
		}
		found = true

		fmt.Printf("High Scores - %s\n", t.Name)
		fmt.Println()
		fmt.Printf("  %-4s  %-7s  %-6s  %-5s  %s\n", "Rank", "Score", "Time", "Hints", "Date")
		fmt.Printf("  %-4s  %-7s  %-6s  %-5s  %s\n", "----", "-----", "----", "-----", "----")
		for i, e := range entries {
			fmt.Printf("  %-4d  %-7d  %02d:%02d  %-5d  %s\n",
				i+1, e.Score,
				e.DurationSecs/60, e.DurationSecs%60,
				e.HintsUsed,
				e.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}

	if !found {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mathcross play' to set the first high score!")
	}
}
