// mathcross is a terminal crossword-style arithmetic puzzle game.
//
// Usage:
//
//	mathcross play [tier]    - Play a puzzle (interactive tier menu if omitted)
//	mathcross gen <tier>     - Generate a board and print it
//	mathcross tiers          - List difficulty tiers
//	mathcross scores [tier]  - Show the leaderboard
//	mathcross saves          - List saved games
//	mathcross serve          - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>  - RNG seed for reproducible boards (default: time-based)
//	--db <path>     - Database path (default: ~/.mathcross/scores.db)
//	--config <path> - Custom config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathcross/internal/config"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mathcross",
	Short: "Mathcross - arithmetic crossword puzzles in your terminal",
	Long: `Mathcross generates crossword-style boards of arithmetic equations.
Fill the blank cells with number tiles from your hand until every
equation holds.

Available commands:
  play     - Play a puzzle interactively
  gen      - Generate a board headlessly and print it
  tiers    - List difficulty tiers
  scores   - View the leaderboard
  saves    - List saved games
  serve    - Start SSH server for remote play

Examples:
  mathcross play
  mathcross play hard
  mathcross play --resume autosave
  mathcross gen epic --seed 42
  mathcross scores medium`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mathcross/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(tiersCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the game configuration honoring the --config flag.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
