package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-mathcross/internal/config"
	"github.com/vovakirdan/tui-mathcross/internal/platform/tui"
	"github.com/vovakirdan/tui-mathcross/internal/storage"
)

var (
	flagResume string
	flagSlot   string
)

var playCmd = &cobra.Command{
	Use:   "play [tier]",
	Short: "Play a puzzle",
	Long: `Start a puzzle. With a tier argument the game begins immediately;
without one you get an interactive tier menu.

Controls:
  Arrows     - Move the board cursor
  Tab        - Cycle through hand tiles
  Enter      - Place the selected tile
  X          - Remove a placed tile
  U          - Undo last move
  H          - Hint (costs points)
  S          - Save game
  Q/Ctrl+C   - Quit

Examples:
  mathcross play
  mathcross play hard
  mathcross play --resume autosave
  mathcross play epic --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagResume, "resume", "", "Resume a saved game by slot name")
	playCmd.Flags().StringVar(&flagSlot, "slot", "autosave", "Save slot written by the in-game save key")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	var tier config.TierName
	if len(args) == 1 {
		tier = config.TierName(args[0])
		t, ok := cfg.Tier(tier)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown tier %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'mathcross tiers' to see available tiers.")
			os.Exit(1)
		}

		// Each cell renders 3 columns wide plus the board border.
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			needW := t.GridWidth*3 + 4
			needH := t.GridHeight + 10
			if w < needW || h < needH {
				fmt.Fprintf(os.Stderr, "Warning: terminal %dx%d is small for the %s board (want %dx%d)\n",
					w, h, tier, needW, needH)
			}
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)

	model := tui.New(cfg, store, logger, flagSeed, tui.Options{
		StartTier:  tier,
		ResumeSave: flagResume,
		SaveSlot:   flagSlot,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
