package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathcross/internal/storage"
)

var flagDelete string

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List saved games",
	Long: `Shows all saved game slots.

Examples:
  mathcross saves
  mathcross saves --delete autosave`,
	Run: runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDelete, "delete", "", "Delete the named save slot")
}

func runSaves(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagDelete != "" {
		if err := store.DeleteSave(flagDelete); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting save: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted save %q.\n", flagDelete)
		return
	}

	slots, err := store.ListSaves()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing saves: %v\n", err)
		os.Exit(1)
	}

	if len(slots) == 0 {
		fmt.Println("No saved games.")
		fmt.Println()
		fmt.Println("Press 's' during a game to save it.")
		return
	}

	fmt.Println("Saved games:")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-7s  %s\n", "Slot", "Tier", "Score", "Updated")
	fmt.Printf("  %-16s  %-8s  %-7s  %s\n", "----", "----", "-----", "-------")
	for _, s := range slots {
		fmt.Printf("  %-16s  %-8s  %-7d  %s\n",
			s.Name, s.Tier, s.Score, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("Run 'mathcross play --resume <slot>' to continue a game.")
}
