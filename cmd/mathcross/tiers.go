package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List difficulty tiers",
	Long:  `Shows all configured difficulty tiers with their board parameters.`,
	Run:   runTiers,
}

func runTiers(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	fmt.Println("Available tiers:")
	fmt.Println()
	fmt.Printf("  %-8s  %-9s  %-7s  %s\n", "Tier", "Equations", "Grid", "Bonus")
	fmt.Printf("  %-8s  %-9s  %-7s  %s\n", "----", "---------", "----", "-----")

	for _, t := range cfg.Tiers {
		fmt.Printf("  %-8s  %-9d  %dx%-5d  x%.1f\n",
			t.Name, t.Equations, t.GridWidth, t.GridHeight, t.BonusMultiplier)
	}

	fmt.Println()
	fmt.Println("Run 'mathcross play <tier>' to start a game.")
}
