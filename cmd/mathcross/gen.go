package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mathcross/internal/config"
	"github.com/vovakirdan/tui-mathcross/internal/puzzle"
)

var (
	flagSolution bool
	flagVerbose  bool
)

var genCmd = &cobra.Command{
	Use:   "gen <tier>",
	Short: "Generate a board and print it",
	Long: `Generate a puzzle board headlessly and print it to stdout.
Useful for inspecting generator output and for reproducing boards by seed.

Examples:
  mathcross gen easy
  mathcross gen epic --seed 42
  mathcross gen hard --solution
  mathcross gen medium -v`,
	Args: cobra.ExactArgs(1),
	Run:  runGen,
}

func init() {
	genCmd.Flags().BoolVar(&flagSolution, "solution", false, "Print the solved board instead of the playable one")
	genCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log generation phases")
}

func runGen(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	tier, ok := cfg.Tier(config.TierName(args[0]))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown tier %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'mathcross tiers' to see available tiers.")
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var logger *log.Logger
	if flagVerbose {
		logger = log.New(os.Stderr)
		logger.SetLevel(log.DebugLevel)
	}

	gen := cfg.Generator
	pz := puzzle.NewGenerator(puzzle.GenParams{
		Width:               tier.GridWidth,
		Height:              tier.GridHeight,
		TargetEquations:     tier.Equations,
		HorizontalShare:     gen.HorizontalShare,
		PrimaryAttempts:     gen.PrimaryAttempts,
		MixedAttempts:       gen.MixedAttempts,
		BackfillAttempts:    gen.BackfillAttempts,
		HintProbability:     gen.HintProbability,
		DivisionProbability: gen.DivisionProbability,
		DecoyRatio:          gen.DecoyRatio,
		MaxDecoyValue:       gen.MaxDecoyValue,
		Seed:                seed,
	}, logger).Generate()

	printBoard(pz.Grid, flagSolution)

	fmt.Println()
	fmt.Printf("tier %s · %dx%d grid · seed %d\n", tier.Name, pz.Grid.W, pz.Grid.H, pz.Seed)
	fmt.Printf("equations %d (target %d)\n", pz.Grid.EquationCount(), tier.Equations)

	var values []string
	for _, t := range pz.Tiles {
		values = append(values, strconv.Itoa(t.Value))
	}
	fmt.Printf("hand (%d tiles): %s\n", len(pz.Tiles), strings.Join(values, " "))

	if flagSolution {
		fmt.Println()
		for _, eq := range pz.Grid.Equations() {
			fmt.Printf("  %s  (%s at %s)\n", eq.Expression(), eq.Orientation, eq.Cells[0].Key())
		}
	}
}

// printBoard renders the grid as fixed-width ASCII. Blank number cells show
// as a dot unless the solution is requested.
func printBoard(g *puzzle.Grid, solved bool) {
	for y := 0; y < g.H; y++ {
		var row strings.Builder
		for x := 0; x < g.W; x++ {
			c := g.Cell(puzzle.C(x, y))
			text := c.Display()
			if solved && c.Type == puzzle.CellNumber && !c.Filled {
				if eq := g.Equation(c.Equations[0]); eq != nil {
					if v, ok := eq.CorrectValue(eq.SlotOf(c.Pos)); ok {
						text = strconv.Itoa(v)
					}
				}
			}
			if text == "" {
				if c.Type == puzzle.CellNumber {
					text = "·"
				} else {
					text = "."
				}
			}
			fmt.Fprintf(&row, "%3s", text)
		}
		fmt.Println(row.String())
	}
}
