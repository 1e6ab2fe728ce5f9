package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mathcross/internal/puzzle"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	menuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	menuSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(0).
				Bold(true).
				Foreground(lipgloss.Color("212"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	cellEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("236"))

	cellBlankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cellFixedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	cellOpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	cellRightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	cellWrongStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	tileStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252"))

	tileSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true).
				Reverse(true).
				Foreground(lipgloss.Color("212"))

	tileUsedStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("238")).
			Strikethrough(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			MarginTop(1)

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
)

// View renders the active screen.
func (m Model) View() string {
	if m.quitting {
		return "bye!\n"
	}
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case statePlaying:
		return m.viewBoard()
	default:
		return m.viewComplete()
	}
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("mathcross"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("pick a difficulty"))
	b.WriteString("\n\n")

	for i, tier := range m.cfg.Tiers {
		line := fmt.Sprintf("%-8s %2d equations  %dx%d grid",
			tier.Name, tier.Equations, tier.GridWidth, tier.GridHeight)
		if m.store != nil {
			if best, err := m.store.BestScore(string(tier.Name)); err == nil && best > 0 {
				line += subtleStyle.Render(fmt.Sprintf("  best %d", best))
			}
		}
		if i == m.menuCursor {
			b.WriteString(menuSelectedStyle.Render("> " + line))
		} else {
			b.WriteString(menuItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("↑/↓ choose · enter start · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewBoard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("mathcross · %s", m.engine.Tier().Name)))
	b.WriteString("\n")
	b.WriteString(boardStyle.Render(m.renderGrid()))
	b.WriteString("\n")
	b.WriteString(m.renderTray())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// renderGrid draws the board with 3-wide cells so two-digit values line up.
func (m Model) renderGrid() string {
	g := m.engine.Grid()
	rows := make([]string, 0, g.H)
	for y := 0; y < g.H; y++ {
		var row strings.Builder
		for x := 0; x < g.W; x++ {
			pos := puzzle.C(x, y)
			row.WriteString(m.renderCell(g.Cell(pos), pos))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCell(c *puzzle.Cell, pos puzzle.Coord) string {
	text := c.Display()
	if text == "" {
		if c.Type == puzzle.CellNumber {
			text = "·"
		} else {
			text = " "
		}
	}
	text = fmt.Sprintf("%3s", text)

	if m.state == statePlaying && pos == m.cursor {
		return cursorStyle.Render(text)
	}

	switch {
	case c.Type == puzzle.CellEmpty:
		return cellEmptyStyle.Render(text)
	case c.Type == puzzle.CellOperator || c.Type == puzzle.CellEquals:
		return cellOpStyle.Render(text)
	case c.Fixed:
		return cellFixedStyle.Render(text)
	case c.Correct == puzzle.CorrectnessRight:
		return cellRightStyle.Render(text)
	case c.Correct == puzzle.CorrectnessWrong:
		return cellWrongStyle.Render(text)
	case !c.Filled:
		return cellBlankStyle.Render(text)
	default:
		return text
	}
}

func (m Model) renderTray() string {
	tiles := m.engine.Tiles()
	parts := make([]string, 0, len(tiles))
	for i, t := range tiles {
		label := fmt.Sprintf("%d", t.Value)
		switch {
		case t.Used:
			parts = append(parts, tileUsedStyle.Render(label))
		case i == m.tileIdx:
			parts = append(parts, tileSelectedStyle.Render(label))
		default:
			parts = append(parts, tileStyle.Render(label))
		}
	}
	tray := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	return subtleStyle.Render("tiles ") + tray
}

func (m Model) renderStatusLine() string {
	elapsed := m.engine.ElapsedSeconds()
	return fmt.Sprintf("score %s · hints %d · time %02d:%02d\n",
		scoreStyle.Render(fmt.Sprintf("%d", m.engine.Score())),
		m.engine.HintsLeft(),
		elapsed/60, elapsed%60,
	)
}

func (m Model) viewComplete() string {
	elapsed := m.engine.ElapsedSeconds()
	var b strings.Builder
	b.WriteString(titleStyle.Render("puzzle solved!"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("tier       %s\n", m.engine.Tier().Name))
	b.WriteString(fmt.Sprintf("score      %s\n", scoreStyle.Render(fmt.Sprintf("%d", m.engine.Score()))))
	b.WriteString(fmt.Sprintf("time       %02d:%02d\n", elapsed/60, elapsed%60))
	b.WriteString(fmt.Sprintf("equations  %d\n", m.engine.Grid().EquationCount()))
	b.WriteString(fmt.Sprintf("hints used %d\n", m.engine.HintsUsed()))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("enter/b back to menu · q quit"))
	b.WriteString("\n")
	return b.String()
}
