package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/spider/internal/deck"
	"github.com/lox/spider/internal/game"
)

// cellWidth is the width of one board column including its gap
const cellWidth = 5

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	state := m.game.State()
	board := m.theme.Pane.Render(m.renderBoard(state))
	notices := m.theme.Pane.Render(m.notices.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(state),
		board,
		notices,
		m.help.View(m.keys),
	)
}

func (m *Model) renderHeader(state game.State) string {
	parts := []string{
		"Spider",
		fmt.Sprintf("Completed %d/%d", state.CompletedSets, game.WinningSets),
		fmt.Sprintf("Moves %d", state.MoveCount),
		fmt.Sprintf("Stock %d", state.StockRemaining()),
	}
	if m.showTimer {
		clock := "Time " + m.stopwatch.String()
		if !m.stopwatch.Running() && !m.game.IsWon() {
			clock += " (paused)"
		}
		parts = append(parts, clock)
	}
	parts = append(parts, "#"+shortID(m.game.ID()))
	return HeaderStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) renderBoard(state game.State) string {
	var b strings.Builder

	for col := 0; col < game.NumColumns; col++ {
		label := fmt.Sprintf("%-*d", cellWidth, col+1)
		if col == m.cursor {
			b.WriteString(m.theme.Cursor.Render(label))
		} else {
			b.WriteString(m.theme.Label.Render(label))
		}
	}
	b.WriteString("\n")

	height := 1
	for _, p := range state.Columns() {
		height = max(height, len(p))
	}

	for row := 0; row < height; row++ {
		for col, p := range state.Columns() {
			b.WriteString(m.renderCell(col, row, p))
		}
		b.WriteString("\n")
	}

	if m.game.IsWon() {
		b.WriteString(SuccessStyle.Render("All eight sets completed!"))
	} else if m.selection != nil {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("Holding %d card(s) from column %d",
			len(state.Piles[m.selection.Source])-m.selection.Start, m.selection.Source+1)))
	}
	return b.String()
}

func (m *Model) renderCell(col, row int, p game.Pile) string {
	if row >= len(p) {
		if row == 0 {
			return m.theme.Label.Render(pad("[ ]"))
		}
		return pad("")
	}

	c := p[row]
	switch {
	case c.Down:
		return m.theme.FaceDown.Render(pad("##"))
	case m.selection != nil && m.selection.Covers(col, row):
		return m.theme.Selected.Render(cardText(c)) + pad("")[len(cardText(c)):]
	default:
		return m.theme.FaceUp.Render(pad(cardText(c)))
	}
}

func cardText(c deck.Card) string {
	return c.Rank.String()
}

func pad(s string) string {
	return fmt.Sprintf("%-*s", cellWidth, s)
}
