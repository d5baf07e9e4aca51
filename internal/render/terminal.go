package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notice is a transient message shown under the board.
type Notice struct {
	Level Level
	Text  string
}

const (
	waitingForPlayer2 = "Waiting for player 2..."
	noValue           = "-"
)

// Terminal draws the board and notices as text.
type Terminal struct {
	out io.Writer

	headerStyle    lipgloss.Style
	moveStyle      lipgloss.Style
	xStyle         lipgloss.Style
	oStyle         lipgloss.Style
	highlightStyle lipgloss.Style
	successStyle   lipgloss.Style
	errorStyle     lipgloss.Style
}

func NewTerminal(out io.Writer) *Terminal {
	renderer := lipgloss.NewRenderer(out)

	return &Terminal{
		out: out,

		headerStyle:    renderer.NewStyle().Foreground(lipgloss.Color("#F1FA8C")).Bold(true),
		moveStyle:      renderer.NewStyle().Foreground(lipgloss.Color("#6272A4")),
		xStyle:         renderer.NewStyle().Foreground(lipgloss.Color("#8BE9FD")),
		oStyle:         renderer.NewStyle().Foreground(lipgloss.Color("#FF79C6")),
		highlightStyle: renderer.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true),
		successStyle:   renderer.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
		errorStyle:     renderer.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
	}
}

// Board draws the snapshot. Empty cells show the move index that selects them;
// cells listed in highlight are marked as part of the winning line.
func (that *Terminal) Board(snapshot entity.Snapshot, highlight []int) error {
	highlighted := make(map[int]bool, len(highlight))
	for _, index := range highlight {
		highlighted[index] = true
	}

	var b strings.Builder

	b.WriteString(that.headerStyle.Render("Game "+snapshot.GameID) + "\n")
	fmt.Fprintf(&b, "Player 1: %s\n", orDash(snapshot.Player1))
	fmt.Fprintf(&b, "Player 2: %s\n", player2(snapshot))
	fmt.Fprintf(&b, "Turn:     %s\n", orDash(snapshot.Turn))
	fmt.Fprintf(&b, "Winner:   %s\n", orDash(snapshot.Winner))
	fmt.Fprintf(&b, "State:    %s\n\n", snapshot.Status)

	for i := range snapshot.Board {
		cells := make([]string, 0, entity.BoardSize)
		for j, cell := range snapshot.Board[i] {
			index := entity.Index(i, j)
			cells = append(cells, that.cell(cell, index, highlighted[index]))
		}

		b.WriteString(" " + strings.Join(cells, " | ") + "\n")
		if i < entity.BoardSize-1 {
			b.WriteString("-----+-----+-----\n")
		}
	}

	b.WriteString("\n")

	if _, err := io.WriteString(that.out, b.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func (that *Terminal) Notify(notice Notice) error {
	style := that.successStyle
	if notice.Level == LevelError {
		style = that.errorStyle
	}

	if _, err := io.WriteString(that.out, style.Render(notice.Text)+"\n"); err != nil {
		return fmt.Errorf("failed to write notice: %w", err)
	}

	return nil
}

func (that *Terminal) cell(cell entity.Cell, index int, highlighted bool) string {
	switch {
	case cell == entity.CellEmpty:
		return that.moveStyle.Render("[" + strconv.Itoa(index) + "]")
	case highlighted:
		return that.highlightStyle.Render("*" + cell.String() + "*")
	case cell == entity.CellX:
		return that.xStyle.Render(" " + cell.String() + " ")
	default:
		return that.oStyle.Render(" " + cell.String() + " ")
	}
}

func player2(snapshot entity.Snapshot) string {
	switch {
	case snapshot.Player2 != "":
		return snapshot.Player2
	case snapshot.HasWinner():
		return noValue
	default:
		return waitingForPlayer2
	}
}

func orDash(value string) string {
	if value == "" {
		return noValue
	}

	return value
}
