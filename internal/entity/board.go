package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
)

const BoardSize = 3

// Cell is the content of one board square.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellX
	CellO
)

const (
	EmptyMark = " "
	PlayerX   = "X"
	PlayerO   = "O"
)

func (that Cell) String() string {
	switch that {
	case CellEmpty:
		return EmptyMark
	case CellX:
		return PlayerX
	case CellO:
		return PlayerO
	default:
		return fmt.Sprintf("Cell(%d)", uint8(that))
	}
}

func (that Cell) IsValid() bool {
	return that <= CellO
}

// ParseCell converts a wire mark into a Cell. A nil mark is an empty cell.
func ParseCell(mark *string) (Cell, bool) {
	if mark == nil {
		return CellEmpty, true
	}

	switch *mark {
	case EmptyMark:
		return CellEmpty, true
	case PlayerX:
		return CellX, true
	case PlayerO:
		return CellO, true
	default:
		return CellEmpty, false
	}
}

// MalformedBoardError reports a board that is not 3x3 or holds an unknown cell value.
// Row -1 is the whole board, Col -1 the whole row.
type MalformedBoardError struct {
	Row    int
	Col    int
	Reason string
}

func (that *MalformedBoardError) Error() string {
	if that.Row < 0 {
		return fmt.Sprintf("%s: %s", apperror.ErrMalformedBoard, that.Reason)
	}

	if that.Col < 0 {
		return fmt.Sprintf("%s: row %d: %s", apperror.ErrMalformedBoard, that.Row, that.Reason)
	}

	return fmt.Sprintf("%s: cell (%d, %d): %s", apperror.ErrMalformedBoard, that.Row, that.Col, that.Reason)
}

func (that *MalformedBoardError) Unwrap() error {
	return apperror.ErrMalformedBoard
}

// Board is a 3x3 grid in row-major order.
type Board [BoardSize][BoardSize]Cell

// ParseBoard builds a Board from its wire representation.
func ParseBoard(rows [][]*string) (Board, error) {
	var board Board

	if rows == nil {
		return board, &MalformedBoardError{Row: -1, Reason: "board is missing"}
	}

	if len(rows) != BoardSize {
		return board, &MalformedBoardError{Row: -1, Reason: fmt.Sprintf("expected %d rows, got %d", BoardSize, len(rows))}
	}

	for i, row := range rows {
		if len(row) != BoardSize {
			return board, &MalformedBoardError{Row: i, Col: -1, Reason: fmt.Sprintf("expected %d columns, got %d", BoardSize, len(row))}
		}

		for j, mark := range row {
			cell, ok := ParseCell(mark)
			if !ok {
				return board, &MalformedBoardError{Row: i, Col: j, Reason: fmt.Sprintf("unknown mark %q", *mark)}
			}
			board[i][j] = cell
		}
	}

	return board, nil
}

func (that Board) Validate() error {
	for i := range that {
		for j, cell := range that[i] {
			if !cell.IsValid() {
				return &MalformedBoardError{Row: i, Col: j, Reason: "unknown cell value " + cell.String()}
			}
		}
	}

	return nil
}

// At returns the cell at a flat row-major index.
func (that Board) At(index int) (Cell, error) {
	if index < 0 || index >= BoardSize*BoardSize {
		return CellEmpty, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	return that[index/BoardSize][index%BoardSize], nil
}

func (that Board) IsFull() bool {
	for i := range that {
		for _, cell := range that[i] {
			if cell == CellEmpty {
				return false
			}
		}
	}

	return true
}

// Index converts a row and column into a flat row-major index.
func Index(row, col int) int {
	return row*BoardSize + col
}

func (that Board) MarshalJSON() ([]byte, error) {
	rows := make([][]string, BoardSize)
	for i := range that {
		rows[i] = make([]string, BoardSize)
		for j, cell := range that[i] {
			rows[i][j] = cell.String()
		}
	}

	return json.Marshal(rows)
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]*string
	if err := json.Unmarshal(data, &rows); err != nil {
		return &MalformedBoardError{Row: -1, Reason: err.Error()}
	}

	board, err := ParseBoard(rows)
	if err != nil {
		return err
	}

	*that = board

	return nil
}

// EvaluateWinner returns the flat indices of every complete line on the board.
// Rows are scanned top to bottom, then columns left to right, then the main
// diagonal. The anti-diagonal is not checked and the scan does not stop at the
// first complete line: all matches are concatenated in scan order.
func EvaluateWinner(board Board) ([]int, error) {
	if err := board.Validate(); err != nil {
		return nil, err
	}

	positions := make([]int, 0, BoardSize)

	for i := 0; i < BoardSize; i++ {
		if isLine(board[i][0], board[i][1], board[i][2]) {
			positions = append(positions, Index(i, 0), Index(i, 1), Index(i, 2))
		}
	}

	for i := 0; i < BoardSize; i++ {
		if isLine(board[0][i], board[1][i], board[2][i]) {
			positions = append(positions, Index(0, i), Index(1, i), Index(2, i))
		}
	}

	if isLine(board[0][0], board[1][1], board[2][2]) {
		positions = append(positions, Index(0, 0), Index(1, 1), Index(2, 2))
	}

	return positions, nil
}

func isLine(a, b, c Cell) bool {
	return a != CellEmpty && a == b && b == c
}
