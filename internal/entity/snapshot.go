package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusTie        Status = "TIE"
	StatusWon        Status = "WON"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// ParseStatus accepts both the short status set and the detailed states the server reports.
func ParseStatus(value string) (Status, error) {
	switch value {
	case "", string(StatusInProgress), "WAITING_FOR_PLAYER", "PLAYER1_TURN", "PLAYER2_TURN":
		return StatusInProgress, nil
	case string(StatusTie):
		return StatusTie, nil
	case string(StatusWon), "PLAYER1_WON", "PLAYER2_WON":
		return StatusWon, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownGameStatus, value)
	}
}

func (that *Status) UnmarshalJSON(data []byte) error {
	var value *string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal game status: %w", err)
	}

	if value == nil {
		*that = StatusInProgress
		return nil
	}

	status, err := ParseStatus(*value)
	if err != nil {
		return err
	}

	*that = status

	return nil
}

// Snapshot is the full authoritative game state pushed by the server.
type Snapshot struct {
	GameID  string `json:"gameId"`
	Board   Board  `json:"board"`
	Turn    string `json:"turn"`
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`
	Status  Status `json:"gameState"`
	Winner  string `json:"winner,omitempty"`
}

// ApplySnapshot adopts the incoming snapshot as the new state. Nothing from current is kept.
func ApplySnapshot(_, incoming Snapshot) Snapshot {
	return incoming
}

func (that Snapshot) IsOver() bool {
	return that.Status == StatusTie || that.Status == StatusWon
}

func (that Snapshot) IsTie() bool {
	return that.Status == StatusTie
}

func (that Snapshot) HasWinner() bool {
	return that.Winner != ""
}

// HasPlayer reports whether name is one of the two seats of the game.
func (that Snapshot) HasPlayer(name string) bool {
	return name != "" && (that.Player1 == name || that.Player2 == name)
}
