package message

import (
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Type is the discriminator of an Envelope.
type Type string

const (
	TypeJoin     Type = "game.join"
	TypeJoined   Type = "game.joined"
	TypeMove     Type = "game.move"
	TypeGameOver Type = "game.gameOver"
	TypeLeft     Type = "game.left"
	TypeLeave    Type = "game.leave"
	TypeError    Type = "error"
)

const (
	destinationPrefix = "/app/"
	gameTopicPrefix   = "/topic/game."

	// GlobalTopic carries join confirmations for every game.
	GlobalTopic = "/topic/game.state"
)

// Destination is the channel a request of the given type is published to.
func Destination(t Type) string {
	return destinationPrefix + string(t)
}

// GameTopic is the channel carrying the updates of one game.
func GameTopic(gameID string) string {
	return gameTopicPrefix + gameID
}

// Envelope is the JSON wrapper exchanged in both directions.
type Envelope struct {
	Type      Type           `json:"type"`
	GameID    string         `json:"gameId,omitempty"`
	Board     *entity.Board  `json:"board,omitempty"`
	Turn      string         `json:"turn,omitempty"`
	Player1   string         `json:"player1,omitempty"`
	Player2   string         `json:"player2,omitempty"`
	GameState *entity.Status `json:"gameState,omitempty"`
	Winner    string         `json:"winner,omitempty"`
	Sender    string         `json:"sender,omitempty"`
	Move      *int           `json:"move,omitempty"`
	Player    string         `json:"player,omitempty"`
	Content   string         `json:"content,omitempty"`
}

func (that *Envelope) snapshot() (entity.Snapshot, error) {
	if that.Board == nil {
		return entity.Snapshot{}, &entity.MalformedBoardError{Row: -1, Reason: "board is missing"}
	}

	status := entity.StatusInProgress
	if that.GameState != nil {
		status = *that.GameState
	}

	return entity.Snapshot{
		GameID:  that.GameID,
		Board:   *that.Board,
		Turn:    that.Turn,
		Player1: that.Player1,
		Player2: that.Player2,
		Status:  status,
		Winner:  that.Winner,
	}, nil
}
