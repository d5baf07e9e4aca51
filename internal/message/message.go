package message

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

var ErrUnknownType = errors.New("unknown message type")

// Message is one of the server messages the client reacts to.
type Message interface{ isMessage() }

// Join carries a snapshot sent in answer to a join request.
type Join struct{ Snapshot entity.Snapshot }

// Joined confirms that a player took a seat in a game.
type Joined struct{ Snapshot entity.Snapshot }

// Moved carries the state after an accepted move.
type Moved struct{ Snapshot entity.Snapshot }

// GameOver carries the final state of a game.
type GameOver struct{ Snapshot entity.Snapshot }

// Left carries the state after a player left the game.
type Left struct{ Snapshot entity.Snapshot }

// Failure is a human-readable error reported by the server.
type Failure struct{ Content string }

func (Join) isMessage()     {}
func (Joined) isMessage()   {}
func (Moved) isMessage()    {}
func (GameOver) isMessage() {}
func (Left) isMessage()     {}
func (Failure) isMessage()  {}

// Decode parses an inbound envelope into its message variant.
func Decode(data []byte) (Message, error) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	if envelope.Type == TypeError {
		return Failure{Content: envelope.Content}, nil
	}

	var build func(entity.Snapshot) Message

	switch envelope.Type {
	case TypeJoin:
		build = func(s entity.Snapshot) Message { return Join{Snapshot: s} }
	case TypeJoined:
		build = func(s entity.Snapshot) Message { return Joined{Snapshot: s} }
	case TypeMove:
		build = func(s entity.Snapshot) Message { return Moved{Snapshot: s} }
	case TypeGameOver:
		build = func(s entity.Snapshot) Message { return GameOver{Snapshot: s} }
	case TypeLeft:
		build = func(s entity.Snapshot) Message { return Left{Snapshot: s} }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, envelope.Type)
	}

	snapshot, err := envelope.snapshot()
	if err != nil {
		return nil, fmt.Errorf("invalid %s message: %w", envelope.Type, err)
	}

	return build(snapshot), nil
}
