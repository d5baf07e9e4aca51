package message

import (
	"encoding/json"
	"fmt"
)

// Request is a message the client publishes to the server.
type Request interface {
	Envelope() Envelope
}

type JoinRequest struct {
	Player string
}

func (that JoinRequest) Envelope() Envelope {
	return Envelope{Type: TypeJoin, Player: that.Player}
}

// MoveRequest asks the server to mark a cell. Turn echoes the turn of the held snapshot.
type MoveRequest struct {
	GameID string
	Sender string
	Turn   string
	Move   int
}

func (that MoveRequest) Envelope() Envelope {
	move := that.Move

	return Envelope{
		Type:   TypeMove,
		GameID: that.GameID,
		Sender: that.Sender,
		Turn:   that.Turn,
		Move:   &move,
	}
}

type LeaveRequest struct {
	Player string
}

func (that LeaveRequest) Envelope() Envelope {
	return Envelope{Type: TypeLeave, Player: that.Player}
}

// Encode returns the destination and the JSON payload of a request.
func Encode(request Request) (string, []byte, error) {
	envelope := request.Envelope()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal %s request: %w", envelope.Type, err)
	}

	return Destination(envelope.Type), payload, nil
}
