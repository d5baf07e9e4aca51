package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySnapshot(t *testing.T) {
	t.Run("Returns the incoming snapshot regardless of the current one", func(t *testing.T) {
		// Given: a current game and an unrelated incoming one
		current := Snapshot{GameID: "old", Turn: "alice", Player1: "alice", Player2: "bob", Status: StatusInProgress}
		current.Board[0][0] = CellX

		incoming := Snapshot{GameID: "new", Turn: "carol", Player1: "carol", Status: StatusInProgress}

		// When: applying the incoming snapshot
		result := ApplySnapshot(current, incoming)

		// Then: nothing of the current snapshot survives
		assert.Equal(t, incoming, result)
	})

	t.Run("Is idempotent", func(t *testing.T) {
		// Given: a finished game
		incoming := Snapshot{GameID: "g1", Status: StatusWon, Winner: "alice"}

		// When: applying it twice
		result := ApplySnapshot(ApplySnapshot(Snapshot{}, incoming), incoming)

		// Then: the result is still the incoming snapshot
		assert.Equal(t, incoming, result)
	})
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"IN_PROGRESS":        StatusInProgress,
		"WAITING_FOR_PLAYER": StatusInProgress,
		"PLAYER1_TURN":       StatusInProgress,
		"PLAYER2_TURN":       StatusInProgress,
		"":                   StatusInProgress,
		"TIE":                StatusTie,
		"WON":                StatusWon,
		"PLAYER1_WON":        StatusWon,
		"PLAYER2_WON":        StatusWon,
	}

	for value, expected := range cases {
		status, err := ParseStatus(value)
		require.NoError(t, err, value)
		assert.Equal(t, expected, status, value)
	}

	_, err := ParseStatus("PAUSED")
	require.ErrorIs(t, err, ErrUnknownGameStatus)
}

func TestSnapshot_UnmarshalJSON(t *testing.T) {
	t.Run("Decodes a server snapshot", func(t *testing.T) {
		// Given: a snapshot as the server sends it
		data := []byte(`{
			"gameId": "g1",
			"board": [["X"," "," "],[" ","O"," "],[" "," "," "]],
			"turn": "alice",
			"player1": "alice",
			"player2": "bob",
			"gameState": "PLAYER1_TURN"
		}`)

		// When: decoding it
		var snapshot Snapshot
		err := json.Unmarshal(data, &snapshot)

		// Then: every field is populated and the state is normalized
		require.NoError(t, err)
		assert.Equal(t, "g1", snapshot.GameID)
		assert.Equal(t, "alice", snapshot.Turn)
		assert.Equal(t, "bob", snapshot.Player2)
		assert.Equal(t, StatusInProgress, snapshot.Status)
		assert.Equal(t, CellX, snapshot.Board[0][0])
		assert.Equal(t, CellO, snapshot.Board[1][1])
		assert.False(t, snapshot.IsOver())
	})

	t.Run("Treats a null state as in progress", func(t *testing.T) {
		var snapshot Snapshot
		err := json.Unmarshal([]byte(`{"board":[[" "," "," "],[" "," "," "],[" "," "," "]],"gameState":null}`), &snapshot)

		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, snapshot.Status)
	})

	t.Run("Rejects an unknown state", func(t *testing.T) {
		var snapshot Snapshot
		err := json.Unmarshal([]byte(`{"gameState":"PAUSED"}`), &snapshot)

		require.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestSnapshot_Predicates(t *testing.T) {
	tie := Snapshot{Status: StatusTie}
	assert.True(t, tie.IsOver())
	assert.True(t, tie.IsTie())
	assert.False(t, tie.HasWinner())

	won := Snapshot{Status: StatusWon, Winner: "bob", Player1: "alice", Player2: "bob"}
	assert.True(t, won.IsOver())
	assert.True(t, won.HasWinner())
	assert.True(t, won.HasPlayer("bob"))
	assert.False(t, won.HasPlayer("carol"))
	assert.False(t, Snapshot{}.HasPlayer(""))
}
