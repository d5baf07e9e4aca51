package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want session.Command
	}{
		{line: "4", want: session.Move{Cell: 4}},
		{line: " 0 ", want: session.Move{Cell: 0}},
		{line: "move 8", want: session.Move{Cell: 8}},
		{line: "MOVE 2", want: session.Move{Cell: 2}},
		{line: "leave", want: session.Leave{}},
		{line: "join", want: session.Join{}},
		{line: "quit", want: session.Quit{}},
		{line: "exit", want: session.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Rejects unknown input", func(t *testing.T) {
		for _, line := range []string{"", "jump", "move", "move x", "move 1 2", "leave now", "join g1"} {
			_, err := ParseCommand(line)
			assert.ErrorIs(t, err, ErrUnknownCommand, line)
		}
	})
}

func TestConsole_AskName(t *testing.T) {
	t.Run("Skips blank lines", func(t *testing.T) {
		// Given: the player presses enter twice before typing a name
		var out bytes.Buffer
		console := New(strings.NewReader("\n  \n alice \n"), &out)

		// When: asking for the name
		name, err := console.AskName(context.Background())

		// Then: the trimmed name is returned after three prompts
		require.NoError(t, err)
		assert.Equal(t, "alice", name)
		assert.Equal(t, 3, strings.Count(out.String(), namePrompt))
	})

	t.Run("Accepts a last line without newline", func(t *testing.T) {
		console := New(strings.NewReader("bob"), &bytes.Buffer{})

		name, err := console.AskName(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "bob", name)
	})

	t.Run("Returns an empty name when the input ends", func(t *testing.T) {
		console := New(strings.NewReader(""), &bytes.Buffer{})

		name, err := console.AskName(context.Background())

		require.NoError(t, err)
		assert.Empty(t, name)
	})
}

func TestConsole_Commands(t *testing.T) {
	t.Run("Emits parsed commands and quits at the end of input", func(t *testing.T) {
		// Given: a name line followed by commands and noise
		var out bytes.Buffer
		console := New(strings.NewReader("alice\n4\njump\n\nmove 5\nleave"), &out)

		name, err := console.AskName(context.Background())
		require.NoError(t, err)
		require.Equal(t, "alice", name)

		// When: draining the commands
		var got []session.Command
		for cmd := range console.Commands(context.Background()) {
			got = append(got, cmd)
		}

		// Then: the name is not replayed, noise is reported and the end of input quits
		assert.Equal(t, []session.Command{
			session.Move{Cell: 4},
			session.Move{Cell: 5},
			session.Leave{},
			session.Quit{},
		}, got)
		assert.Contains(t, out.String(), usage)
	})

	t.Run("Stops when the context is canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		console := New(strings.NewReader("1\n2\n"), &bytes.Buffer{})

		done := make(chan struct{})
		go func() {
			for range console.Commands(ctx) {
			}
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("commands channel was not closed")
		}
	})
}
