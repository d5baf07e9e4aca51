package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-client/internal/session"
)

var ErrUnknownCommand = errors.New("unknown command")

const (
	namePrompt = "Enter your name: "
	usage      = "commands: 0-8 or move <cell>, leave, join, quit"
)

// Console reads the player name and commands from a line oriented input.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// AskName prompts until a non-empty name is entered. It returns an empty name when the input ends.
func (that *Console) AskName(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if _, err := fmt.Fprint(that.out, namePrompt); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := that.readLine()
		if errors.Is(err, io.EOF) {
			return line, nil
		}

		if err != nil {
			return "", err
		}

		if line != "" {
			return line, nil
		}
	}
}

// Commands parses input lines into session commands. The end of the input is
// reported as Quit. Reads are not interruptible: after the context is canceled
// the goroutine stops at its next send, and a read already waiting on input
// stays blocked until a line arrives or the process exits.
func (that *Console) Commands(ctx context.Context) <-chan session.Command {
	commands := make(chan session.Command)

	go func() {
		defer close(commands)

		for {
			line, err := that.readLine()
			if err != nil && line == "" {
				send(ctx, commands, session.Quit{})
				return
			}

			if line == "" {
				continue
			}

			cmd, parseErr := ParseCommand(line)
			if parseErr != nil {
				_, _ = fmt.Fprintf(that.out, "%v\n%s\n", parseErr, usage)
				continue
			}

			if !send(ctx, commands, cmd) {
				return
			}

			if err != nil {
				send(ctx, commands, session.Quit{})
				return
			}
		}
	}()

	return commands
}

// ParseCommand turns one input line into a command.
func ParseCommand(line string) (session.Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}

	switch {
	case len(fields) == 1 && (fields[0] == "quit" || fields[0] == "exit"):
		return session.Quit{}, nil
	case len(fields) == 1 && fields[0] == "leave":
		return session.Leave{}, nil
	case len(fields) == 1 && fields[0] == "join":
		return session.Join{}, nil
	case len(fields) == 1:
		return parseMove(fields[0])
	case len(fields) == 2 && fields[0] == "move":
		return parseMove(fields[1])
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, line)
	}
}

func parseMove(value string) (session.Command, error) {
	cell, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, value)
	}

	return session.Move{Cell: cell}, nil
}

func (that *Console) readLine() (string, error) {
	line, err := that.in.ReadString('\n')
	line = strings.TrimSpace(line)

	if err != nil && !errors.Is(err, io.EOF) {
		return line, fmt.Errorf("failed to read input: %w", err)
	}

	return line, err
}

func send(ctx context.Context, commands chan<- session.Command, cmd session.Command) bool {
	select {
	case commands <- cmd:
		return true
	case <-ctx.Done():
		return false
	}
}
