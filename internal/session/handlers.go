package session

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/message"
	"github.com/rocketscienceinc/tictactoe-client/internal/render"
)

const (
	tieNotice      = "Game over! It's a tie!"
	gameOverNotice = "Game over!"
)

// Handle reacts to one server message.
func (that *Session) Handle(ctx context.Context, msg message.Message) error {
	switch m := msg.(type) {
	case message.Join:
		that.updateGame(m.Snapshot, nil)
	case message.Moved:
		that.updateGame(m.Snapshot, nil)
	case message.Joined:
		return that.handleJoined(ctx, m.Snapshot)
	case message.GameOver:
		that.handleGameOver(m.Snapshot)
	case message.Left:
		return that.handleLeft(ctx, m.Snapshot)
	case message.Failure:
		that.notify(render.LevelError, m.Content)
	default:
		return fmt.Errorf("unexpected message %T", msg)
	}

	return nil
}

// Execute performs one user command. Quit is handled by Run.
func (that *Session) Execute(ctx context.Context, cmd Command) error {
	switch c := cmd.(type) {
	case Move:
		return that.makeMove(ctx, c.Cell)
	case Leave:
		return that.leave(ctx)
	case Join:
		return that.join(ctx)
	case Quit:
		return nil
	default:
		return fmt.Errorf("unexpected command %T", cmd)
	}
}

// handleJoined adopts a join confirmation for the held game, or for a game
// this player sits in when none is held yet, and follows that game's topic.
func (that *Session) handleJoined(ctx context.Context, snapshot entity.Snapshot) error {
	log := that.logger.With("method", "handleJoined", "game_id", snapshot.GameID)

	if that.game != nil && that.game.GameID != snapshot.GameID {
		log.Debug("ignoring join of another game")
		return nil
	}

	if that.game == nil && !snapshot.HasPlayer(that.player) {
		log.Debug("ignoring join of a game without this player")
		return nil
	}

	profile, err := that.profiles.GetByID(ctx, that.clientID)
	switch {
	case err != nil:
		log.Warn("failed to reload player name", "error", err)
	case profile.Name != "":
		that.player = profile.Name
	}

	that.updateGame(snapshot, nil)

	topic := message.GameTopic(snapshot.GameID)
	if that.topics[topic] {
		return nil
	}

	if err = that.sub.Subscribe(ctx, topic); err != nil {
		return fmt.Errorf("failed to subscribe to game topic: %w", err)
	}

	that.topics[topic] = true
	log.Info("following game")

	return nil
}

func (that *Session) handleGameOver(snapshot entity.Snapshot) {
	if snapshot.IsTie() {
		that.updateGame(snapshot, nil)
		that.notify(render.LevelSuccess, tieNotice)
		return
	}

	that.replaceGame(snapshot)
	that.showWinner()
}

// handleLeft shows the game the opponent left. A snapshot without this
// player means the seat is gone, so the held game is released.
func (that *Session) handleLeft(ctx context.Context, snapshot entity.Snapshot) error {
	if !snapshot.HasPlayer(that.player) {
		if that.game == nil || that.game.GameID != snapshot.GameID {
			return nil
		}

		return that.releaseGame(ctx)
	}

	if !snapshot.HasWinner() {
		that.updateGame(snapshot, nil)
		return nil
	}

	that.replaceGame(snapshot)
	that.showWinner()

	return nil
}

// showWinner draws the held game with its winning line, when there is exactly one, and announces the winner.
func (that *Session) showWinner() {
	that.draw(that.winningLine())

	if !that.game.HasWinner() {
		that.notify(render.LevelSuccess, gameOverNotice)
		return
	}

	that.notify(render.LevelSuccess, fmt.Sprintf("The winner is %s!", that.game.Winner))
}

func (that *Session) winningLine() []int {
	positions, err := entity.EvaluateWinner(that.game.Board)
	if err != nil {
		that.logger.Error("failed to evaluate winner", "error", err)
		return nil
	}

	if len(positions) != entity.BoardSize {
		return nil
	}

	return positions
}

func (that *Session) makeMove(ctx context.Context, cell int) error {
	if that.game == nil {
		return apperror.ErrNoActiveGame
	}

	current, err := that.game.Board.At(cell)
	if err != nil {
		return err
	}

	if current != entity.CellEmpty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return that.publish(ctx, message.MoveRequest{
		GameID: that.game.GameID,
		Sender: that.player,
		Turn:   that.game.Turn,
		Move:   cell,
	})
}

func (that *Session) leave(ctx context.Context) error {
	if that.game == nil {
		return apperror.ErrNoActiveGame
	}

	if err := that.publish(ctx, message.LeaveRequest{Player: that.player}); err != nil {
		return err
	}

	return that.releaseGame(ctx)
}

func (that *Session) join(ctx context.Context) error {
	if that.game != nil && !that.game.IsOver() && !that.game.HasWinner() {
		return apperror.ErrGameInProgress
	}

	if that.game != nil {
		if err := that.releaseGame(ctx); err != nil {
			return err
		}
	}

	return that.publish(ctx, message.JoinRequest{Player: that.player})
}

// releaseGame forgets the held game and stops following its topic.
func (that *Session) releaseGame(ctx context.Context) error {
	topic := message.GameTopic(that.game.GameID)
	that.game = nil

	if !that.topics[topic] {
		return nil
	}

	delete(that.topics, topic)

	if err := that.sub.Unsubscribe(ctx, topic); err != nil {
		return fmt.Errorf("failed to unsubscribe from game topic: %w", err)
	}

	that.logger.Info("released game", "topic", topic)

	return nil
}

func (that *Session) updateGame(snapshot entity.Snapshot, highlight []int) {
	that.replaceGame(snapshot)
	that.draw(highlight)
}

func (that *Session) replaceGame(snapshot entity.Snapshot) {
	var current entity.Snapshot
	if that.game != nil {
		current = *that.game
	}

	next := entity.ApplySnapshot(current, snapshot)
	that.game = &next
}

func (that *Session) draw(highlight []int) {
	if err := that.renderer.Board(*that.game, highlight); err != nil {
		that.logger.Error("failed to render board", "error", err)
	}
}

func (that *Session) notify(level render.Level, text string) {
	if err := that.renderer.Notify(render.Notice{Level: level, Text: text}); err != nil {
		that.logger.Error("failed to render notice", "error", err)
	}
}
