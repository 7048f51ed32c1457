package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// Evaluate returns the mark owning a complete line, entity.PlayerTie for a
// full board without a line, or entity.NoWinner while the round goes on.
func Evaluate(board entity.Board) string {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	if !board.IsFull() {
		return entity.NoWinner
	}

	return entity.PlayerTie
}

// TryMove validates the move and returns the next match state. The given
// match is never modified.
func TryMove(match *entity.Match, cell int, player string) (*entity.Match, error) {
	if err := validateMove(match, cell, player); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	next := match.Clone()
	next.Board[cell] = player

	switch outcome := Evaluate(next.Board); outcome {
	case entity.NoWinner:
		next.CurrentPlayer = entity.ToggleMark(player)
	default:
		resolveRound(next, outcome)
	}

	return next, nil
}

// NextRound starts the following round on a cleared board. X always opens a round.
func NextRound(match *entity.Match) (*entity.Match, error) {
	switch match.State() {
	case entity.StateMatchOver:
		return nil, apperror.ErrMatchOver
	case entity.StateInProgress:
		return nil, apperror.ErrRoundNotOver
	}

	next := match.Clone()
	next.Round++
	clearBoard(next)

	return next, nil
}

// RestartRound replays the current round from an empty board. Scores and
// round counter stay as they are.
func RestartRound(match *entity.Match) (*entity.Match, error) {
	switch match.State() {
	case entity.StateMatchOver:
		return nil, apperror.ErrMatchOver
	case entity.StateRoundResolved:
		return nil, apperror.ErrRoundResolved
	}

	next := match.Clone()
	clearBoard(next)

	return next, nil
}

// Reset returns a fresh first round with zeroed scores.
func Reset(match *entity.Match) *entity.Match {
	return entity.NewMatch(match.MaxRounds)
}

// validateMove - checks if the move is valid.
func validateMove(match *entity.Match, cell int, player string) error {
	switch match.State() {
	case entity.StateMatchOver:
		return apperror.ErrMatchOver
	case entity.StateRoundResolved:
		return apperror.ErrRoundResolved
	}

	if cell < 0 || cell >= len(match.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if match.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	if match.CurrentPlayer != player {
		return apperror.ErrNotYourTurn
	}

	return nil
}

func resolveRound(match *entity.Match, outcome string) {
	match.Winner = outcome
	match.Scores.Add(outcome)

	if match.IsLastRound() {
		match.Winner = match.Scores.Leader()
		match.IsOver = true
	}
}

func clearBoard(match *entity.Match) {
	match.Board = entity.Board{}
	match.CurrentPlayer = entity.PlayerX
	match.Winner = entity.NoWinner
}
