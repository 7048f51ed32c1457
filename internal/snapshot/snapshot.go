// Package snapshot converts matches to and from the full-state documents
// exchanged through the shared room store.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"
)

// WinnerTie is the wire value of a tied round or match.
const WinnerTie = "tie"

var ErrMalformedSnapshot = errors.New("malformed snapshot")

type Scores struct {
	X int `json:"X"`
	O int `json:"O"`
}

// Snapshot is the complete state of a room's match. Each write replaces the
// previous one, so a reader never needs the intermediate states.
type Snapshot struct {
	Board         []string `json:"board"`
	CurrentPlayer string   `json:"currentPlayer"`
	Winner        string   `json:"winner"`
	Round         int      `json:"round"`
	MaxRounds     int      `json:"maxRounds,omitempty"`
	Scores        Scores   `json:"scores"`
	GameOver      bool     `json:"gameOver"`
	Version       int64    `json:"version"`
}

func FromMatch(match *entity.Match, version int64) Snapshot {
	board := make([]string, len(match.Board))
	copy(board, match.Board[:])

	return Snapshot{
		Board:         board,
		CurrentPlayer: match.CurrentPlayer,
		Winner:        encodeWinner(match.Winner),
		Round:         match.Round,
		MaxRounds:     match.MaxRounds,
		Scores:        Scores{X: match.Scores.X, O: match.Scores.O},
		GameOver:      match.IsOver,
		Version:       version,
	}
}

func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}

	return snap, nil
}

func (that Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(that)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return data, nil
}

// Apply validates the snapshot and projects it onto a match. Missing fields
// take their defaults; contradictory ones are rejected. The winner is always
// derived from the board (or the scores once the match is over), so applying
// the same snapshot twice gives the same match.
func Apply(snap Snapshot) (*entity.Match, error) {
	match := entity.NewMatch(entity.DefaultMaxRounds)

	if snap.MaxRounds < 0 {
		return nil, malformed("max rounds %d", snap.MaxRounds)
	}
	if snap.MaxRounds > 0 {
		match.MaxRounds = snap.MaxRounds
	}

	if snap.Round < 0 || snap.Round > match.MaxRounds {
		return nil, malformed("round %d of %d", snap.Round, match.MaxRounds)
	}
	if snap.Round > 0 {
		match.Round = snap.Round
	}

	board, err := decodeBoard(snap.Board)
	if err != nil {
		return nil, err
	}
	if err = checkReachable(board); err != nil {
		return nil, err
	}
	match.Board = board

	if snap.Scores.X < 0 || snap.Scores.O < 0 || snap.Scores.X+snap.Scores.O > match.Round {
		return nil, malformed("scores %d:%d in round %d", snap.Scores.X, snap.Scores.O, match.Round)
	}
	match.Scores = entity.Scores{X: snap.Scores.X, O: snap.Scores.O}

	switch snap.CurrentPlayer {
	case "":
	case entity.PlayerX, entity.PlayerO:
		match.CurrentPlayer = snap.CurrentPlayer
	default:
		return nil, malformed("current player %q", snap.CurrentPlayer)
	}

	winner, err := decodeWinner(snap.Winner)
	if err != nil {
		return nil, err
	}

	outcome := tictactoe.Evaluate(match.Board)
	if entity.IsMark(outcome) && pointsOf(match.Scores, outcome) == 0 {
		return nil, malformed("winner %q of round %d has no point", outcome, match.Round)
	}

	if snap.GameOver || (outcome != entity.NoWinner && match.IsLastRound()) {
		return finished(match, winner, outcome, snap.GameOver)
	}

	if winner != entity.NoWinner && winner != outcome {
		return nil, malformed("winner %q does not match the board", snap.Winner)
	}
	match.Winner = outcome

	return match, nil
}

func finished(match *entity.Match, winner, outcome string, declared bool) (*entity.Match, error) {
	if outcome == entity.NoWinner {
		return nil, malformed("match over on an unfinished board")
	}

	if declared && match.Round != match.MaxRounds {
		return nil, malformed("match over in round %d of %d", match.Round, match.MaxRounds)
	}

	final := match.Scores.Leader()
	if declared && winner != entity.NoWinner && winner != final {
		return nil, malformed("winner %q does not match the scores", winner)
	}

	match.Winner = final
	match.IsOver = true

	return match, nil
}

func decodeBoard(cells []string) (entity.Board, error) {
	var board entity.Board

	if len(cells) != len(board) {
		return board, malformed("board has %d cells", len(cells))
	}

	for i, cell := range cells {
		if cell != entity.EmptyCell && !entity.IsMark(cell) {
			return board, malformed("cell %d holds %q", i, cell)
		}
		board[i] = cell
	}

	return board, nil
}

// checkReachable rejects boards that alternating play starting with X
// cannot produce.
func checkReachable(board entity.Board) error {
	var xs, os int
	for _, cell := range board {
		switch cell {
		case entity.PlayerX:
			xs++
		case entity.PlayerO:
			os++
		}
	}

	if diff := xs - os; diff != 0 && diff != 1 {
		return malformed("%d X against %d O", xs, os)
	}

	xLine, oLine := hasLine(board, entity.PlayerX), hasLine(board, entity.PlayerO)

	switch {
	case xLine && oLine:
		return malformed("both marks have a line")
	case xLine && xs != os+1:
		return malformed("X line with %d X against %d O", xs, os)
	case oLine && xs != os:
		return malformed("O line with %d X against %d O", xs, os)
	}

	return nil
}

func hasLine(board entity.Board, mark string) bool {
	for _, combo := range entity.WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}
	return false
}

func pointsOf(scores entity.Scores, mark string) int {
	if mark == entity.PlayerX {
		return scores.X
	}
	return scores.O
}

func decodeWinner(value string) (string, error) {
	switch value {
	case "":
		return entity.NoWinner, nil
	case entity.PlayerX, entity.PlayerO:
		return value, nil
	case WinnerTie, entity.PlayerTie:
		return entity.PlayerTie, nil
	default:
		return "", malformed("winner %q", value)
	}
}

func encodeWinner(winner string) string {
	if winner == entity.PlayerTie {
		return WinnerTie
	}
	return winner
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedSnapshot, fmt.Sprintf(format, args...))
}
