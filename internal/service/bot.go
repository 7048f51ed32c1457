package service

import (
	"errors"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

const centerCell = 4

var (
	cornerCells = [4]int{0, 2, 6, 8}
	edgeCells   = [4]int{1, 3, 5, 7}
)

// Rand picks a uniform index in [0, n).
type Rand interface {
	IntN(n int) int
}

type BotService interface {
	ChooseMove(board entity.Board, self, opponent string) (int, error)
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // it's ok
}

type botService struct {
	rnd Rand
}

// NewBotService returns the heuristic opponent. A nil rnd uses the global source.
func NewBotService(rnd Rand) BotService {
	if rnd == nil {
		rnd = globalRand{}
	}

	return &botService{
		rnd: rnd,
	}
}

// ChooseMove picks a cell by priority: win, block, center, random corner,
// random edge.
func (that *botService) ChooseMove(board entity.Board, self, opponent string) (int, error) {
	if cell, ok := completingCell(board, self); ok {
		return cell, nil
	}

	if cell, ok := completingCell(board, opponent); ok {
		return cell, nil
	}

	if board[centerCell] == entity.EmptyCell {
		return centerCell, nil
	}

	if cell, ok := that.randomEmpty(board, cornerCells); ok {
		return cell, nil
	}

	if cell, ok := that.randomEmpty(board, edgeCells); ok {
		return cell, nil
	}

	return -1, ErrNoAvailableMoves
}

// completingCell returns the first empty cell that would give mark a line.
func completingCell(board entity.Board, mark string) (int, bool) {
	for _, cell := range board.EmptyCells() {
		board[cell] = mark
		won := hasLine(board, mark)
		board[cell] = entity.EmptyCell

		if won {
			return cell, true
		}
	}

	return -1, false
}

func hasLine(board entity.Board, mark string) bool {
	for _, combo := range entity.WinCombos {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}
	return false
}

func (that *botService) randomEmpty(board entity.Board, cells [4]int) (int, bool) {
	open := make([]int, 0, len(cells))
	for _, cell := range cells {
		if board[cell] == entity.EmptyCell {
			open = append(open, cell)
		}
	}

	if len(open) == 0 {
		return -1, false
	}

	return open[that.rnd.IntN(len(open))], true
}
