package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

// fixedRand always returns pick and records every range it was asked for.
type fixedRand struct {
	pick  int
	calls []int
}

func (that *fixedRand) IntN(n int) int {
	that.calls = append(that.calls, n)
	if that.pick >= n {
		return n - 1
	}
	return that.pick
}

func TestBotService_ChooseMove(t *testing.T) {
	t.Run("Takes the win before blocking", func(t *testing.T) {
		// Given: X threatens the top row while O can finish the middle row
		board := entity.Board{x, x, e, e, o, o, e, e, e}
		bot := NewBotService(&fixedRand{})

		// When: O chooses a move
		cell, err := bot.ChooseMove(board, o, x)

		// Then: O completes its own line
		require.NoError(t, err)
		assert.Equal(t, 3, cell)
	})

	t.Run("Blocks the opponent line", func(t *testing.T) {
		// Given: X threatens the top row and O has no winning cell
		board := entity.Board{x, x, e, e, o, e, e, e, e}
		bot := NewBotService(&fixedRand{})

		// When: O chooses a move
		cell, err := bot.ChooseMove(board, o, x)

		// Then: O blocks at cell 2
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Takes the center when free", func(t *testing.T) {
		// Given: X opened in a corner
		board := entity.Board{x, e, e, e, e, e, e, e, e}
		rnd := &fixedRand{}
		bot := NewBotService(rnd)

		// When: O chooses a move
		cell, err := bot.ChooseMove(board, o, x)

		// Then: the center is picked without consulting the random source
		require.NoError(t, err)
		assert.Equal(t, 4, cell)
		assert.Empty(t, rnd.calls)
	})

	t.Run("Picks among open corners", func(t *testing.T) {
		// Given: center taken and corners 2 and 6 free, no threats
		board := entity.Board{x, e, e, e, o, e, e, e, x}
		rnd := &fixedRand{pick: 1}
		bot := NewBotService(rnd)

		// When: O chooses a move
		cell, err := bot.ChooseMove(board, o, x)

		// Then: the random pick selects among the open corners only
		require.NoError(t, err)
		assert.Equal(t, []int{2}, rnd.calls)
		assert.Equal(t, 6, cell)
	})

	t.Run("Only one corner left", func(t *testing.T) {
		// Given: center taken, corner 8 is the only open corner, no line can be completed
		board := entity.Board{x, o, x, e, o, e, o, x, e}
		rnd := &fixedRand{}
		bot := NewBotService(rnd)

		// When: X chooses a move
		cell, err := bot.ChooseMove(board, x, o)

		// Then: the last corner is taken
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
		assert.Equal(t, []int{1}, rnd.calls)
	})

	t.Run("Falls back to edges", func(t *testing.T) {
		// Given: center and corners taken, only edge 5 is open and it completes nothing
		board := entity.Board{o, x, o, o, x, e, x, o, x}
		rnd := &fixedRand{}
		bot := NewBotService(rnd)

		// When: O chooses a move
		cell, err := bot.ChooseMove(board, o, x)

		// Then: the edge is picked
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
		assert.Equal(t, []int{1}, rnd.calls)
	})

	t.Run("No legal move on a full board", func(t *testing.T) {
		// Given: a full board
		board := entity.Board{x, o, x, x, o, o, o, x, x}
		bot := NewBotService(&fixedRand{})

		// When: the bot is asked for a move
		cell, err := bot.ChooseMove(board, o, x)

		// Then: it reports that no move is possible
		require.ErrorIs(t, err, ErrNoAvailableMoves)
		assert.Equal(t, -1, cell)
	})

	t.Run("Does not change the board", func(t *testing.T) {
		board := entity.Board{x, x, e, e, o, e, e, e, e}
		before := board

		_, err := NewBotService(nil).ChooseMove(board, o, x)

		require.NoError(t, err)
		assert.Equal(t, before, board)
	})
}
