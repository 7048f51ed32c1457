package entity

const (
	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
	NoWinner  = ""

	DefaultMaxRounds = 5
)

const (
	StateInProgress    = "in_progress"
	StateRoundResolved = "round_resolved"
	StateMatchOver     = "match_over"
)

// WinCombos are the rows, columns and diagonals of the board.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Board [9]string

// EmptyCells returns the indexes of the empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

type Scores struct {
	X int `json:"X"`
	O int `json:"O"`
}

func (that *Scores) Add(mark string) {
	switch mark {
	case PlayerX:
		that.X++
	case PlayerO:
		that.O++
	}
}

// Leader returns the mark with the strictly higher score or PlayerTie.
func (that Scores) Leader() string {
	switch {
	case that.X > that.O:
		return PlayerX
	case that.O > that.X:
		return PlayerO
	default:
		return PlayerTie
	}
}

// Match is a sequence of rounds played on one board.
//
// Winner holds the outcome of the current round once it is resolved and the
// final outcome of the match once IsOver is set.
type Match struct {
	Board         Board  `json:"board"`
	CurrentPlayer string `json:"current_player"`
	Scores        Scores `json:"scores"`
	Round         int    `json:"round"`
	MaxRounds     int    `json:"max_rounds"`
	Winner        string `json:"winner"`
	IsOver        bool   `json:"is_over"`
}

func NewMatch(maxRounds int) *Match {
	if maxRounds < 1 {
		maxRounds = DefaultMaxRounds
	}

	return &Match{
		Board:         Board{},
		CurrentPlayer: PlayerX,
		Round:         1,
		MaxRounds:     maxRounds,
		Winner:        NoWinner,
	}
}

func (that *Match) Clone() *Match {
	clone := *that
	return &clone
}

func (that *Match) State() string {
	switch {
	case that.IsOver:
		return StateMatchOver
	case that.Winner != NoWinner:
		return StateRoundResolved
	default:
		return StateInProgress
	}
}

func (that *Match) IsInProgress() bool {
	return that.State() == StateInProgress
}

func (that *Match) IsRoundResolved() bool {
	return that.State() == StateRoundResolved
}

func (that *Match) IsLastRound() bool {
	return that.Round >= that.MaxRounds
}

func ToggleMark(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func IsMark(value string) bool {
	return value == PlayerX || value == PlayerO
}
