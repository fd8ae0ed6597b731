package gamemaster

import (
	"context"
	"fmt"
	"ludo/communication"
	"ludo/game"
	"ludo/meta"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// DiceFunc throws the dice for one turn.
type DiceFunc func() []int

type Option func(r *Referee)

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Referee) {
		r.log = logger
	}
}

// WithSeed makes the dice reproducible.
func WithSeed(seed uint64) Option {
	return func(r *Referee) {
		r.throw = Thrower(rand.New(rand.NewSource(seed)))
	}
}

// WithDice replaces the dice, mostly for scripted tests.
func WithDice(dice DiceFunc) Option {
	return func(r *Referee) {
		if dice != nil {
			r.throw = dice
		}
	}
}

func WithMaxTurns(turns int) Option {
	return func(r *Referee) {
		if turns > 0 {
			r.maxTurns = turns
		}
	}
}

func WithMode(mode int) Option {
	return func(r *Referee) {
		r.mode = mode
	}
}

func WithTimeLimit(seconds int) Option {
	return func(r *Referee) {
		r.timeLimit = seconds
	}
}

// Referee plays the client's side of the protocol for two seated players. It
// throws the dice, checks and mirrors every move and decides repeats.
type Referee struct {
	seats     [2]communication.Communicator
	throw     DiceFunc
	log       zerolog.Logger
	maxTurns  int
	mode      int
	timeLimit int
	state     *game.State
}

type Result struct {
	Winner    game.Color
	HasWinner bool
	Turns     int
	Hash      game.StateHash
}

func (r Result) WinnerName() string {
	if !r.HasWinner {
		return ""
	}
	return r.Winner.String()
}

func NewReferee(seats [2]communication.Communicator, options ...Option) *Referee {
	r := &Referee{
		seats:     seats,
		log:       zerolog.Nop(),
		maxTurns:  meta.MaxTurns,
		timeLimit: meta.TimeLimit,
	}
	WithSeed(meta.DefaultSeed)(r)
	for _, option := range options {
		option(r)
	}
	return r
}

// Thrower rolls one die at a time, rolling again after a six. Three sixes in
// a row forfeit the turn and are reported as a single zero.
func Thrower(rng *rand.Rand) DiceFunc {
	return func() []int {
		dice := make([]int, 0, 3)
		for len(dice) < 3 {
			die := rng.Intn(game.MaxDie) + 1
			dice = append(dice, die)
			if die != game.MaxDie {
				return dice
			}
		}
		return []int{communication.Duck}
	}
}

// State returns a copy of the referee's board, seen from player 1.
func (r *Referee) State() *game.State {
	if r.state == nil {
		return nil
	}
	return r.state.Copy()
}

// Run plays a match to the end. A seat that breaks the protocol loses the
// match and the violation is returned.
func (r *Referee) Run(ctx context.Context) (Result, error) {
	state, err := game.NewState(r.mode, 1)
	if err != nil {
		return Result{}, err
	}
	r.state = state

	for i, seat := range r.seats {
		startup := communication.Startup{PlayerID: i + 1, TimeLimit: r.timeLimit, Mode: r.mode}
		if err := seat.WriteLine(startup.String()); err != nil {
			return Result{}, fmt.Errorf("failed to start player %d: %w", i+1, err)
		}
	}

	current := 0
	result := Result{}
	for result.Turns < r.maxTurns {
		repeat, err := r.turn(ctx, current)
		if err != nil {
			return result, fmt.Errorf("player %d forfeits: %w", current+1, err)
		}
		result.Turns++

		if winner, ok := r.state.Winner(); ok {
			result.Winner, result.HasWinner = winner, true
			r.log.Info().Str("winner", winner.String()).Int("turns", result.Turns).Msg("match over")
			break
		}

		if repeat {
			if err := r.seats[current].WriteLine(communication.Repeat); err != nil {
				return result, err
			}
		} else {
			current = 1 - current
		}
	}
	if !result.HasWinner {
		r.log.Info().Int("turns", result.Turns).Msg("stopped without a winner")
	}
	result.Hash = r.state.Hash()
	return result, nil
}

// turn serves one throw for the seat and reports it to the other one.
func (r *Referee) turn(ctx context.Context, current int) (bool, error) {
	seat, other := r.seats[current], r.seats[1-current]

	line, err := seat.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	if line != communication.Throw {
		return false, fmt.Errorf("%w: expected %s, got %q", game.ErrProtocol, communication.Throw, line)
	}

	dice := r.throw()
	if err := seat.WriteLine(communication.FormatRoll("YOU", dice)); err != nil {
		return false, err
	}

	line, err = seat.ReadLine(ctx)
	if err != nil {
		return false, err
	}
	moves, _, err := communication.ParseMoves(line)
	if err != nil {
		return false, err
	}
	if err := checkDice(moves, dice); err != nil {
		return false, err
	}

	mover := r.state.Player(current + 1)
	outcome, err := mover.ApplyMoves(moves, r.state.OpponentOf(mover))
	if err != nil {
		return false, err
	}
	repeat := outcome.GrantsRepeat()
	r.log.Debug().
		Str("player", mover.Color().String()).
		Ints("dice", dice).
		Str("moves", line).
		Bool("repeat", repeat).
		Msg("turn")

	if err := other.WriteLine(communication.FormatRoll("THEY", dice)); err != nil {
		return false, err
	}
	if err := other.WriteLine(communication.FormatMoves(moves, repeat)); err != nil {
		return false, err
	}
	return repeat, nil
}

// checkDice makes sure every move spends one of the thrown dice.
func checkDice(moves []game.Move, dice []int) error {
	left := slices.Clone(dice)
	for _, m := range moves {
		i := slices.Index(left, m.Die)
		if i < 0 {
			return fmt.Errorf("%w: %s uses a die that was not thrown %v", game.ErrIllegalMove, m, dice)
		}
		left = slices.Delete(left, i, i+1)
	}
	return nil
}
