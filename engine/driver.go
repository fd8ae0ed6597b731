package engine

import (
	"context"
	"errors"
	"fmt"
	"ludo/communication"
	"ludo/experiments/metrics"
	"ludo/game"
	"time"

	"github.com/rs/zerolog"
)

type Option func(d *Driver)

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) {
		d.log = logger
	}
}

// WithSnapshots makes the driver publish a snapshot after every turn. Sends
// block until the snapshot is taken or the context is done.
func WithSnapshots(snapshots chan<- game.Snapshot) Option {
	return func(d *Driver) {
		d.snapshots = snapshots
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(d *Driver) {
		if collector != nil {
			d.metrics = collector
		}
	}
}

// Driver plays the local side of a match over a Communicator. It keeps a
// mirror of the whole board by applying the opponent's reported moves too.
type Driver struct {
	comm      communication.Communicator
	log       zerolog.Logger
	snapshots chan<- game.Snapshot
	metrics   metrics.Collector

	startup communication.Startup
	timeout time.Duration
	state   *game.State
	role    Role
	turn    int
}

var _ Engine = &Driver{}

func NewDriver(comm communication.Communicator, options ...Option) *Driver {
	d := &Driver{
		comm:    comm,
		log:     zerolog.Nop(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// Start reads the startup line and seats both players.
func (d *Driver) Start(ctx context.Context) error {
	line, err := d.comm.ReadLine(ctx)
	if err != nil {
		return fmt.Errorf("failed to read startup: %w", err)
	}
	startup, err := communication.ParseStartup(line)
	if err != nil {
		return err
	}
	state, err := game.NewState(startup.Mode, startup.PlayerID)
	if err != nil {
		return err
	}

	d.startup = startup
	d.state = state
	d.timeout = time.Duration(startup.TimeLimit) * time.Second
	d.role = Deciding
	if startup.PlayerID == 2 {
		d.role = Observing
	}
	d.log = d.log.With().Str("color", state.Local().Color().String()).Logger()
	d.metrics.Start()

	d.log.Info().
		Int("player", startup.PlayerID).
		Int("time_limit", startup.TimeLimit).
		Int("mode", startup.Mode).
		Msgf("playing %s against %s", state.Local().Color(), state.Opponent().Color())
	return d.emit(ctx, state.Local().Color(), nil)
}

// Run plays until a player has won. It returns communication.ErrClosed when
// the client goes away first.
func (d *Driver) Run(ctx context.Context) error {
	if d.state == nil {
		if err := d.Start(ctx); err != nil {
			return err
		}
	}
	for {
		if winner, ok := d.state.Winner(); ok {
			d.log.Info().Str("winner", winner.String()).Int("turns", d.turn).Msg("game over")
			return nil
		}
		if err := d.Step(ctx); err != nil {
			return err
		}
	}
}

// Step plays one deciding or observing cycle.
func (d *Driver) Step(ctx context.Context) error {
	if d.state == nil {
		return errors.New("driver has not started")
	}
	if d.role == Deciding {
		return d.decide(ctx)
	}
	return d.observe(ctx)
}

func (d *Driver) decide(ctx context.Context) error {
	if err := d.comm.WriteLine(communication.Throw); err != nil {
		return fmt.Errorf("failed to request roll: %w", err)
	}
	line, err := d.readLine(ctx)
	if err != nil {
		return fmt.Errorf("failed to read roll: %w", err)
	}
	dice, err := communication.ParseRoll(line)
	if err != nil {
		return err
	}
	d.log.Info().Ints("dice", dice).Msg("received roll")

	start := time.Now()
	local, opponent := d.state.Local(), d.state.Opponent()
	moves, outcome, err := local.PlayMultipleRolls(dice, opponent)
	if err != nil {
		return fmt.Errorf("failed to play roll %v: %w", dice, err)
	}
	d.metrics.AddTurn(time.Since(start))

	for _, m := range moves {
		d.log.Info().Str("move", m.String()).Str("kind", m.Kind.String()).Msg("playing move")
		d.metrics.AddDecision(m.Kind)
	}
	if len(moves) == 0 {
		d.metrics.AddNoMove()
	}
	d.metrics.AddCaptures(len(outcome.Killed))
	d.log.Debug().Bool("repeat_expected", outcome.GrantsRepeat()).Msg("turn outcome")

	reply := communication.FormatMoves(moves, false)
	d.log.Info().Str("moves", reply).Msg("sending moves")
	if err := d.comm.WriteLine(reply); err != nil {
		return fmt.Errorf("failed to send moves: %w", err)
	}

	d.turn++
	d.role = Observing
	return d.emit(ctx, local.Color(), moves)
}

func (d *Driver) observe(ctx context.Context) error {
	line, err := d.readLine(ctx)
	if err != nil {
		return fmt.Errorf("failed to read opponent report: %w", err)
	}
	if line == communication.Repeat {
		d.log.Info().Msg("playing again")
		d.role = Deciding
		return nil
	}
	// The dice description is informational only.
	if dice, err := communication.ParseRoll(line); err != nil {
		d.log.Warn().Str("line", line).Msg("unrecognised opponent roll")
	} else {
		d.log.Debug().Ints("dice", dice).Msg("opponent rolled")
	}

	line, err = d.readLine(ctx)
	if err != nil {
		return fmt.Errorf("failed to read opponent moves: %w", err)
	}
	moves, repeat, err := communication.ParseMoves(line)
	if err != nil {
		return err
	}

	local, opponent := d.state.Local(), d.state.Opponent()
	outcome, err := opponent.ApplyMoves(moves, local)
	if err != nil {
		return fmt.Errorf("opponent report %q: %w", line, err)
	}
	d.metrics.AddLosses(len(outcome.Killed))
	d.log.Info().Str("moves", line).Bool("repeat", repeat).Msg("opponent moved")
	if repeat != outcome.GrantsRepeat() {
		d.log.Debug().Bool("repeat", repeat).Msg("repeat differs from local rules")
	}

	d.turn++
	if !repeat {
		d.role = Deciding
	}
	return d.emit(ctx, opponent.Color(), moves)
}

func (d *Driver) readLine(ctx context.Context) (string, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return d.comm.ReadLine(ctx)
}

func (d *Driver) emit(ctx context.Context, mover game.Color, moves []game.Move) error {
	if d.snapshots == nil {
		return nil
	}
	snap := d.state.Snapshot()
	snap.Turn = d.turn
	snap.Mover = mover
	snap.Moves = make([]string, 0, len(moves))
	for _, m := range moves {
		snap.Moves = append(snap.Moves, m.String())
	}

	select {
	case d.snapshots <- snap:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns a copy of the driver's view of the board.
func (d *Driver) State() *game.State {
	if d.state == nil {
		return nil
	}
	return d.state.Copy()
}

func (d *Driver) Role() Role {
	return d.role
}

func (d *Driver) Startup() communication.Startup {
	return d.startup
}

// Metrics returns what the driver's collector has gathered so far.
func (d *Driver) Metrics() metrics.PlayerMetric {
	return d.metrics.Complete()
}
