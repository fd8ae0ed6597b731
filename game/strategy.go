package game

import (
	"cmp"
	"fmt"
	"slices"
)

// FindKills lists the captures available with die, ordered by how far the
// target has progressed so the most valuable one is last.
func (p *Player) FindKills(die int, opponent *Player) []Kill {
	if opponent == nil {
		return nil
	}
	var kills []Kill
	for _, killer := range p.MovableCoins(die) {
		dest := killer.Rel() + die
		if killer.OnHomeColumn() || IsSafe(dest) {
			continue
		}
		spot := killer.RelativeToAbsolute(dest)
		for i := range opponent.coins {
			target := &opponent.coins[i]
			if target.Abs() == spot {
				kills = append(kills, Kill{Killer: killer.ID(), Target: target.ID(), TargetRel: target.Rel()})
			}
		}
	}
	slices.SortStableFunc(kills, func(a, b Kill) int {
		return cmp.Compare(a.TargetRel, b.TargetRel)
	})
	return kills
}

// SelectMove picks the move to play for a single die. In order of priority it
// opens a coin from jail, captures the opponent's most advanced reachable
// coin, or advances the own coin that has travelled furthest. Own coins may
// only share a square when it is safe. ok is false when nothing can move.
func (p *Player) SelectMove(die int, opponent *Player) (move Move, ok bool) {
	if die < MinDie || die > MaxDie {
		return Move{}, false
	}

	if IsOpeningDie(die) {
		if jailed := p.InJail(); len(jailed) > 0 {
			return Move{Coin: jailed[0].ID(), Die: die, Kind: OpenMove}, true
		}
	}

	if kills := p.FindKills(die, opponent); len(kills) > 0 {
		best := kills[len(kills)-1]
		return Move{Coin: best.Killer, Die: die, Kind: KillMove}, true
	}

	var best *Coin
	for _, c := range p.AdvanceCandidates(die) {
		// ties go to the higher index
		if best == nil || c.Rel() >= best.Rel() {
			best = c
		}
	}
	if best == nil {
		return Move{}, false
	}
	return Move{Coin: best.ID(), Die: die, Kind: AdvanceMove}, true
}

// AdvanceCandidates returns the movable coins whose move would not stack them
// on another own coin outside a safe square.
func (p *Player) AdvanceCandidates(die int) []*Coin {
	occupied := make(map[int]bool, CoinsPerPlayer)
	for i := range p.coins {
		occupied[p.coins[i].Rel()] = true
	}

	var candidates []*Coin
	for _, c := range p.MovableCoins(die) {
		dest := c.Rel() + die
		if occupied[dest] && !IsSafe(dest) {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// ApplyMoves plays moves for this player and sends captured opponent coins
// back to jail. The moves are checked before anything changes: if any of them
// is illegal an error wrapping ErrProtocol is returned and neither player is
// modified.
func (p *Player) ApplyMoves(moves []Move, opponent *Player) (Outcome, error) {
	next := *p
	var nextOpponent *Player
	if opponent != nil {
		cp := *opponent
		nextOpponent = &cp
	}

	var outcome Outcome
	for _, m := range moves {
		result, err := next.apply(m, nextOpponent)
		if err != nil {
			return Outcome{}, fmt.Errorf("cannot apply move %s: %w", m, err)
		}
		outcome.merge(result)
	}

	*p = next
	if opponent != nil {
		*opponent = *nextOpponent
	}
	return outcome, nil
}

func (p *Player) apply(m Move, opponent *Player) (Outcome, error) {
	var outcome Outcome
	coin, err := p.Lookup(m.Coin)
	if err != nil {
		return outcome, err
	}
	if m.Die < MinDie || m.Die > MaxDie {
		return outcome, fmt.Errorf("%w: %d", ErrDieOutOfRange, m.Die)
	}
	if coin.Finished() {
		return outcome, fmt.Errorf("%w: %s has already finished", ErrIllegalMove, coin.ID())
	}

	step := m.Die
	if coin.InJail() {
		if !IsOpeningDie(m.Die) {
			return outcome, fmt.Errorf("%w: %s can not leave jail with %d", ErrIllegalMove, coin.ID(), m.Die)
		}
		// leaving jail only reaches the starting square, whatever the die
		step = 1
	}
	if coin.Rel()+step > Finish {
		return outcome, fmt.Errorf("%w: %s overshoots the finish", ErrIllegalMove, coin.ID())
	}

	coin.Advance(step)
	if coin.Finished() {
		outcome.Finished = append(outcome.Finished, coin.ID())
	}

	if opponent == nil || IsSafe(coin.Rel()) {
		return outcome, nil
	}
	for i := range opponent.coins {
		target := &opponent.coins[i]
		if target.Abs() == coin.Abs() {
			target.SetRelativePosition(Jail)
			outcome.Killed = append(outcome.Killed, target.ID())
		}
	}
	return outcome, nil
}

// PlayMultipleRolls selects and applies a move for each roll in turn, so every
// decision sees the board left by the previous one. Rolls without a legal
// move are skipped.
func (p *Player) PlayMultipleRolls(rolls []int, opponent *Player) ([]Move, Outcome, error) {
	var played []Move
	var outcome Outcome
	for _, die := range rolls {
		move, ok := p.SelectMove(die, opponent)
		if !ok {
			continue
		}
		result, err := p.ApplyMoves([]Move{move}, opponent)
		if err != nil {
			return played, outcome, err
		}
		outcome.merge(result)
		played = append(played, move)
	}
	return played, outcome, nil
}
