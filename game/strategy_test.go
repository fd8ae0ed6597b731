package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ids(coins []*Coin) []CoinID {
	var out []CoinID
	for _, c := range coins {
		out = append(out, c.ID())
	}
	return out
}

// place puts coins of p at the given relative positions, in index order.
func place(p *Player, rels ...int) {
	for i, rel := range rels {
		p.Coin(i).SetRelativePosition(rel)
	}
}

func TestMovableCoins(t *testing.T) {
	t.Run("excludes jailed and finished coins", func(t *testing.T) {
		p := NewPlayer(Red)
		place(p, 0, 57, 20, 3)

		movable := p.MovableCoins(4)

		require.Len(t, movable, 2)
		require.Equal(t, CoinID{Red, 2}, movable[0].ID())
		require.Equal(t, CoinID{Red, 3}, movable[1].ID())
	})

	t.Run("a move landing exactly on the finish is allowed", func(t *testing.T) {
		p := NewPlayer(Green)
		place(p, 51, 52)

		movable := p.MovableCoins(6)

		require.Len(t, movable, 1, "51+6 reaches the finish, 52+6 overshoots it")
		require.Equal(t, 51, movable[0].Rel())
	})
}

func TestFindKills(t *testing.T) {
	t.Run("finds opponents on the landing square", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 10)
		place(yellow, 39) // ring square 13

		kills := red.FindKills(3, yellow)

		require.Equal(t, []Kill{{Killer: CoinID{Red, 0}, Target: CoinID{Yellow, 0}, TargetRel: 39}}, kills)
	})

	t.Run("orders kills by target progress", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 10, 30)
		place(yellow, 39, 7) // ring squares 13 and 33

		kills := red.FindKills(3, yellow)

		require.Len(t, kills, 2)
		require.Equal(t, CoinID{Yellow, 1}, kills[0].Target)
		require.Equal(t, CoinID{Yellow, 0}, kills[1].Target, "Most advanced target should come last")
	})

	t.Run("no kill onto a safe square", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 6)
		place(yellow, 35) // ring square 9, a star

		require.Empty(t, red.FindKills(3, yellow))
	})

	t.Run("coins on the home column can not kill", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 52)
		place(yellow, 2)

		require.Empty(t, red.FindKills(2, yellow))
	})

	t.Run("jailed opponents are never targets", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 10)

		require.Empty(t, red.FindKills(3, yellow))
	})
}

func TestSelectMove(t *testing.T) {
	t.Run("opens the lowest jailed coin on a six", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)

		move, ok := red.SelectMove(6, yellow)

		require.True(t, ok)
		require.Equal(t, Move{Coin: CoinID{Red, 0}, Die: 6, Kind: OpenMove}, move)

		_, err := red.ApplyMoves([]Move{move}, yellow)
		require.NoError(t, err)
		require.Equal(t, 1, red.Coin(0).Rel(), "Opening with a six should only reach the starting square")
	})

	t.Run("opening takes priority over a kill", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 0, 12)
		place(yellow, 39) // ring square 13

		move, ok := red.SelectMove(1, yellow)

		require.True(t, ok)
		require.Equal(t, OpenMove, move.Kind)
		require.Equal(t, CoinID{Red, 0}, move.Coin)
	})

	t.Run("kills the most advanced reachable opponent", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 10, 30, 45)
		place(yellow, 39, 7) // ring squares 13 and 33

		move, ok := red.SelectMove(3, yellow)

		require.True(t, ok)
		require.Equal(t, Move{Coin: CoinID{Red, 0}, Die: 3, Kind: KillMove}, move)

		_, err := red.ApplyMoves([]Move{move}, yellow)
		require.NoError(t, err)
		require.Equal(t, 13, red.Coin(0).Rel())
		require.Equal(t, 0, yellow.Coin(0).Rel(), "Captured coin should return to jail")
		require.Equal(t, 7, yellow.Coin(1).Rel())
	})

	t.Run("advances the furthest coin", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 5, 30, 17, 57)

		move, ok := red.SelectMove(4, yellow)

		require.True(t, ok)
		require.Equal(t, Move{Coin: CoinID{Red, 1}, Die: 4, Kind: AdvanceMove}, move)
	})

	t.Run("skips moves that stack own coins on an unsafe square", func(t *testing.T) {
		red := NewPlayer(Red)
		place(red, 10, 13, 2, 0)

		candidates := red.AdvanceCandidates(3)

		require.Equal(t, []CoinID{{Red, 1}, {Red, 2}}, ids(candidates),
			"10->13 would land on coin 1")

		move, ok := red.SelectMove(3, nil)
		require.True(t, ok)
		require.Equal(t, CoinID{Red, 1}, move.Coin)
	})

	t.Run("stacking is allowed on a safe square", func(t *testing.T) {
		red := NewPlayer(Red)
		place(red, 6, 9, 30, 0)

		candidates := red.AdvanceCandidates(3)

		require.Equal(t, []CoinID{{Red, 0}, {Red, 1}, {Red, 2}}, ids(candidates),
			"6->9 is a star so it may share the square")
	})

	t.Run("equal progress picks the higher index", func(t *testing.T) {
		red := NewPlayer(Red)
		place(red, 14, 14)

		move, ok := red.SelectMove(2, nil)

		require.True(t, ok)
		require.Equal(t, CoinID{Red, 1}, move.Coin)
	})

	t.Run("no move when nothing can advance", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)

		_, ok := red.SelectMove(3, yellow)
		require.False(t, ok, "All coins jailed and no opening die")

		place(red, 55, 56, 57, 57)
		_, ok = red.SelectMove(4, yellow)
		require.False(t, ok, "Every coin would overshoot the finish")
	})

	t.Run("dice outside the range never move", func(t *testing.T) {
		red := NewPlayer(Red)
		place(red, 10)

		_, ok := red.SelectMove(0, nil)
		require.False(t, ok)
		_, ok = red.SelectMove(7, nil)
		require.False(t, ok)
	})
}

func TestApplyMoves(t *testing.T) {
	t.Run("applying no moves changes nothing", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 3, 20)
		place(yellow, 8)
		before, beforeOpp := *red, *yellow

		outcome, err := red.ApplyMoves(nil, yellow)

		require.NoError(t, err)
		require.Empty(t, outcome.Killed)
		require.Equal(t, before, *red)
		require.Equal(t, beforeOpp, *yellow)
	})

	t.Run("opponent moves capture local coins", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 13)
		place(yellow, 37)

		outcome, err := yellow.ApplyMoves([]Move{{Coin: CoinID{Yellow, 0}, Die: 2}}, red)

		require.NoError(t, err)
		require.Equal(t, []CoinID{{Red, 0}}, outcome.Killed)
		require.True(t, outcome.GrantsRepeat())
		require.Equal(t, 0, red.Coin(0).Rel())
	})

	t.Run("coins on a safe square survive", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 27) // ring square 27, yellow's start
		place(yellow, 0, 0)

		outcome, err := yellow.ApplyMoves([]Move{{Coin: CoinID{Yellow, 0}, Die: 6}}, red)

		require.NoError(t, err)
		require.Empty(t, outcome.Killed)
		require.Equal(t, 27, red.Coin(0).Rel())
		require.Equal(t, 27, yellow.Coin(0).Abs(), "Both coins should share the safe square")
	})

	t.Run("reports finished coins", func(t *testing.T) {
		red := NewPlayer(Red)
		place(red, 51)

		outcome, err := red.ApplyMoves([]Move{{Coin: CoinID{Red, 0}, Die: 6}}, nil)

		require.NoError(t, err)
		require.Equal(t, []CoinID{{Red, 0}}, outcome.Finished)
		require.Equal(t, Finish, red.Coin(0).Rel())
	})

	t.Run("illegal moves leave both players untouched", func(t *testing.T) {
		tests := []struct {
			name string
			move Move
			want error
		}{
			{"coin of another color", Move{Coin: CoinID{Yellow, 0}, Die: 2}, ErrUnknownCoin},
			{"die too large", Move{Coin: CoinID{Red, 1}, Die: 7}, ErrDieOutOfRange},
			{"finished coin", Move{Coin: CoinID{Red, 2}, Die: 1}, ErrIllegalMove},
			{"leaving jail without a one or six", Move{Coin: CoinID{Red, 3}, Die: 4}, ErrIllegalMove},
			{"overshooting the finish", Move{Coin: CoinID{Red, 1}, Die: 6}, ErrIllegalMove},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				red, yellow := NewPlayer(Red), NewPlayer(Yellow)
				place(red, 12, 53, 57, 0)
				place(yellow, 41) // ring square 15
				before, beforeOpp := *red, *yellow

				// the first move is legal and captures, the second is not
				moves := []Move{{Coin: CoinID{Red, 0}, Die: 3}, tt.move}
				_, err := red.ApplyMoves(moves, yellow)

				require.ErrorIs(t, err, tt.want)
				require.ErrorIs(t, err, ErrProtocol)
				require.Equal(t, before, *red, "No partial move should be kept")
				require.Equal(t, beforeOpp, *yellow, "No partial capture should be kept")
			})
		}
	})
}

func TestPlayMultipleRolls(t *testing.T) {
	t.Run("each roll sees the board left by the previous one", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)

		moves, _, err := red.PlayMultipleRolls([]int{6, 3}, yellow)

		require.NoError(t, err)
		require.Equal(t, []Move{
			{Coin: CoinID{Red, 0}, Die: 6, Kind: OpenMove},
			{Coin: CoinID{Red, 0}, Die: 3, Kind: AdvanceMove},
		}, moves)
		require.Equal(t, 4, red.Coin(0).Rel())
	})

	t.Run("rolls without a move are skipped", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)

		moves, _, err := red.PlayMultipleRolls([]int{2, 6, 0}, yellow)

		require.NoError(t, err)
		require.Equal(t, []Move{{Coin: CoinID{Red, 0}, Die: 6, Kind: OpenMove}}, moves)
	})

	t.Run("collects captures across rolls", func(t *testing.T) {
		red, yellow := NewPlayer(Red), NewPlayer(Yellow)
		place(red, 10)
		place(yellow, 39)

		moves, outcome, err := red.PlayMultipleRolls([]int{3}, yellow)

		require.NoError(t, err)
		require.Len(t, moves, 1)
		require.Equal(t, []CoinID{{Yellow, 0}}, outcome.Killed)
	})
}
