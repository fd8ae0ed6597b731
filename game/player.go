package game

import "fmt"

// Player owns the four coins of one color.
type Player struct {
	color Color
	coins [CoinsPerPlayer]Coin
}

// NewPlayer returns a player with every coin in jail.
func NewPlayer(color Color) *Player {
	p := &Player{color: color}
	for i := range p.coins {
		p.coins[i] = NewCoin(CoinID{Color: color, Index: i})
	}
	return p
}

func (p *Player) Color() Color { return p.color }

// Coin returns the coin with the given index (0-3).
func (p *Player) Coin(idx int) *Coin {
	return &p.coins[idx]
}

// Coins returns pointers to the player's coins in index order.
func (p *Player) Coins() []*Coin {
	return p.filter(func(*Coin) bool { return true })
}

// Lookup resolves a coin identity, rejecting coins of other players.
func (p *Player) Lookup(id CoinID) (*Coin, error) {
	if !id.Valid() || id.Color != p.color {
		return nil, fmt.Errorf("%w: %s is not a %s coin", ErrUnknownCoin, id, p.color)
	}
	return &p.coins[id.Index], nil
}

func (p *Player) InJail() []*Coin {
	return p.filter((*Coin).InJail)
}

func (p *Player) FinishedCoins() []*Coin {
	return p.filter((*Coin).Finished)
}

func (p *Player) OnHomeColumn() []*Coin {
	return p.filter((*Coin).OnHomeColumn)
}

// MovableCoins returns the coins on the board that can advance die squares
// without overshooting the finish.
func (p *Player) MovableCoins(die int) []*Coin {
	return p.filter(func(c *Coin) bool {
		return !c.Finished() && !c.InJail() && c.Rel()+die <= Finish
	})
}

// Progress is how much of the game the player has completed, in percent.
func (p *Player) Progress() float64 {
	total := 0.0
	for i := range p.coins {
		total += 100 / float64(CoinsPerPlayer) * float64(p.coins[i].Rel()) / Finish
	}
	return total
}

// HasWon reports whether all coins reached the finish.
func (p *Player) HasWon() bool {
	return len(p.FinishedCoins()) == CoinsPerPlayer
}

func (p *Player) filter(keep func(*Coin) bool) []*Coin {
	var coins []*Coin
	for i := range p.coins {
		if keep(&p.coins[i]) {
			coins = append(coins, &p.coins[i])
		}
	}
	return coins
}
