package metrics

import (
	"ludo/game"
	"sync/atomic"
	"time"
)

// PlayerMetric summarises how one side played a match.
type PlayerMetric struct {
	Turns     int
	Opens     int
	Kills     int
	Advances  int
	NoMoves   int
	Captures  int // opponent coins sent to jail
	Losses    int // own coins sent to jail
	ThinkTime time.Duration
	Duration  time.Duration
}

type MatchMetric struct {
	Winner    string
	Turns     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Collector interface {
	Start()
	AddTurn(think time.Duration)
	AddDecision(kind game.MoveKind)
	AddNoMove()
	AddCaptures(n int)
	AddLosses(n int)
	Complete() PlayerMetric
}

type collector struct {
	startTime time.Time
	turns     atomic.Int32
	opens     atomic.Int32
	kills     atomic.Int32
	advances  atomic.Int32
	noMoves   atomic.Int32
	captures  atomic.Int32
	losses    atomic.Int32
	thinkTime atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddTurn(think time.Duration) {
	m.turns.Add(1)
	m.thinkTime.Add(int64(think))
}

func (m *collector) AddDecision(kind game.MoveKind) {
	switch kind {
	case game.OpenMove:
		m.opens.Add(1)
	case game.KillMove:
		m.kills.Add(1)
	case game.AdvanceMove:
		m.advances.Add(1)
	}
}

func (m *collector) AddNoMove() {
	m.noMoves.Add(1)
}

func (m *collector) AddCaptures(n int) {
	m.captures.Add(int32(n))
}

func (m *collector) AddLosses(n int) {
	m.losses.Add(int32(n))
}

func (m *collector) Complete() PlayerMetric {
	return PlayerMetric{
		Turns:     int(m.turns.Load()),
		Opens:     int(m.opens.Load()),
		Kills:     int(m.kills.Load()),
		Advances:  int(m.advances.Load()),
		NoMoves:   int(m.noMoves.Load()),
		Captures:  int(m.captures.Load()),
		Losses:    int(m.losses.Load()),
		ThinkTime: time.Duration(m.thinkTime.Load()),
		Duration:  time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                         {}
func (m *dummyCollector) AddTurn(think time.Duration)    {}
func (m *dummyCollector) AddDecision(kind game.MoveKind) {}
func (m *dummyCollector) AddNoMove()                     {}
func (m *dummyCollector) AddCaptures(n int)              {}
func (m *dummyCollector) AddLosses(n int)                {}
func (m *dummyCollector) Complete() PlayerMetric         { return PlayerMetric{} }
