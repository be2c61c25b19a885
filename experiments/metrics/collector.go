package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines  int
	Duration    time.Duration
	Episodes    int
	Terminals   int // Episodes ending on a finished game instead of an oracle call
	OracleCalls int
}

type MoveMetric struct {
	Step   int
	Player int // +1 white, -1 black
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines int)
	AddEpisode()
	AddTerminal()
	AddOracleCall()
	Complete() SearchMetric
}

type collector struct {
	goroutines  int
	startTime   time.Time
	episodes    atomic.Int32
	terminals   atomic.Int32
	oracleCalls atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.episodes.Store(0)
	m.terminals.Store(0)
	m.oracleCalls.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddTerminal() {
	m.terminals.Add(1)
}

func (m *collector) AddOracleCall() {
	m.oracleCalls.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:  m.goroutines,
		Duration:    time.Since(m.startTime),
		Episodes:    int(m.episodes.Load()),
		Terminals:   int(m.terminals.Load()),
		OracleCalls: int(m.oracleCalls.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)   {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) AddTerminal()           {}
func (m *dummyCollector) AddOracleCall()         {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
