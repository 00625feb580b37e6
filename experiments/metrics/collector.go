package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type RunMetric struct {
	Algorithm    string
	Goroutines   int
	Gamma        float64
	Tolerance    float64
	Duration     time.Duration
	Sweeps       int
	Evaluations  int
	Improvements int
	FinalDelta   float64
	Deltas       []float64 // Max-norm delta of every sweep, in order
}

type EpisodeMetric struct {
	Episode   int
	Steps     int
	Reward    float64
	Truncated bool
	Duration  time.Duration
}

type Collector interface {
	Start(algorithm string, goroutines int, gamma, tolerance float64)
	AddSweep(delta float64)
	AddEvaluation()
	AddImprovement()
	Stop()
	Complete() RunMetric
}

type collector struct {
	algorithm    string
	goroutines   int
	gamma        float64
	tolerance    float64
	startTime    time.Time
	endTime      time.Time
	evaluations  atomic.Int32
	improvements atomic.Int32
	mu           sync.Mutex
	deltas       []float64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, goroutines int, gamma, tolerance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.algorithm = algorithm
	m.goroutines = goroutines
	m.gamma = gamma
	m.tolerance = tolerance
	m.startTime = time.Now()
	m.endTime = time.Time{}
	m.deltas = nil
	m.evaluations.Store(0)
	m.improvements.Store(0)
}

func (m *collector) AddSweep(delta float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deltas = append(m.deltas, delta)
}

func (m *collector) AddEvaluation() {
	m.evaluations.Add(1)
}

func (m *collector) AddImprovement() {
	m.improvements.Add(1)
}

func (m *collector) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.endTime = time.Now()
}

func (m *collector) Complete() RunMetric {
	m.mu.Lock()
	defer m.mu.Unlock()

	end := m.endTime
	if end.IsZero() {
		end = time.Now()
	}
	deltas := make([]float64, len(m.deltas))
	copy(deltas, m.deltas)
	finalDelta := 0.0
	if len(deltas) > 0 {
		finalDelta = deltas[len(deltas)-1]
	}

	return RunMetric{
		Algorithm:    m.algorithm,
		Goroutines:   m.goroutines,
		Gamma:        m.gamma,
		Tolerance:    m.tolerance,
		Duration:     end.Sub(m.startTime),
		Sweeps:       len(deltas),
		Evaluations:  int(m.evaluations.Load()),
		Improvements: int(m.improvements.Load()),
		FinalDelta:   finalDelta,
		Deltas:       deltas,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, goroutines int, gamma, tolerance float64) {}
func (m *dummyCollector) AddSweep(delta float64)                                           {}
func (m *dummyCollector) AddEvaluation()                                                   {}
func (m *dummyCollector) AddImprovement()                                                  {}
func (m *dummyCollector) Stop()                                                            {}
func (m *dummyCollector) Complete() RunMetric                                              { return RunMetric{} }
