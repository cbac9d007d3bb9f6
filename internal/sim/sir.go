/*
PURPOSE:
  Stochastic SIR epidemic model used as the benchmark workload.

REQUIREMENTS:
  User-specified:
  - Population 1000, infection rate 0.3, recovery rate 0.1, at most 365 days.
  - Record outbreak duration (days) and peak number of infected.

  Implementation-discovered:
  - A simulation is reused across runs (Reset) to keep allocation out of the timing.
  - Each goroutine needs its own random source.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Dependencies: math/rand/v2

ERROR HANDLING:
  - None. Params are validated by internal/config.

IMPLEMENTATION RULES:
  - No shared state between SIR values.

USAGE:
  s := sim.New(sim.DefaultParams(), rand.New(rand.NewPCG(1, 2)))
  stats := s.RunBatch(1000)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/strategy.go

MAINTENANCE:
  - Keep the daily update rule identical across strategies, otherwise timings are not comparable.
*/

package sim

import (
	"math/rand/v2"
)

// Params configures one SIR simulation.
type Params struct {
	Population int     `yaml:"population"`
	Beta       float64 `yaml:"beta"`
	Gamma      float64 `yaml:"gamma"`
	MaxDays    int     `yaml:"max_days"`
}

// DefaultParams returns the parameters the published results were produced with.
func DefaultParams() Params {
	return Params{
		Population: 1000,
		Beta:       0.3,
		Gamma:      0.1,
		MaxDays:    365,
	}
}

// Stats aggregates the outcomes of many simulations.
type Stats struct {
	Runs          int64 `json:"runs"`
	TotalDuration int64 `json:"total_duration_days"`
	TotalPeak     int64 `json:"total_peak_infected"`
}

// Add merges o into s.
func (s *Stats) Add(o Stats) {
	s.Runs += o.Runs
	s.TotalDuration += o.TotalDuration
	s.TotalPeak += o.TotalPeak
}

// MeanDuration is the average outbreak length in days.
func (s Stats) MeanDuration() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalDuration) / float64(s.Runs)
}

// MeanPeak is the average peak number of infected.
func (s Stats) MeanPeak() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalPeak) / float64(s.Runs)
}

// SIR holds the compartment counts of one outbreak.
type SIR struct {
	params Params
	rng    *rand.Rand

	S, I, R int
	Peak    int
	Days    int
}

// New creates a simulation seeded with one infected individual.
func New(p Params, rng *rand.Rand) *SIR {
	s := &SIR{params: p, rng: rng}
	s.Reset()
	return s
}

// Reset restores the initial state: everyone susceptible except one infected.
func (s *SIR) Reset() {
	s.S = s.params.Population - 1
	s.I = 1
	s.R = 0
	s.Peak = 0
	s.Days = 0
}

// Run advances day by day until nobody is infected or MaxDays is reached.
func (s *SIR) Run() {
	n := float64(s.params.Population)
	for s.I > 0 && s.Days < s.params.MaxDays {
		pInfect := s.params.Beta * float64(s.S) / n

		infections := 0
		for j := 0; j < s.I; j++ {
			if s.rng.Float64() < pInfect {
				infections++
			}
		}
		recoveries := 0
		for j := 0; j < s.I; j++ {
			if s.rng.Float64() < s.params.Gamma {
				recoveries++
			}
		}

		infections = min(infections, s.S)
		recoveries = min(recoveries, s.I)

		s.S -= infections
		s.I += infections - recoveries
		s.R += recoveries

		s.Peak = max(s.Peak, s.I)
		s.Days++
	}
}

// RunBatch runs n fresh outbreaks and returns their aggregate.
func (s *SIR) RunBatch(n int) Stats {
	var st Stats
	for i := 0; i < n; i++ {
		s.Reset()
		s.Run()
		st.Runs++
		st.TotalDuration += int64(s.Days)
		st.TotalPeak += int64(s.Peak)
	}
	return st
}
