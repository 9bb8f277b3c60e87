// Package config holds the tuning tables behind every predictor. The
// multipliers are hand-tuned operational constants, so they are data, not
// code: deployments can override any table via YAML file or environment.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"queue-analytics/models"
)

// ServiceBaseline is the static service-time distribution for one service
// type, in minutes.
type ServiceBaseline struct {
	MeanMinutes float64 `yaml:"mean_minutes"`
	StdMinutes  float64 `yaml:"std_minutes"`
}

// PeakWindow is an inclusive wall-clock hour range with elevated expected
// load. Windows must not overlap; the first matching window wins.
type PeakWindow struct {
	Name       string  `yaml:"name"`
	StartHour  int     `yaml:"start_hour"`
	EndHour    int     `yaml:"end_hour"`
	Multiplier float64 `yaml:"multiplier"`
}

// Contains reports whether the hour falls inside the window.
func (w PeakWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// Tuning bundles every lookup table the analytics components use. A loaded
// Tuning is immutable by convention: components only read it, which keeps
// every operation a pure function safe for concurrent callers.
type Tuning struct {
	// ServiceBaselines maps each service type to its static mean/std
	// service time. The general baseline doubles as the unknown-type
	// fallback.
	ServiceBaselines map[models.ServiceType]ServiceBaseline `yaml:"service_baselines"`

	// PeakWindows are the fixed daily peak periods.
	PeakWindows []PeakWindow `yaml:"peak_windows"`

	// DayMultipliers is indexed by time.Weekday (Sunday = 0).
	DayMultipliers [7]float64 `yaml:"day_multipliers"`

	// PriorityBaseScores feeds the admission scorer.
	PriorityBaseScores map[models.PriorityClass]int `yaml:"priority_base_scores"`

	// PriorityWaitMultipliers scales predicted waits per class.
	PriorityWaitMultipliers map[models.PriorityClass]float64 `yaml:"priority_wait_multipliers"`

	// ForecastBaseRate is the tickets-per-hour base used when no
	// historical demand data exists at all.
	ForecastBaseRate float64 `yaml:"forecast_base_rate"`
}

// Default returns the built-in tuning tables.
func Default() *Tuning {
	return &Tuning{
		ServiceBaselines: map[models.ServiceType]ServiceBaseline{
			models.ServiceConsultation: {MeanMinutes: 15, StdMinutes: 7},
			models.ServiceLaboratory:   {MeanMinutes: 8, StdMinutes: 4},
			models.ServicePharmacy:     {MeanMinutes: 5, StdMinutes: 3},
			models.ServiceRadiology:    {MeanMinutes: 20, StdMinutes: 10},
			models.ServiceBilling:      {MeanMinutes: 7, StdMinutes: 3},
			models.ServiceGeneral:      {MeanMinutes: 10, StdMinutes: 5},
		},
		PeakWindows: []PeakWindow{
			{Name: "morning", StartHour: 9, EndHour: 12, Multiplier: 1.4},
			{Name: "afternoon", StartHour: 14, EndHour: 16, Multiplier: 1.2},
			{Name: "evening", StartHour: 17, EndHour: 19, Multiplier: 1.3},
		},
		// Sunday through Saturday. Monday is the busiest day, Sunday the
		// lightest.
		DayMultipliers: [7]float64{0.40, 1.15, 1.05, 1.00, 0.95, 1.10, 0.70},
		PriorityBaseScores: map[models.PriorityClass]int{
			models.PriorityEmergency:     100,
			models.PriorityHigh:          90,
			models.PriorityVIP:           85,
			models.PriorityPregnant:      80,
			models.PriorityDisabled:      75,
			models.PrioritySeniorCitizen: 65,
			models.PriorityChild:         60,
			models.PriorityNormal:        50,
			models.PriorityLow:           30,
		},
		PriorityWaitMultipliers: map[models.PriorityClass]float64{
			models.PriorityEmergency:     0.1,
			models.PriorityHigh:          0.3,
			models.PriorityVIP:           0.5,
			models.PriorityPregnant:      0.6,
			models.PriorityDisabled:      0.65,
			models.PrioritySeniorCitizen: 0.7,
			models.PriorityChild:         0.8,
			models.PriorityNormal:        1.0,
			models.PriorityLow:           1.2,
		},
		ForecastBaseRate: 10,
	}
}

// Load builds the tuning tables: defaults, then the YAML file at path (or
// $QUEUE_CONFIG when path is empty) if it exists, then environment
// overrides. The result is validated before being returned.
func Load(path string) (*Tuning, error) {
	t := Default()

	if path == "" {
		path = os.Getenv("QUEUE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading tuning file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, t); err != nil {
			return nil, fmt.Errorf("parsing tuning file %s: %w", path, err)
		}
	}

	if v := os.Getenv("QUEUE_FORECAST_BASE_RATE"); v != "" {
		var rate float64
		if _, err := fmt.Sscanf(v, "%f", &rate); err == nil && rate > 0 {
			t.ForecastBaseRate = rate
		}
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate enforces the closed-enum invariant: every priority class must
// appear in both priority tables, every service type needs a baseline, and
// the multipliers must stay positive.
func (t *Tuning) Validate() error {
	for _, pc := range models.AllPriorityClasses {
		if _, ok := t.PriorityBaseScores[pc]; !ok {
			return fmt.Errorf("priority base score table is missing class %s", pc)
		}
		m, ok := t.PriorityWaitMultipliers[pc]
		if !ok {
			return fmt.Errorf("priority wait multiplier table is missing class %s", pc)
		}
		if m <= 0 {
			return fmt.Errorf("priority wait multiplier for %s must be positive, got %v", pc, m)
		}
	}
	for _, st := range models.AllServiceTypes {
		b, ok := t.ServiceBaselines[st]
		if !ok {
			return fmt.Errorf("service baseline table is missing type %s", st)
		}
		if b.MeanMinutes <= 0 {
			return fmt.Errorf("service baseline mean for %s must be positive, got %v", st, b.MeanMinutes)
		}
	}
	for _, m := range t.DayMultipliers {
		if m <= 0 {
			return fmt.Errorf("day multipliers must be positive, got %v", t.DayMultipliers)
		}
	}
	if t.ForecastBaseRate <= 0 {
		return fmt.Errorf("forecast base rate must be positive, got %v", t.ForecastBaseRate)
	}
	return nil
}

// Baseline returns the service-time baseline for a type, falling back to
// the general baseline for unknown types.
func (t *Tuning) Baseline(st models.ServiceType) ServiceBaseline {
	if b, ok := t.ServiceBaselines[st]; ok {
		return b
	}
	return t.ServiceBaselines[models.ServiceGeneral]
}

// PeakWindowAt returns the first peak window containing the hour, or nil
// outside peak periods.
func (t *Tuning) PeakWindowAt(hour int) *PeakWindow {
	for i := range t.PeakWindows {
		if t.PeakWindows[i].Contains(hour) {
			return &t.PeakWindows[i]
		}
	}
	return nil
}

// TimeMultiplier returns the peak multiplier for the hour, 1.0 off-peak.
func (t *Tuning) TimeMultiplier(hour int) float64 {
	if w := t.PeakWindowAt(hour); w != nil {
		return w.Multiplier
	}
	return 1.0
}

// DayMultiplier returns the demand multiplier for a weekday.
func (t *Tuning) DayMultiplier(day time.Weekday) float64 {
	return t.DayMultipliers[int(day)%7]
}

// PriorityMultiplier returns the wait multiplier for a class, 1.0 when the
// class is not in the table.
func (t *Tuning) PriorityMultiplier(pc models.PriorityClass) float64 {
	if m, ok := t.PriorityWaitMultipliers[pc]; ok {
		return m
	}
	return 1.0
}

// BaseScore returns the admission base score for a class, 50 when the
// class is not in the table.
func (t *Tuning) BaseScore(pc models.PriorityClass) int {
	if s, ok := t.PriorityBaseScores[pc]; ok {
		return s
	}
	return 50
}
