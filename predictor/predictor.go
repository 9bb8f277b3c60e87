// Package predictor estimates per-patient wait times from a live queue
// snapshot. The model is multiplicative: a raw queue-math wait adjusted by
// time-of-day, day-of-week and priority multipliers, with uncertainty
// bounds derived from the service type's static spread.
package predictor

import (
	"fmt"
	"math"
	"time"

	"queue-analytics/config"
	"queue-analytics/features"
	"queue-analytics/models"
)

// ModelVersion tags every prediction for traceability.
const ModelVersion = "wait-time-v2"

// Predictor computes wait estimates against one set of tuning tables.
type Predictor struct {
	tuning   *config.Tuning
	features *features.Extractor
}

// New returns a predictor over the given tuning tables. A nil tuning falls
// back to the built-in defaults.
func New(t *config.Tuning) *Predictor {
	if t == nil {
		t = config.Default()
	}
	return &Predictor{tuning: t, features: features.New(t)}
}

// Predict estimates the wait for a new arrival joining the snapshot's queue
// at the given instant. It always returns a result: zero active counters
// are clamped to one before division and unknown priority classes apply a
// neutral multiplier.
func (p *Predictor) Predict(snap models.QueueSnapshot, class models.PriorityClass, at time.Time) models.Prediction {
	fv := p.features.Extract(snap, at)

	position := snap.WaitingPatients + 1
	counters := max(snap.ActiveCounters, 1)

	rawWait := float64(position) * fv.BaseServiceTime / float64(counters)

	// The three multipliers encode distinct causes and apply in a fixed
	// order: wall-clock peak, weekday load, then admission priority.
	window := p.tuning.PeakWindowAt(at.Hour())
	timeMult := 1.0
	if window != nil {
		timeMult = window.Multiplier
	}
	dayMult := p.tuning.DayMultiplier(at.Weekday())
	prioMult := p.tuning.PriorityMultiplier(class)

	adjusted := rawWait * timeMult * dayMult * prioMult

	baseline := p.tuning.Baseline(snap.ServiceType)
	stdFactor := baseline.StdMinutes / baseline.MeanMinutes

	estimated := math.Max(math.Round(adjusted), 1)
	lower := math.Max(math.Round(math.Max(adjusted*(1-stdFactor), 1)), 1)
	upper := math.Max(math.Round(adjusted*(1+stdFactor)), estimated)

	return models.Prediction{
		EstimatedMinutes: estimated,
		LowerBound:       lower,
		UpperBound:       upper,
		Confidence:       confidenceFor(snap.Historical),
		QueuePosition:    position,
		ActiveCounters:   counters,
		Factors:          explain(fv, window, dayMult, at.Weekday(), class, prioMult, counters),
		Recommendations:  recommend(estimated, at, fv.IsWeekend),
		PredictedCallAt:  at.Add(time.Duration(estimated) * time.Minute),
		ServiceType:      snap.ServiceType,
		PriorityClass:    class,
		ModelVersion:     ModelVersion,
	}
}

// confidenceFor steps down with today's completion count: a thin daily
// sample makes the historical baseline unreliable.
func confidenceFor(h *models.HistoricalAggregates) float64 {
	completed := 0
	if h != nil {
		completed = h.CompletedToday
	}
	switch {
	case completed > 50:
		return 0.9
	case completed > 20:
		return 0.8
	case completed > 10:
		return 0.7
	default:
		return 0.6
	}
}

// explain builds the human-readable factor list in a fixed order: queue
// volume, peak adjustment, day adjustment, priority adjustment, counter
// availability.
func explain(fv models.FeatureVector, window *config.PeakWindow, dayMult float64, day time.Weekday, class models.PriorityClass, prioMult float64, counters int) []string {
	factors := make([]string, 0, 5)

	waiting := int(fv.WaitingPatients)
	switch {
	case waiting >= 10:
		factors = append(factors, fmt.Sprintf("heavy queue volume (%d waiting)", waiting))
	case waiting >= 5:
		factors = append(factors, fmt.Sprintf("moderate queue volume (%d waiting)", waiting))
	default:
		factors = append(factors, fmt.Sprintf("light queue volume (%d waiting)", waiting))
	}

	if window != nil && window.Multiplier != 1.0 {
		factors = append(factors, fmt.Sprintf("%s peak period (+%d%% expected wait)",
			window.Name, int(math.Round((window.Multiplier-1)*100))))
	}

	if dayMult > 1.0 {
		factors = append(factors, fmt.Sprintf("%s is typically busy (+%d%%)",
			day, int(math.Round((dayMult-1)*100))))
	} else if dayMult < 1.0 {
		factors = append(factors, fmt.Sprintf("%s is typically light (-%d%%)",
			day, int(math.Round((1-dayMult)*100))))
	}

	if class != models.PriorityNormal && prioMult != 1.0 {
		factors = append(factors, fmt.Sprintf("%s priority (wait x%.2f)", class, prioMult))
	}

	if counters == 1 {
		factors = append(factors, "single counter active")
	} else {
		factors = append(factors, fmt.Sprintf("%d counters active", counters))
	}

	return factors
}

// recommend returns threshold-based guidance for the waiting patient.
func recommend(estimated float64, at time.Time, weekend bool) []string {
	var recs []string
	switch {
	case estimated > 30:
		recs = append(recs, "long wait expected; consider arriving during off-peak hours or checking back later")
	case estimated > 15:
		recs = append(recs, "moderate wait; the seating area is recommended")
	default:
		recs = append(recs, "short wait expected; stay near the counter")
	}
	if at.Hour() < 9 && !weekend {
		recs = append(recs, "arriving before the morning peak keeps waits shorter")
	}
	return recs
}

// Fallback is the conservative default prediction a caller-level wrapper
// degrades to when a request fails unexpectedly: an approximate estimate
// beats no estimate on a live waiting-room display.
func Fallback(at time.Time) models.Prediction {
	return models.Prediction{
		EstimatedMinutes: 15,
		LowerBound:       10,
		UpperBound:       25,
		Confidence:       0.5,
		QueuePosition:    1,
		ActiveCounters:   1,
		Factors:          []string{"conservative default estimate"},
		Recommendations:  []string{"estimate is approximate; check the counter display"},
		PredictedCallAt:  at.Add(15 * time.Minute),
		ServiceType:      models.ServiceGeneral,
		PriorityClass:    models.PriorityNormal,
		ModelVersion:     ModelVersion,
	}
}
