// Package features turns a raw queue snapshot into the normalized feature
// set shared by every predictor. Extraction is a pure function of the
// snapshot and the clock instant the caller passes in; there are no
// failure modes.
package features

import (
	"time"

	"queue-analytics/config"
	"queue-analytics/models"
)

// defaultNoShowRate is assumed until a service has completions to measure.
const defaultNoShowRate = 0.1

// Extractor derives feature vectors against one set of tuning tables.
type Extractor struct {
	tuning *config.Tuning
}

// New returns an extractor over the given tuning tables. A nil tuning
// falls back to the built-in defaults.
func New(t *config.Tuning) *Extractor {
	if t == nil {
		t = config.Default()
	}
	return &Extractor{tuning: t}
}

// Extract builds the feature vector for a snapshot at the given instant.
// Missing historical fields default to the static baseline for the
// snapshot's service type.
func (e *Extractor) Extract(snap models.QueueSnapshot, at time.Time) models.FeatureVector {
	baseline := e.tuning.Baseline(snap.ServiceType)

	fv := models.FeatureVector{
		QueueLength:     float64(snap.CurrentQueueLength),
		WaitingPatients: float64(snap.WaitingPatients),
		ActiveCounters:  float64(snap.ActiveCounters),
		HourOfDay:       float64(at.Hour()),
		MinuteOfHour:    float64(at.Minute()),
		DayOfWeek:       float64(at.Weekday()),
		IsWeekend:       at.Weekday() == time.Saturday || at.Weekday() == time.Sunday,
		BaseServiceTime: baseline.MeanMinutes,
		ServiceTimeStd:  baseline.StdMinutes,
		NoShowRate:      defaultNoShowRate,
	}

	hour := at.Hour()
	if w := e.tuning.PeakWindowAt(hour); w != nil {
		switch w.Name {
		case "morning":
			fv.MorningPeak = true
		case "afternoon":
			fv.AfternoonPeak = true
		case "evening":
			fv.EveningPeak = true
		}
	}

	if h := snap.Historical; h != nil {
		fv.AvgWaitToday = h.AvgWaitTimeToday
		fv.TicketsToday = float64(h.TicketsToday)
		fv.CompletedToday = float64(h.CompletedToday)
		fv.NoShowsToday = float64(h.NoShowsToday)
		if h.AvgServiceTimeToday > 0 {
			fv.BaseServiceTime = h.AvgServiceTimeToday
		}
		if denom := h.CompletedToday + h.NoShowsToday; denom > 0 {
			fv.NoShowRate = float64(h.NoShowsToday) / float64(denom)
		}
	}

	return fv
}
