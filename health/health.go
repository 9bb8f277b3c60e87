// Package health grades the overall condition of a service queue from its
// aggregate metrics and names the issues dragging the score down.
package health

import (
	"fmt"

	"queue-analytics/models"
)

// ModelVersion tags every health report for traceability.
const ModelVersion = "queue-health-v1"

// Status labels, from best to worst.
const (
	StatusHealthy  = "healthy"
	StatusWarning  = "warning"
	StatusCritical = "critical"
)

// Analyze computes the health score for the given aggregate metrics. The
// score starts from the average wait tier (strict thresholds: a 30-minute
// average is still the moderate tier) and loses points for excessive
// no-shows and overloaded counters. Issues is never empty: a clean queue
// gets a single within-normal-range entry.
func Analyze(m models.QueueMetrics) models.QueueHealth {
	var issues, recs []string

	score := 80
	switch {
	case m.AvgWaitTime > 30:
		score = 40
		issues = append(issues, fmt.Sprintf("average wait time is high (%.0f min)", m.AvgWaitTime))
		recs = append(recs, "open additional counters or redirect arrivals to quieter services")
	case m.AvgWaitTime > 20:
		score = 60
		issues = append(issues, fmt.Sprintf("average wait time is moderate (%.0f min)", m.AvgWaitTime))
		recs = append(recs, "monitor queue growth; prepare to open another counter")
	}

	noShowRate := 0.0
	if denom := m.CompletedToday + m.NoShowsToday; denom > 0 {
		noShowRate = float64(m.NoShowsToday) / float64(denom)
	}
	if noShowRate > 0.15 {
		score -= 10
		issues = append(issues, fmt.Sprintf("no-show rate is elevated (%.0f%%)", noShowRate*100))
		recs = append(recs, "send wait-time notifications so patients keep their tickets")
	}

	counters := max(m.ActiveCounters, 1)
	queuePerCounter := float64(m.Waiting) / float64(counters)
	if queuePerCounter > 10 {
		score -= 15
		issues = append(issues, fmt.Sprintf("queue load per counter is high (%.1f waiting per counter)", queuePerCounter))
		recs = append(recs, "activate more counters to spread the queue")
	}

	if len(issues) == 0 {
		issues = append(issues, "queue is operating within normal range")
	}
	if score < 0 {
		score = 0
	}

	return models.QueueHealth{
		HealthScore: score,
		Status:      statusFor(score),
		Metrics: models.HealthMetrics{
			QueueMetrics:    m,
			NoShowRate:      noShowRate,
			QueuePerCounter: queuePerCounter,
		},
		Issues:          issues,
		Recommendations: recs,
		ModelVersion:    ModelVersion,
	}
}

func statusFor(score int) string {
	switch {
	case score >= 70:
		return StatusHealthy
	case score >= 50:
		return StatusWarning
	default:
		return StatusCritical
	}
}
