// Package metrics provides Prometheus observability metrics for the queue
// analytics engine. The pure analytics packages never touch these; the CLI
// driver records them after each operation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// OperationsTotal counts analytics operations by operation name.
var OperationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "queue",
	Name:      "operations_total",
	Help:      "Total analytics operations executed, by operation",
}, []string{"operation"})

// PredictedWaitMinutes tracks the distribution of predicted waits.
var PredictedWaitMinutes = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "queue",
	Name:      "predicted_wait_minutes",
	Help:      "Distribution of estimated wait times in minutes",
	Buckets:   []float64{5, 10, 15, 20, 30, 45, 60, 90, 120},
})

// PredictionConfidence records the confidence of the last prediction.
var PredictionConfidence = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "queue",
	Name:      "prediction_confidence",
	Help:      "Confidence of the most recent wait-time prediction",
})

// PredictionFallbacksTotal counts degraded conservative-default predictions.
// A rising value means malformed upstream requests.
var PredictionFallbacksTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "queue",
	Name:      "prediction_fallbacks_total",
	Help:      "Count of predictions degraded to the conservative default",
})

// AssignmentsNoCounterTotal counts requests with no eligible counter.
// High values indicate staffing/coverage gaps.
var AssignmentsNoCounterTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "queue",
	Name:      "assignments_no_counter_total",
	Help:      "Count of assignment requests that found no eligible counter",
})

// AssignmentWinnerScore records the score of the last selected counter.
var AssignmentWinnerScore = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "queue",
	Name:      "assignment_winner_score",
	Help:      "Score of the most recently selected counter",
})

// ForecastExpectedTickets records the last forecast's total expected demand.
var ForecastExpectedTickets = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "queue",
	Name:      "forecast_expected_tickets",
	Help:      "Total expected tickets in the most recent demand forecast",
})

// HealthScore records the last computed queue health score.
var HealthScore = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "queue",
	Name:      "health_score",
	Help:      "Most recent queue health score (0-100)",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserErrorsTotal tracks request parse errors by section.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total request parse errors by request section",
}, []string{"section"})

// OperationDurationSeconds tracks per-operation compute time.
var OperationDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "queue",
	Name:      "operation_duration_seconds",
	Help:      "Time taken to execute one analytics operation",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
}, []string{"operation"})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetGauges resets the last-value gauges before a new run.
func ResetGauges() {
	PredictionConfidence.Set(0)
	AssignmentWinnerScore.Set(0)
	ForecastExpectedTickets.Set(0)
	HealthScore.Set(0)
}
