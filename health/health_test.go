package health_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"queue-analytics/health"
	"queue-analytics/models"
)

func TestAnalyzeWaitTimeBoundaries(t *testing.T) {
	tests := map[string]struct {
		avgWait   float64
		wantScore int
	}{
		"Short":           {avgWait: 10, wantScore: 80},
		"ExactlyTwenty":   {avgWait: 20, wantScore: 80},
		"TwentyOne":       {avgWait: 21, wantScore: 60},
		"ExactlyThirty":   {avgWait: 30, wantScore: 60},
		"ThirtyOne":       {avgWait: 31, wantScore: 40},
		"VeryLong":        {avgWait: 55, wantScore: 40},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := health.Analyze(models.QueueMetrics{
				Waiting:        5,
				ActiveCounters: 2,
				CompletedToday: 50,
				AvgWaitTime:    tt.avgWait,
			})
			assert.Equal(t, tt.wantScore, res.HealthScore)
		})
	}
}

func TestAnalyzeNoShowDeduction(t *testing.T) {
	res := health.Analyze(models.QueueMetrics{
		Waiting:        5,
		ActiveCounters: 2,
		CompletedToday: 80,
		NoShowsToday:   20, // 20% no-show rate
		AvgWaitTime:    10,
	})

	assert.Equal(t, 70, res.HealthScore)
	assert.Equal(t, health.StatusHealthy, res.Status)
	assert.InDelta(t, 0.2, res.Metrics.NoShowRate, 1e-9)
	assert.Contains(t, res.Issues[0], "no-show")
	assert.NotEmpty(t, res.Recommendations)
}

func TestAnalyzeNoShowBoundary(t *testing.T) {
	// Exactly 15% does not trigger the deduction.
	res := health.Analyze(models.QueueMetrics{
		ActiveCounters: 1,
		CompletedToday: 85,
		NoShowsToday:   15,
		AvgWaitTime:    10,
	})
	assert.Equal(t, 80, res.HealthScore)
}

func TestAnalyzeQueueLoadDeduction(t *testing.T) {
	res := health.Analyze(models.QueueMetrics{
		Waiting:        25,
		ActiveCounters: 2, // 12.5 waiting per counter
		CompletedToday: 40,
		AvgWaitTime:    10,
	})

	assert.Equal(t, 65, res.HealthScore)
	assert.Equal(t, health.StatusWarning, res.Status)
	assert.InDelta(t, 12.5, res.Metrics.QueuePerCounter, 1e-9)
	assert.Contains(t, res.Issues[0], "per counter")
}

func TestAnalyzeZeroCountersClamped(t *testing.T) {
	res := health.Analyze(models.QueueMetrics{
		Waiting:        15,
		ActiveCounters: 0,
		AvgWaitTime:    10,
	})
	assert.InDelta(t, 15.0, res.Metrics.QueuePerCounter, 1e-9)
	assert.Equal(t, 65, res.HealthScore)
}

func TestAnalyzeAllIssues(t *testing.T) {
	res := health.Analyze(models.QueueMetrics{
		Waiting:        30,
		ActiveCounters: 2,
		CompletedToday: 60,
		NoShowsToday:   40,
		AvgWaitTime:    45,
	})

	// 40 base -10 no-shows -15 queue load.
	assert.Equal(t, 15, res.HealthScore)
	assert.Equal(t, health.StatusCritical, res.Status)
	assert.Len(t, res.Issues, 3)
}

func TestAnalyzeHealthyQueueReportsNormalRange(t *testing.T) {
	res := health.Analyze(models.QueueMetrics{
		Waiting:        3,
		Serving:        2,
		ActiveCounters: 2,
		CompletedToday: 40,
		NoShowsToday:   2,
		AvgWaitTime:    12,
	})

	assert.Equal(t, 80, res.HealthScore)
	assert.Equal(t, health.StatusHealthy, res.Status)
	assert.Equal(t, []string{"queue is operating within normal range"}, res.Issues)
	assert.Empty(t, res.Recommendations)
	assert.Equal(t, health.ModelVersion, res.ModelVersion)
}

func TestAnalyzeScoreNeverNegative(t *testing.T) {
	res := health.Analyze(models.QueueMetrics{
		Waiting:        200,
		ActiveCounters: 1,
		CompletedToday: 1,
		NoShowsToday:   99,
		AvgWaitTime:    120,
	})
	assert.GreaterOrEqual(t, res.HealthScore, 0)
	assert.Equal(t, health.StatusCritical, res.Status)
}

func TestAnalyzeStatusThresholds(t *testing.T) {
	tests := map[string]struct {
		metrics models.QueueMetrics
		want    string
	}{
		"Healthy":  {metrics: models.QueueMetrics{ActiveCounters: 1, AvgWaitTime: 5, CompletedToday: 30}, want: health.StatusHealthy},
		"Warning":  {metrics: models.QueueMetrics{ActiveCounters: 1, AvgWaitTime: 25, CompletedToday: 30}, want: health.StatusWarning},
		"Critical": {metrics: models.QueueMetrics{ActiveCounters: 1, AvgWaitTime: 40, CompletedToday: 30}, want: health.StatusCritical},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, health.Analyze(tt.metrics).Status)
		})
	}
}
