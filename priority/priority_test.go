package priority_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"queue-analytics/models"
	"queue-analytics/priority"
)

func TestScoreSeniorScenario(t *testing.T) {
	s := priority.New(nil)

	// SENIOR_CITIZEN base 65, +15 for age 75+, +10 for the appointment.
	res := s.Score(models.PrioritySeniorCitizen, 80, true, "")

	assert.Equal(t, 90, res.Score)
	assert.Equal(t, "front", res.RecommendedPosition)
	assert.Len(t, res.Factors, 3)
	assert.Contains(t, res.Factors[0], "base score for SENIOR_CITIZEN: 65")
	assert.Contains(t, res.Factors[1], "+15")
	assert.Contains(t, res.Factors[2], "appointment")
	assert.Equal(t, priority.ModelVersion, res.ModelVersion)
}

func TestScoreAgeAdjustments(t *testing.T) {
	s := priority.New(nil)

	tests := map[string]struct {
		age  int
		want int
	}{
		"Adult":        {age: 40, want: 50},
		"Senior65":     {age: 65, want: 60},
		"Senior74":     {age: 74, want: 60},
		"Elderly75":    {age: 75, want: 65}, // 75+ bonus only, not both
		"Toddler":      {age: 3, want: 60},
		"ChildSix":     {age: 6, want: 55},
		"ChildTwelve":  {age: 12, want: 55},
		"TeenThirteen": {age: 13, want: 50},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := s.Score(models.PriorityNormal, tt.age, false, "")
			assert.Equal(t, tt.want, res.Score)
		})
	}
}

func TestScoreUrgencyLevels(t *testing.T) {
	s := priority.New(nil)

	tests := map[string]struct {
		urgency string
		want    int
	}{
		"Critical":        {urgency: "critical", want: 80},
		"CriticalUpper":   {urgency: "CRITICAL", want: 80},
		"High":            {urgency: "high", want: 70},
		"MediumMixedCase": {urgency: "Medium", want: 60},
		"Low":             {urgency: "low", want: 50},
		"Unmatched":       {urgency: "whenever", want: 50},
		"Empty":           {urgency: "", want: 50},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := s.Score(models.PriorityNormal, 40, false, tt.urgency)
			assert.Equal(t, tt.want, res.Score)
		})
	}
}

func TestScoreClampedAt100(t *testing.T) {
	s := priority.New(nil)
	res := s.Score(models.PriorityEmergency, 80, true, "critical")
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, "front", res.RecommendedPosition)
}

func TestScoreUnknownClassDefaults(t *testing.T) {
	s := priority.New(nil)
	res := s.Score(models.PriorityClass("GOLD"), 40, false, "")
	assert.Equal(t, 50, res.Score)
}

func TestScoreRecommendedPosition(t *testing.T) {
	s := priority.New(nil)

	tests := map[string]struct {
		class       models.PriorityClass
		appointment bool
		urgency     string
		want        string
	}{
		"Front":    {class: models.PriorityPregnant, want: "front"},         // base 80
		"Priority": {class: models.PriorityNormal, appointment: true, want: "priority"}, // 60
		"Normal":   {class: models.PriorityLow, want: "normal"},             // 30
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := s.Score(tt.class, 40, tt.appointment, tt.urgency)
			assert.Equal(t, tt.want, res.RecommendedPosition)
		})
	}
}

func TestScoreBaseTableEndpoints(t *testing.T) {
	s := priority.New(nil)
	assert.Equal(t, 100, s.Score(models.PriorityEmergency, 40, false, "").Score)
	assert.Equal(t, 30, s.Score(models.PriorityLow, 40, false, "").Score)
}
