// Package priority maps an admission priority class plus demographic and
// urgency inputs to a 0-100 admission score.
package priority

import (
	"fmt"
	"strings"

	"queue-analytics/config"
	"queue-analytics/models"
)

// ModelVersion tags every score for traceability.
const ModelVersion = "priority-v1"

// Scorer computes admission scores against one set of tuning tables.
type Scorer struct {
	tuning *config.Tuning
}

// New returns a scorer over the given tuning tables. A nil tuning falls
// back to the built-in defaults.
func New(t *config.Tuning) *Scorer {
	if t == nil {
		t = config.Default()
	}
	return &Scorer{tuning: t}
}

// urgencyPoints maps a free-form urgency level, case-insensitive, to its
// additive score delta. Unmatched levels contribute nothing.
var urgencyPoints = map[string]int{
	"critical": 30,
	"high":     20,
	"medium":   10,
	"low":      0,
}

// Score computes the admission score. Deterministic, no failure modes:
// unknown classes take the default base of 50 and unmatched urgency levels
// add zero. Every adjustment is logged into the factor list with its delta.
func (s *Scorer) Score(class models.PriorityClass, age int, hasAppointment bool, urgencyLevel string) models.PriorityScore {
	base := s.tuning.BaseScore(class)
	score := base
	factors := []string{fmt.Sprintf("base score for %s: %d", class, base)}

	// Elderly bonuses are mutually exclusive; the 75+ check runs first.
	switch {
	case age >= 75:
		score += 15
		factors = append(factors, "elderly patient (age 75+): +15")
	case age >= 65:
		score += 10
		factors = append(factors, "senior patient (age 65+): +10")
	}
	switch {
	case age <= 5:
		score += 10
		factors = append(factors, "young child (age 5 or under): +10")
	case age <= 12:
		score += 5
		factors = append(factors, "child (age 12 or under): +5")
	}

	if hasAppointment {
		score += 10
		factors = append(factors, "scheduled appointment: +10")
	}

	if pts, ok := urgencyPoints[strings.ToLower(strings.TrimSpace(urgencyLevel))]; ok && pts > 0 {
		score += pts
		factors = append(factors, fmt.Sprintf("%s urgency: +%d", strings.ToLower(urgencyLevel), pts))
	}

	if score > 100 {
		score = 100
	}

	return models.PriorityScore{
		Score:               score,
		Factors:             factors,
		RecommendedPosition: positionFor(score),
		PriorityClass:       class,
		ModelVersion:        ModelVersion,
	}
}

func positionFor(score int) string {
	switch {
	case score >= 80:
		return "front"
	case score >= 60:
		return "priority"
	default:
		return "normal"
	}
}
