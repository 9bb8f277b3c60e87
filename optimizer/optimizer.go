// Package optimizer selects the counter with the best expected outcome for
// a new service request. Scoring penalizes congestion, slow service and
// inactivity; ties resolve to the first-listed counter so the selection is
// reproducible.
package optimizer

import (
	"fmt"
	"sort"
	"strings"

	"queue-analytics/models"
)

// ModelVersion tags every assignment for traceability.
const ModelVersion = "counter-select-v1"

// Assign picks the best counter for a service type. The priority class is
// accepted for API parity with the admission flow and echoed in the result;
// the selection policy itself is priority-agnostic.
//
// When no counter serves the type, counters of the general type are tried;
// when none remain, the result carries an empty CounterID and a reason.
func Assign(counters []models.Counter, serviceType models.ServiceType, class models.PriorityClass) models.Assignment {
	eligible := filterEligible(counters, serviceType)
	if len(eligible) == 0 {
		eligible = filterEligible(counters, models.ServiceGeneral)
	}
	if len(eligible) == 0 {
		return models.Assignment{
			Reason:        fmt.Sprintf("no counter serves %s and no general counter is available", serviceType),
			ServiceType:   serviceType,
			PriorityClass: class,
			ModelVersion:  ModelVersion,
		}
	}

	type scored struct {
		counter models.Counter
		score   float64
	}
	ranked := make([]scored, 0, len(eligible))
	for _, c := range eligible {
		ranked = append(ranked, scored{counter: c, score: scoreCounter(c)})
	}

	// Stable sort keeps input order for equal scores: the first-listed
	// counter wins ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	winner := ranked[0]
	ranking := make([]models.CounterScore, len(ranked))
	for i, r := range ranked {
		ranking[i] = models.CounterScore{CounterID: r.counter.ID, Score: r.score}
	}

	return models.Assignment{
		CounterID:     winner.counter.ID,
		Score:         winner.score,
		Reason:        reasonFor(winner.counter),
		ServiceType:   serviceType,
		PriorityClass: class,
		Ranking:       ranking,
		ModelVersion:  ModelVersion,
	}
}

// filterEligible keeps counters whose type matches the service type
// case-insensitively or that list it among their offered services.
func filterEligible(counters []models.Counter, serviceType models.ServiceType) []models.Counter {
	var eligible []models.Counter
	for _, c := range counters {
		if strings.EqualFold(string(c.Type), string(serviceType)) {
			eligible = append(eligible, c)
			continue
		}
		for _, offered := range c.ServicesOffered {
			if strings.EqualFold(string(offered), string(serviceType)) {
				eligible = append(eligible, c)
				break
			}
		}
	}
	return eligible
}

// scoreCounter starts every counter at 100 and applies the congestion,
// efficiency, busy and inactivity adjustments. Inactive counters lose 50
// points rather than being excluded, preserving a total ordering even when
// every counter is closed. Scores never go below 0.
func scoreCounter(c models.Counter) float64 {
	score := 100.0
	score -= 10 * float64(len(c.TicketQueue))
	if c.AvgServiceTime > 0 && c.AvgServiceTime < 8 {
		score += 10
	} else if c.AvgServiceTime > 15 {
		score -= 10
	}
	if c.Busy() {
		score -= 5
	}
	if !c.IsActive {
		score -= 50
	}
	if score < 0 {
		score = 0
	}
	return score
}

func reasonFor(c models.Counter) string {
	switch len(c.TicketQueue) {
	case 0:
		return "no queue, immediate service"
	case 1:
		return "shortest queue (1 waiting)"
	default:
		return fmt.Sprintf("%d waiting, about %.0f min average service time",
			len(c.TicketQueue), c.AvgServiceTime)
	}
}
