// Package forecaster produces an hourly demand and staffing forecast for a
// target date from historical day records. Forecasts prefer same-weekday
// history, fall back to the full record set, and degrade to a static
// day-of-week model when no history exists at all.
package forecaster

import (
	"math"
	"sort"
	"time"

	"queue-analytics/config"
	"queue-analytics/models"
)

// ModelVersion tags every forecast for traceability.
const ModelVersion = "demand-v1"

// Forecast hours span the service day, 07:00 through 20:00 inclusive.
const (
	firstHour = 7
	lastHour  = 20
)

// Forecaster computes demand forecasts against one set of tuning tables.
type Forecaster struct {
	tuning *config.Tuning
}

// New returns a forecaster over the given tuning tables. A nil tuning
// falls back to the built-in defaults.
func New(t *config.Tuning) *Forecaster {
	if t == nil {
		t = config.Default()
	}
	return &Forecaster{tuning: t}
}

// Forecast builds the hourly demand forecast for the target date. Records
// are assumed to belong to the given service type; the type is echoed in
// the result. Both the has-data and no-data paths cover every hour from
// 7 to 20 inclusive.
func (f *Forecaster) Forecast(records []models.DayRecord, targetDate time.Time, serviceType models.ServiceType) models.Forecast {
	matching := sameWeekday(records, targetDate.Weekday())
	source := matching
	if len(source) == 0 {
		source = records
	}

	var notes []string
	hourly := make([]models.HourForecast, 0, lastHour-firstHour+1)
	total := 0.0

	for h := firstHour; h <= lastHour; h++ {
		var tickets, waitSum float64
		var samples, waitSamples int
		for _, rec := range source {
			stats, ok := rec.Hours[h]
			if !ok {
				continue
			}
			tickets += float64(stats.TicketsObserved)
			samples++
			if stats.AvgWaitObserved > 0 {
				waitSum += stats.AvgWaitObserved
				waitSamples++
			}
		}

		var expected float64
		if samples > 0 {
			expected = tickets / float64(samples)
		} else {
			expected = f.tuning.ForecastBaseRate *
				f.tuning.DayMultiplier(targetDate.Weekday()) *
				f.tuning.TimeMultiplier(h)
		}
		expected = math.Round(expected*100) / 100

		hf := models.HourForecast{
			Hour:             h,
			ExpectedTickets:  expected,
			RecommendedStaff: staffForHour(expected),
		}
		if waitSamples > 0 {
			hf.ExpectedWaitMinutes = math.Round(waitSum/float64(waitSamples)*100) / 100
		}
		hourly = append(hourly, hf)
		total += expected
	}

	confidence := 0.6
	switch {
	case len(records) == 0:
		confidence = 0.5
		notes = append(notes, "no historical data; forecast uses the static day-of-week model")
	case len(matching) >= 4:
		confidence = 0.75
	}

	return models.Forecast{
		TargetDate:           targetDate,
		ServiceType:          serviceType,
		TotalExpectedTickets: math.Round(total*100) / 100,
		Hourly:               hourly,
		PeakHours:            peakHours(hourly, 3),
		Staffing:             staffingFor(total),
		Confidence:           confidence,
		Notes:                notes,
		ModelVersion:         ModelVersion,
	}
}

func sameWeekday(records []models.DayRecord, day time.Weekday) []models.DayRecord {
	var out []models.DayRecord
	for _, rec := range records {
		if rec.Date.Weekday() == day {
			out = append(out, rec)
		}
	}
	return out
}

// staffForHour is a step function of expected tickets in the hour.
func staffForHour(expected float64) int {
	switch {
	case expected <= 5:
		return 1
	case expected <= 15:
		return 2
	case expected <= 30:
		return 3
	default:
		return max(4, int(expected/10))
	}
}

// peakHours returns the n hours with the highest expected tickets, ties
// broken by the earlier hour, in descending demand order.
func peakHours(hourly []models.HourForecast, n int) []int {
	ranked := make([]models.HourForecast, len(hourly))
	copy(ranked, hourly)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ExpectedTickets != ranked[j].ExpectedTickets {
			return ranked[i].ExpectedTickets > ranked[j].ExpectedTickets
		}
		return ranked[i].Hour < ranked[j].Hour
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	peaks := make([]int, n)
	for i := 0; i < n; i++ {
		peaks[i] = ranked[i].Hour
	}
	return peaks
}

// staffingFor derives the day-level staffing recommendation from the total
// expected ticket volume.
func staffingFor(total float64) models.StaffingRecommendation {
	t := int(total)
	return models.StaffingRecommendation{
		Minimum: max(2, t/100),
		Optimal: max(3, t/60),
		Peak:    max(4, t/40),
	}
}
