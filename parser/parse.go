// Package parser decodes the JSON request document consumed by the CLI.
// One document can carry a section per operation; each Parse* helper
// validates only the section its operation needs. Enum tokens never fail:
// unknown service types map to general and unknown priority classes to
// NORMAL. Structural problems (negative counts, bad dates, missing
// sections) are reported as typed parse errors.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"queue-analytics/errors"
	"queue-analytics/models"
)

// Request is the decoded request document.
type Request struct {
	Predict  *PredictSection  `json:"predict,omitempty"`
	Assign   *AssignSection   `json:"assign,omitempty"`
	Forecast *ForecastSection `json:"forecast,omitempty"`
	Score    *ScoreSection    `json:"score,omitempty"`
	Health   *HealthSection   `json:"health,omitempty"`
}

// PredictSection is the wait-time prediction input.
type PredictSection struct {
	ServiceType        string                       `json:"serviceType"`
	CurrentQueueLength int                          `json:"currentQueueLength"`
	WaitingPatients    int                          `json:"waitingPatients"`
	ActiveCounters     int                          `json:"activeCounters"`
	Historical         *models.HistoricalAggregates `json:"historicalAggregates,omitempty"`
	Priority           string                       `json:"priority,omitempty"`
}

// AssignSection is the counter-assignment input.
type AssignSection struct {
	ServiceType string       `json:"serviceType"`
	Priority    string       `json:"priority,omitempty"`
	Counters    []rawCounter `json:"counters"`
}

type rawCounter struct {
	ID              string   `json:"id"`
	Type            string   `json:"counterType"`
	ServicesOffered []string `json:"servicesOffered,omitempty"`
	TicketQueue     []string `json:"ticketQueue,omitempty"`
	AvgServiceTime  float64  `json:"avgServiceTime"`
	CurrentTicketID string   `json:"currentTicketId,omitempty"`
	IsActive        bool     `json:"isActive"`
}

// ForecastSection is the demand-forecast input. Dates accept "2006-01-02"
// or RFC 3339.
type ForecastSection struct {
	ServiceType string      `json:"serviceType"`
	TargetDate  string      `json:"targetDate"`
	History     []rawRecord `json:"history,omitempty"`
}

type rawRecord struct {
	Date  string                   `json:"date"`
	Hours map[int]models.HourStats `json:"hours"`
}

// ScoreSection is the admission-priority input.
type ScoreSection struct {
	Priority       string `json:"priority"`
	Age            int    `json:"age"`
	HasAppointment bool   `json:"hasAppointment"`
	UrgencyLevel   string `json:"urgencyLevel,omitempty"`
}

// HealthSection is the queue-health input.
type HealthSection struct {
	models.QueueMetrics
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Parse decodes a request document from the reader.
func Parse(r io.Reader) (*Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			return nil, errors.ErrEmptyRequest
		}
		return nil, fmt.Errorf("decoding request: %w", err)
	}
	return &req, nil
}

// PredictInput validates the predict section and returns the snapshot and
// priority class for the predictor.
func (r *Request) PredictInput() (models.QueueSnapshot, models.PriorityClass, error) {
	s := r.Predict
	if s == nil {
		return models.QueueSnapshot{}, "", &errors.ParseError{Section: "predict", Err: errors.ErrMissingSection}
	}
	if s.CurrentQueueLength < 0 || s.WaitingPatients < 0 || s.ActiveCounters < 0 {
		return models.QueueSnapshot{}, "", &errors.ParseError{Section: "predict", Err: errors.ErrNegativeCount}
	}
	if h := s.Historical; h != nil {
		if h.TicketsToday < 0 || h.CompletedToday < 0 || h.NoShowsToday < 0 {
			return models.QueueSnapshot{}, "", &errors.ParseError{Section: "predict", Err: errors.ErrNegativeCount}
		}
	}
	snap := models.QueueSnapshot{
		ServiceType:        models.ParseServiceType(s.ServiceType),
		CurrentQueueLength: s.CurrentQueueLength,
		WaitingPatients:    s.WaitingPatients,
		ActiveCounters:     s.ActiveCounters,
		Historical:         s.Historical,
	}
	return snap, models.ParsePriorityClass(s.Priority), nil
}

// AssignInput validates the assign section and returns the counters,
// service type and priority class for the optimizer.
func (r *Request) AssignInput() ([]models.Counter, models.ServiceType, models.PriorityClass, error) {
	s := r.Assign
	if s == nil {
		return nil, "", "", &errors.ParseError{Section: "assign", Err: errors.ErrMissingSection}
	}
	counters := make([]models.Counter, 0, len(s.Counters))
	for i, rc := range s.Counters {
		if rc.ID == "" {
			return nil, "", "", &errors.ParseError{
				Section: "assign",
				Err:     fmt.Errorf("%w (index %d)", errors.ErrMissingCounter, i),
			}
		}
		offered := make([]models.ServiceType, 0, len(rc.ServicesOffered))
		for _, svc := range rc.ServicesOffered {
			offered = append(offered, models.ParseServiceType(svc))
		}
		counters = append(counters, models.Counter{
			ID:              rc.ID,
			Type:            models.ParseServiceType(rc.Type),
			ServicesOffered: offered,
			TicketQueue:     rc.TicketQueue,
			AvgServiceTime:  rc.AvgServiceTime,
			CurrentTicketID: rc.CurrentTicketID,
			IsActive:        rc.IsActive,
		})
	}
	return counters, models.ParseServiceType(s.ServiceType), models.ParsePriorityClass(s.Priority), nil
}

// ForecastInput validates the forecast section and returns the history,
// target date and service type for the forecaster.
func (r *Request) ForecastInput() ([]models.DayRecord, time.Time, models.ServiceType, error) {
	s := r.Forecast
	if s == nil {
		return nil, time.Time{}, "", &errors.ParseError{Section: "forecast", Err: errors.ErrMissingSection}
	}
	target, err := parseDate(s.TargetDate)
	if err != nil {
		return nil, time.Time{}, "", &errors.ParseError{
			Section: "forecast",
			Err:     fmt.Errorf("%w: target date %q", errors.ErrInvalidDate, s.TargetDate),
		}
	}
	records := make([]models.DayRecord, 0, len(s.History))
	for _, raw := range s.History {
		date, err := parseDate(raw.Date)
		if err != nil {
			return nil, time.Time{}, "", &errors.ParseError{
				Section: "forecast",
				Err:     fmt.Errorf("%w: history date %q", errors.ErrInvalidDate, raw.Date),
			}
		}
		for hour, stats := range raw.Hours {
			if hour < 0 || hour > 23 {
				return nil, time.Time{}, "", &errors.ParseError{
					Section: "forecast",
					Err:     fmt.Errorf("%w: got %d", errors.ErrInvalidHour, hour),
				}
			}
			if stats.TicketsObserved < 0 {
				return nil, time.Time{}, "", &errors.ParseError{Section: "forecast", Err: errors.ErrNegativeCount}
			}
		}
		records = append(records, models.DayRecord{Date: date, Hours: raw.Hours})
	}
	return records, target, models.ParseServiceType(s.ServiceType), nil
}

// ScoreInput validates the score section and returns the scorer inputs.
func (r *Request) ScoreInput() (models.PriorityClass, int, bool, string, error) {
	s := r.Score
	if s == nil {
		return "", 0, false, "", &errors.ParseError{Section: "score", Err: errors.ErrMissingSection}
	}
	if s.Age < 0 {
		return "", 0, false, "", &errors.ParseError{Section: "score", Err: errors.ErrNegativeCount}
	}
	return models.ParsePriorityClass(s.Priority), s.Age, s.HasAppointment, s.UrgencyLevel, nil
}

// HealthInput validates the health section and returns the aggregate
// metrics for the analyzer.
func (r *Request) HealthInput() (models.QueueMetrics, error) {
	s := r.Health
	if s == nil {
		return models.QueueMetrics{}, &errors.ParseError{Section: "health", Err: errors.ErrMissingSection}
	}
	m := s.QueueMetrics
	if m.Waiting < 0 || m.Serving < 0 || m.CompletedToday < 0 || m.NoShowsToday < 0 || m.ActiveCounters < 0 {
		return models.QueueMetrics{}, &errors.ParseError{Section: "health", Err: errors.ErrNegativeCount}
	}
	return m, nil
}

func parseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
