package models

import "time"

// ServiceType identifies a category of hospital service station. Each type
// carries its own baseline service-time statistics (see the config package).
type ServiceType string

const (
	ServiceConsultation ServiceType = "consultation"
	ServiceLaboratory   ServiceType = "laboratory"
	ServicePharmacy     ServiceType = "pharmacy"
	ServiceRadiology    ServiceType = "radiology"
	ServiceBilling      ServiceType = "billing"
	ServiceGeneral      ServiceType = "general"
)

// PriorityClass is the closed set of admission priority levels. Every class
// must appear in both the base-score and wait-multiplier tables.
type PriorityClass string

const (
	PriorityEmergency     PriorityClass = "EMERGENCY"
	PriorityHigh          PriorityClass = "HIGH"
	PriorityVIP           PriorityClass = "VIP"
	PriorityPregnant      PriorityClass = "PREGNANT"
	PriorityDisabled      PriorityClass = "DISABLED"
	PrioritySeniorCitizen PriorityClass = "SENIOR_CITIZEN"
	PriorityChild         PriorityClass = "CHILD"
	PriorityNormal        PriorityClass = "NORMAL"
	PriorityLow           PriorityClass = "LOW"
)

// AllPriorityClasses lists every class, highest urgency first. Used by
// config validation to enforce table completeness.
var AllPriorityClasses = []PriorityClass{
	PriorityEmergency, PriorityHigh, PriorityVIP, PriorityPregnant,
	PriorityDisabled, PrioritySeniorCitizen, PriorityChild,
	PriorityNormal, PriorityLow,
}

// AllServiceTypes lists every known service type.
var AllServiceTypes = []ServiceType{
	ServiceConsultation, ServiceLaboratory, ServicePharmacy,
	ServiceRadiology, ServiceBilling, ServiceGeneral,
}

// HistoricalAggregates carries today's running totals for a service type.
// All fields are optional; zero values mean "no data yet".
type HistoricalAggregates struct {
	AvgWaitTimeToday    float64 `json:"avgWaitTimeToday,omitempty"`
	AvgServiceTimeToday float64 `json:"avgServiceTimeToday,omitempty"`
	TicketsToday        int     `json:"ticketsToday,omitempty"`
	CompletedToday      int     `json:"completedToday,omitempty"`
	NoShowsToday        int     `json:"noShowsToday,omitempty"`
}

// QueueSnapshot is the live state of one service queue at prediction time.
// Snapshots are constructed fresh per request and never persisted here.
type QueueSnapshot struct {
	ServiceType        ServiceType           `json:"serviceType"`
	CurrentQueueLength int                   `json:"currentQueueLength"`
	WaitingPatients    int                   `json:"waitingPatients"`
	ActiveCounters     int                   `json:"activeCounters"`
	Historical         *HistoricalAggregates `json:"historicalAggregates,omitempty"`
}

// FeatureVector is the normalized feature set derived from one snapshot and
// one clock instant. Created per request, consumed by the wait-time
// predictor, then discarded.
type FeatureVector struct {
	QueueLength     float64
	WaitingPatients float64
	ActiveCounters  float64
	HourOfDay       float64
	MinuteOfHour    float64
	DayOfWeek       float64
	IsWeekend       bool
	MorningPeak     bool
	AfternoonPeak   bool
	EveningPeak     bool
	BaseServiceTime float64
	ServiceTimeStd  float64
	AvgWaitToday    float64
	TicketsToday    float64
	CompletedToday  float64
	NoShowsToday    float64
	NoShowRate      float64
}

// Map flattens the vector into named numeric features for diagnostics.
func (fv FeatureVector) Map() map[string]float64 {
	b := func(v bool) float64 {
		if v {
			return 1
		}
		return 0
	}
	return map[string]float64{
		"queue_length":      fv.QueueLength,
		"waiting_patients":  fv.WaitingPatients,
		"active_counters":   fv.ActiveCounters,
		"hour_of_day":       fv.HourOfDay,
		"minute_of_hour":    fv.MinuteOfHour,
		"day_of_week":       fv.DayOfWeek,
		"is_weekend":        b(fv.IsWeekend),
		"morning_peak":      b(fv.MorningPeak),
		"afternoon_peak":    b(fv.AfternoonPeak),
		"evening_peak":      b(fv.EveningPeak),
		"base_service_time": fv.BaseServiceTime,
		"service_time_std":  fv.ServiceTimeStd,
		"avg_wait_today":    fv.AvgWaitToday,
		"tickets_today":     fv.TicketsToday,
		"completed_today":   fv.CompletedToday,
		"no_shows_today":    fv.NoShowsToday,
		"no_show_rate":      fv.NoShowRate,
	}
}

// Counter is a service station as seen by the optimizer. Counters are owned
// by the caller's registry; this core only reads them.
type Counter struct {
	ID              string        `json:"id"`
	Type            ServiceType   `json:"counterType"`
	ServicesOffered []ServiceType `json:"servicesOffered,omitempty"`
	TicketQueue     []string      `json:"ticketQueue"`
	AvgServiceTime  float64       `json:"avgServiceTime"`
	CurrentTicketID string        `json:"currentTicketId,omitempty"`
	IsActive        bool          `json:"isActive"`
}

// Busy reports whether the counter is serving a ticket right now.
func (c Counter) Busy() bool { return c.CurrentTicketID != "" }

// HourStats is one hour bucket of an historical day record.
type HourStats struct {
	TicketsObserved int     `json:"ticketsObserved"`
	AvgWaitObserved float64 `json:"avgWaitObserved,omitempty"`
}

// DayRecord is one day of observed demand for a single service type,
// supplied by the caller and read-only here.
type DayRecord struct {
	Date  time.Time         `json:"date"`
	Hours map[int]HourStats `json:"hours"`
}

// Prediction is the wait-time predictor output. All minute values are
// rounded to whole minutes and are never negative.
type Prediction struct {
	EstimatedMinutes float64       `json:"estimatedMinutes"`
	LowerBound       float64       `json:"lowerBound"`
	UpperBound       float64       `json:"upperBound"`
	Confidence       float64       `json:"confidence"`
	QueuePosition    int           `json:"queuePosition"`
	ActiveCounters   int           `json:"activeCounters"`
	Factors          []string      `json:"factors"`
	Recommendations  []string      `json:"recommendations"`
	PredictedCallAt  time.Time     `json:"predictedCallTimestamp"`
	ServiceType      ServiceType   `json:"serviceType"`
	PriorityClass    PriorityClass `json:"priorityClass"`
	ModelVersion     string        `json:"modelVersion"`
}

// PriorityScore is the admission-priority scorer output. Score is clamped
// to [0,100].
type PriorityScore struct {
	Score               int           `json:"score"`
	Factors             []string      `json:"factors"`
	RecommendedPosition string        `json:"recommendedPosition"`
	PriorityClass       PriorityClass `json:"priorityClass"`
	ModelVersion        string        `json:"modelVersion"`
}

// CounterScore is one entry of the optimizer's ranking, winner first.
type CounterScore struct {
	CounterID string  `json:"counterId"`
	Score     float64 `json:"score"`
}

// Assignment is the queue-optimizer output. An empty CounterID means no
// eligible counter was found; Reason explains why. That is a reported
// condition, not an error.
type Assignment struct {
	CounterID     string         `json:"counterId,omitempty"`
	Score         float64        `json:"score,omitempty"`
	Reason        string         `json:"reason"`
	ServiceType   ServiceType    `json:"serviceType"`
	PriorityClass PriorityClass  `json:"priorityClass"`
	Ranking       []CounterScore `json:"ranking,omitempty"`
	ModelVersion  string         `json:"modelVersion"`
}

// HourForecast is the expected demand for one hour of the target day.
type HourForecast struct {
	Hour                int     `json:"hour"`
	ExpectedTickets     float64 `json:"expectedTickets"`
	RecommendedStaff    int     `json:"recommendedStaff"`
	ExpectedWaitMinutes float64 `json:"expectedWaitMinutes,omitempty"`
}

// StaffingRecommendation summarizes counter staffing for the whole day.
type StaffingRecommendation struct {
	Minimum int `json:"minimum"`
	Optimal int `json:"optimal"`
	Peak    int `json:"peak"`
}

// Forecast is the demand forecaster output. Hourly always covers hours
// 7 through 20 inclusive and TotalExpectedTickets equals the sum of the
// hourly expectations.
type Forecast struct {
	TargetDate           time.Time              `json:"targetDate"`
	ServiceType          ServiceType            `json:"serviceType"`
	TotalExpectedTickets float64                `json:"totalExpectedTickets"`
	Hourly               []HourForecast         `json:"hourlyForecast"`
	PeakHours            []int                  `json:"peakHours"`
	Staffing             StaffingRecommendation `json:"staffingRecommendation"`
	Confidence           float64                `json:"confidence"`
	Notes                []string               `json:"notes,omitempty"`
	ModelVersion         string                 `json:"modelVersion"`
}

// QueueMetrics is the aggregate input to the health analyzer.
type QueueMetrics struct {
	Waiting        int     `json:"waiting"`
	Serving        int     `json:"serving"`
	CompletedToday int     `json:"completedToday"`
	NoShowsToday   int     `json:"noShowsToday"`
	AvgWaitTime    float64 `json:"avgWaitTime"`
	ActiveCounters int     `json:"activeCounters"`
}

// HealthMetrics echoes the inputs plus the derived rates the score used.
type HealthMetrics struct {
	QueueMetrics
	NoShowRate      float64 `json:"noShowRate"`
	QueuePerCounter float64 `json:"queuePerCounter"`
}

// QueueHealth is the health analyzer output. HealthScore is clamped to
// [0,100] and Issues is never empty.
type QueueHealth struct {
	HealthScore     int           `json:"healthScore"`
	Status          string        `json:"status"`
	Metrics         HealthMetrics `json:"metrics"`
	Issues          []string      `json:"issues"`
	Recommendations []string      `json:"recommendations,omitempty"`
	ModelVersion    string        `json:"modelVersion"`
}
