package parser_test

import (
	goerrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	customerrors "queue-analytics/errors"
	"queue-analytics/models"
	"queue-analytics/parser"
)

func parse(t *testing.T, doc string) *parser.Request {
	t.Helper()
	req, err := parser.Parse(strings.NewReader(doc))
	assert.NoError(t, err)
	return req
}

func TestParsePredictSection(t *testing.T) {
	req := parse(t, `{
		"predict": {
			"serviceType": "consultation",
			"currentQueueLength": 6,
			"waitingPatients": 4,
			"activeCounters": 2,
			"historicalAggregates": {"avgServiceTimeToday": 15, "completedToday": 60},
			"priority": "vip"
		}
	}`)

	snap, class, err := req.PredictInput()
	assert.NoError(t, err)
	assert.Equal(t, models.ServiceConsultation, snap.ServiceType)
	assert.Equal(t, 4, snap.WaitingPatients)
	assert.Equal(t, 2, snap.ActiveCounters)
	assert.Equal(t, 60, snap.Historical.CompletedToday)
	assert.Equal(t, models.PriorityVIP, class)
}

func TestParsePredictUnknownTokensSoftDefault(t *testing.T) {
	req := parse(t, `{
		"predict": {"serviceType": "xray", "waitingPatients": 1, "activeCounters": 1, "priority": "PLATINUM"}
	}`)

	snap, class, err := req.PredictInput()
	assert.NoError(t, err)
	assert.Equal(t, models.ServiceGeneral, snap.ServiceType)
	assert.Equal(t, models.PriorityNormal, class)
}

func TestParseMissingSections(t *testing.T) {
	req := parse(t, `{}`)

	_, _, err := req.PredictInput()
	assert.ErrorIs(t, err, customerrors.ErrMissingSection)

	var pe *customerrors.ParseError
	assert.True(t, goerrors.As(err, &pe))
	assert.Equal(t, "predict", pe.Section)

	_, _, _, err = req.AssignInput()
	assert.ErrorIs(t, err, customerrors.ErrMissingSection)
	_, _, _, err = req.ForecastInput()
	assert.ErrorIs(t, err, customerrors.ErrMissingSection)
	_, _, _, _, err = req.ScoreInput()
	assert.ErrorIs(t, err, customerrors.ErrMissingSection)
	_, err = req.HealthInput()
	assert.ErrorIs(t, err, customerrors.ErrMissingSection)
}

func TestParsePredictNegativeCounts(t *testing.T) {
	req := parse(t, `{"predict": {"serviceType": "general", "waitingPatients": -1, "activeCounters": 1}}`)
	_, _, err := req.PredictInput()
	assert.ErrorIs(t, err, customerrors.ErrNegativeCount)
}

func TestParseAssignSection(t *testing.T) {
	req := parse(t, `{
		"assign": {
			"serviceType": "Laboratory",
			"priority": "high",
			"counters": [
				{"id": "A", "counterType": "laboratory", "ticketQueue": ["t1", "t2"], "avgServiceTime": 10, "isActive": true},
				{"id": "B", "counterType": "general", "servicesOffered": ["laboratory"], "avgServiceTime": 6, "currentTicketId": "t9", "isActive": true}
			]
		}
	}`)

	counters, serviceType, class, err := req.AssignInput()
	assert.NoError(t, err)
	assert.Equal(t, models.ServiceLaboratory, serviceType)
	assert.Equal(t, models.PriorityHigh, class)
	assert.Len(t, counters, 2)
	assert.Equal(t, "A", counters[0].ID)
	assert.Len(t, counters[0].TicketQueue, 2)
	assert.Equal(t, []models.ServiceType{models.ServiceLaboratory}, counters[1].ServicesOffered)
	assert.True(t, counters[1].Busy())
}

func TestParseAssignMissingCounterID(t *testing.T) {
	req := parse(t, `{"assign": {"serviceType": "general", "counters": [{"counterType": "general", "isActive": true}]}}`)
	_, _, _, err := req.AssignInput()
	assert.ErrorIs(t, err, customerrors.ErrMissingCounter)
}

func TestParseForecastSection(t *testing.T) {
	req := parse(t, `{
		"forecast": {
			"serviceType": "pharmacy",
			"targetDate": "2026-09-07",
			"history": [
				{"date": "2026-08-31", "hours": {"9": {"ticketsObserved": 12, "avgWaitObserved": 8.5}}},
				{"date": "2026-08-24T00:00:00Z", "hours": {"10": {"ticketsObserved": 7}}}
			]
		}
	}`)

	records, target, serviceType, err := req.ForecastInput()
	assert.NoError(t, err)
	assert.Equal(t, models.ServicePharmacy, serviceType)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), target)
	assert.Len(t, records, 2)
	assert.Equal(t, 12, records[0].Hours[9].TicketsObserved)
	assert.InDelta(t, 8.5, records[0].Hours[9].AvgWaitObserved, 1e-9)
}

func TestParseForecastBadInputs(t *testing.T) {
	tests := map[string]struct {
		doc     string
		wantErr error
	}{
		"BadTargetDate": {
			doc:     `{"forecast": {"serviceType": "general", "targetDate": "next monday"}}`,
			wantErr: customerrors.ErrInvalidDate,
		},
		"BadHistoryDate": {
			doc:     `{"forecast": {"serviceType": "general", "targetDate": "2026-09-07", "history": [{"date": "soon", "hours": {}}]}}`,
			wantErr: customerrors.ErrInvalidDate,
		},
		"HourOutOfRange": {
			doc:     `{"forecast": {"serviceType": "general", "targetDate": "2026-09-07", "history": [{"date": "2026-08-31", "hours": {"24": {"ticketsObserved": 1}}}]}}`,
			wantErr: customerrors.ErrInvalidHour,
		},
		"NegativeTickets": {
			doc:     `{"forecast": {"serviceType": "general", "targetDate": "2026-09-07", "history": [{"date": "2026-08-31", "hours": {"9": {"ticketsObserved": -2}}}]}}`,
			wantErr: customerrors.ErrNegativeCount,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := parse(t, tt.doc)
			_, _, _, err := req.ForecastInput()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseScoreSection(t *testing.T) {
	req := parse(t, `{"score": {"priority": "senior_citizen", "age": 80, "hasAppointment": true, "urgencyLevel": "Medium"}}`)

	class, age, hasAppointment, urgency, err := req.ScoreInput()
	assert.NoError(t, err)
	assert.Equal(t, models.PrioritySeniorCitizen, class)
	assert.Equal(t, 80, age)
	assert.True(t, hasAppointment)
	assert.Equal(t, "Medium", urgency)
}

func TestParseHealthSection(t *testing.T) {
	req := parse(t, `{"health": {"waiting": 12, "serving": 3, "completedToday": 80, "noShowsToday": 5, "avgWaitTime": 18.5, "activeCounters": 3}}`)

	m, err := req.HealthInput()
	assert.NoError(t, err)
	assert.Equal(t, 12, m.Waiting)
	assert.InDelta(t, 18.5, m.AvgWaitTime, 1e-9)
	assert.Equal(t, 3, m.ActiveCounters)
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := parser.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, customerrors.ErrEmptyRequest)
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := parser.Parse(strings.NewReader(`{"predict": `))
	assert.Error(t, err)
}
