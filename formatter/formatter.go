// Package formatter renders analytics results for the CLI in text, JSON or
// CSV form. Every rendering wraps the result in a Report envelope carrying
// a report id and the model version for traceability.
package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"queue-analytics/models"
)

// Report is the output envelope for one operation.
type Report struct {
	ReportID    string `json:"reportId"`
	Operation   string `json:"operation"`
	GeneratedAt string `json:"generatedAt"`

	Prediction *models.Prediction    `json:"prediction,omitempty"`
	Assignment *models.Assignment    `json:"assignment,omitempty"`
	Forecast   *models.Forecast      `json:"forecast,omitempty"`
	Score      *models.PriorityScore `json:"score,omitempty"`
	Health     *models.QueueHealth   `json:"health,omitempty"`
}

// New creates an empty report envelope for an operation.
func New(operation string, at time.Time) *Report {
	return &Report{
		ReportID:    uuid.NewString(),
		Operation:   operation,
		GeneratedAt: at.Format(time.RFC3339),
	}
}

// FormatJSON returns the JSON representation of the report.
func FormatJSON(r *Report) string {
	jsonBytes, _ := json.MarshalIndent(r, "", "  ")
	return string(jsonBytes) + "\n"
}

// FormatText returns the text representation of the report.
func FormatText(r *Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "report %s (%s) at %s\n", r.ReportID, r.Operation, r.GeneratedAt)

	switch {
	case r.Prediction != nil:
		writePredictionText(&sb, r.Prediction)
	case r.Assignment != nil:
		writeAssignmentText(&sb, r.Assignment)
	case r.Forecast != nil:
		writeForecastText(&sb, r.Forecast)
	case r.Score != nil:
		writeScoreText(&sb, r.Score)
	case r.Health != nil:
		writeHealthText(&sb, r.Health)
	}
	return sb.String()
}

func writePredictionText(sb *strings.Builder, p *models.Prediction) {
	fmt.Fprintf(sb, "Estimated wait: %.0f min (range %.0f-%.0f, confidence %.2f)\n",
		p.EstimatedMinutes, p.LowerBound, p.UpperBound, p.Confidence)
	fmt.Fprintf(sb, "Queue position %d, %d counter(s) active, expected call at %s\n",
		p.QueuePosition, p.ActiveCounters, p.PredictedCallAt.Format("15:04"))
	writeList(sb, "Factors", p.Factors)
	writeList(sb, "Recommendations", p.Recommendations)
}

func writeAssignmentText(sb *strings.Builder, a *models.Assignment) {
	if a.CounterID == "" {
		fmt.Fprintf(sb, "No counter assigned: %s\n", a.Reason)
		return
	}
	fmt.Fprintf(sb, "Assigned counter %s (score %.0f): %s\n", a.CounterID, a.Score, a.Reason)
	if len(a.Ranking) > 1 {
		sb.WriteString("Ranking:\n")
		for _, cs := range a.Ranking {
			fmt.Fprintf(sb, "  %s: %.0f\n", cs.CounterID, cs.Score)
		}
	}
}

func writeForecastText(sb *strings.Builder, f *models.Forecast) {
	fmt.Fprintf(sb, "Forecast for %s (%s): %.0f tickets expected, confidence %.2f\n",
		f.TargetDate.Format("2006-01-02"), f.ServiceType, f.TotalExpectedTickets, f.Confidence)
	for _, h := range f.Hourly {
		fmt.Fprintf(sb, "%02d:00 : tickets=%.1f ; staff=%d\n", h.Hour, h.ExpectedTickets, h.RecommendedStaff)
	}
	peaks := make([]string, len(f.PeakHours))
	for i, h := range f.PeakHours {
		peaks[i] = fmt.Sprintf("%02d:00", h)
	}
	fmt.Fprintf(sb, "Peak hours: %s\n", strings.Join(peaks, ", "))
	fmt.Fprintf(sb, "Staffing: minimum=%d optimal=%d peak=%d\n",
		f.Staffing.Minimum, f.Staffing.Optimal, f.Staffing.Peak)
	writeList(sb, "Notes", f.Notes)
}

func writeScoreText(sb *strings.Builder, s *models.PriorityScore) {
	fmt.Fprintf(sb, "Priority score: %d/100, recommended position: %s\n", s.Score, s.RecommendedPosition)
	writeList(sb, "Factors", s.Factors)
}

func writeHealthText(sb *strings.Builder, h *models.QueueHealth) {
	fmt.Fprintf(sb, "Health score: %d/100 (%s)\n", h.HealthScore, h.Status)
	if h.Status == "critical" {
		sb.WriteString("  ⚠️  queue needs intervention\n")
	}
	writeList(sb, "Issues", h.Issues)
	writeList(sb, "Recommendations", h.Recommendations)
}

func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", label)
	for _, item := range items {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
}

// FormatCSV returns the CSV representation of the report. Forecasts render
// one row per hour; other results render key,value rows.
func FormatCSV(r *Report) string {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if r.Forecast != nil {
		writer.Write([]string{"Hour", "Expected Tickets", "Recommended Staff", "Expected Wait (min)"})
		for _, h := range r.Forecast.Hourly {
			writer.Write([]string{
				fmt.Sprintf("%02d:00", h.Hour),
				fmt.Sprintf("%.2f", h.ExpectedTickets),
				fmt.Sprintf("%d", h.RecommendedStaff),
				fmt.Sprintf("%.2f", h.ExpectedWaitMinutes),
			})
		}
		writer.Flush()
		return sb.String()
	}

	writer.Write([]string{"Key", "Value"})
	for _, kv := range keyValues(r) {
		writer.Write(kv)
	}
	writer.Flush()
	return sb.String()
}

func keyValues(r *Report) [][]string {
	rows := [][]string{
		{"report_id", r.ReportID},
		{"operation", r.Operation},
	}
	switch {
	case r.Prediction != nil:
		p := r.Prediction
		rows = append(rows,
			[]string{"estimated_minutes", fmt.Sprintf("%.0f", p.EstimatedMinutes)},
			[]string{"lower_bound", fmt.Sprintf("%.0f", p.LowerBound)},
			[]string{"upper_bound", fmt.Sprintf("%.0f", p.UpperBound)},
			[]string{"confidence", fmt.Sprintf("%.2f", p.Confidence)},
			[]string{"queue_position", fmt.Sprintf("%d", p.QueuePosition)},
			[]string{"factors", strings.Join(p.Factors, "; ")},
		)
	case r.Assignment != nil:
		a := r.Assignment
		rows = append(rows,
			[]string{"counter_id", a.CounterID},
			[]string{"score", fmt.Sprintf("%.0f", a.Score)},
			[]string{"reason", a.Reason},
		)
	case r.Score != nil:
		s := r.Score
		rows = append(rows,
			[]string{"score", fmt.Sprintf("%d", s.Score)},
			[]string{"recommended_position", s.RecommendedPosition},
			[]string{"factors", strings.Join(s.Factors, "; ")},
		)
	case r.Health != nil:
		h := r.Health
		rows = append(rows,
			[]string{"health_score", fmt.Sprintf("%d", h.HealthScore)},
			[]string{"status", h.Status},
			[]string{"issues", strings.Join(h.Issues, "; ")},
		)
	}
	return rows
}
