package analytics

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"wine-interviewer/internal/storage"
)

// DailyStats summarizes the interview log for one day.
type DailyStats struct {
	Date             string  `json:"date"`
	Answers          int     `json:"answers"`
	Started          int     `json:"interviews_started"`
	Completed        int     `json:"interviews_completed"`
	AvgResponseWords float64 `json:"avg_response_words"`
	LongestResponse  int     `json:"longest_response_words"`
}

// AnalyzeDailyLogs counts the records of targetDate. Interviews are
// recognized by their fixed opening and closing questions.
func AnalyzeDailyLogs(records []storage.Record, targetDate time.Time, opening, closing string) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	stats := &DailyStats{Date: startOfDay.Format("2006-01-02")}

	words := 0
	for _, rec := range records {
		ts := rec.Timestamp.In(targetDate.Location())
		if ts.Before(startOfDay) || !ts.Before(endOfDay) {
			continue
		}
		stats.Answers++
		switch rec.Question {
		case opening:
			stats.Started++
		case closing:
			stats.Completed++
		}
		n := len(strings.Fields(rec.Response))
		words += n
		if n > stats.LongestResponse {
			stats.LongestResponse = n
		}
	}
	if stats.Answers > 0 {
		stats.AvgResponseWords = float64(words) / float64(stats.Answers)
	}
	return stats
}

// GenerateReportSummary renders the stats as plain text.
func (ds *DailyStats) GenerateReportSummary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Interview activity for %s:\n", ds.Date)
	fmt.Fprintf(&sb, "- Answers recorded: %d\n", ds.Answers)
	fmt.Fprintf(&sb, "- Interviews started: %d\n", ds.Started)
	fmt.Fprintf(&sb, "- Interviews completed: %d\n", ds.Completed)
	fmt.Fprintf(&sb, "- Average answer length: %.1f words (longest %d)\n", ds.AvgResponseWords, ds.LongestResponse)
	return sb.String()
}

// ToJSON serializes the stats for machine consumption.
func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
