package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/mgrady/pitchplan/internal/dateutil"
)

// ConfirmedStart is an externally reported probable pitching appearance:
// one pitcher, one date, one team. Immutable once received from the MLB
// Stats API.
type ConfirmedStart struct {
	MLBPlayerID int       `json:"mlb_player_id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeamID      int       `json:"team_id"`
	TeamName    string    `json:"team_name,omitempty"`
}

// FantasyWeek is the Monday-Sunday analysis window.
type FantasyWeek struct {
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	WeekNumber int       `json:"week_number"`
	TargetDays []string  `json:"target_days"`
}

// NextFantasyWeek computes the week strictly after today. The caller
// supplies today so the calculation stays testable without clock mocking.
func NextFantasyWeek(today time.Time, targetDays []string) FantasyWeek {
	start, end := dateutil.NextWeekBounds(today)
	if len(targetDays) == 0 {
		targetDays = dateutil.DefaultTargetDays
	}
	return FantasyWeek{
		StartDate:  start,
		EndDate:    end,
		WeekNumber: dateutil.WeekNumber(start),
		TargetDays: targetDays,
	}
}

// TargetDates returns the calendar dates within the window matching the
// configured target days, in order.
func (w FantasyWeek) TargetDates() []time.Time {
	return dateutil.TargetDates(w.StartDate, w.EndDate, w.TargetDays)
}

// Display renders the window span, e.g. "Apr 15 - 21".
func (w FantasyWeek) Display() string {
	return dateutil.FormatRange(w.StartDate, w.EndDate)
}

// PitcherAnalysis pairs a candidate with a confirmed start and carries the
// derived recommendation. The ranker fills Score and Reason; nothing mutates
// an analysis after ranking.
type PitcherAnalysis struct {
	Player               Player    `json:"player"`
	ConfirmedStartDate   time.Time `json:"confirmed_start_date"`
	IsMondayTuesdayStart bool      `json:"is_monday_tuesday_start"`
	PotentialSecondStart bool      `json:"potential_second_start"`
	Score                float64   `json:"recommendation_score"`
	Reason               string    `json:"recommendation_reason"`
}

// PriorityScore is the coarse integer used strictly for ordering. It is a
// deliberately separate formula from Score: Score explains the
// recommendation, PriorityScore sorts it.
func (a PitcherAnalysis) PriorityScore() int {
	priority := 0
	if a.Player.Source == SourceMyTeam {
		priority += 1000
	}
	if a.PotentialSecondStart {
		priority += 500
	}
	if a.IsMondayTuesdayStart {
		priority += 100
	}
	priority += int(a.Player.PercentOwned)
	return priority
}

// StartDateDisplay renders the confirmed start date, or "TBD".
func (a PitcherAnalysis) StartDateDisplay() string {
	if a.ConfirmedStartDate.IsZero() {
		return "TBD"
	}
	return dateutil.FormatDisplay(a.ConfirmedStartDate)
}

// WeekReport is the final result of one analysis run: the window, the ranked
// matches, and summary counts. Assembled once, immutable afterwards.
type WeekReport struct {
	RunID          uuid.UUID         `json:"run_id"`
	Week           FantasyWeek       `json:"week"`
	Matches        []PitcherAnalysis `json:"matches"`
	TotalPitchers  int               `json:"total_pitchers"`
	MyTeamPitchers int               `json:"my_team_pitchers"`
	WaiverPitchers int               `json:"waiver_pitchers"`
	Completed      bool              `json:"completed"`
	Duration       float64           `json:"duration_seconds"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// AssembleWeekReport aggregates already-validated matches into a report.
// This step cannot fail.
func AssembleWeekReport(week FantasyWeek, matches []PitcherAnalysis, elapsed time.Duration) *WeekReport {
	report := &WeekReport{
		RunID:       uuid.New(),
		Week:        week,
		Matches:     matches,
		Completed:   true,
		Duration:    elapsed.Seconds(),
		GeneratedAt: time.Now().UTC(),
	}

	report.TotalPitchers = len(matches)
	for _, m := range matches {
		switch m.Player.Source {
		case SourceMyTeam:
			report.MyTeamPitchers++
		case SourceWaiver:
			report.WaiverPitchers++
		}
	}
	return report
}
