package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mgrady/pitchplan/internal/dateutil"
	"github.com/mgrady/pitchplan/internal/models"
	"github.com/mgrady/pitchplan/internal/textutil"
	"github.com/mgrady/pitchplan/internal/urlutil"
)

// FantasyProvider supplies the roster and waiver candidate pools.
type FantasyProvider interface {
	GetTeamRoster(ctx context.Context, teamKey string) ([]models.Player, error)
	GetWaiverPlayers(ctx context.Context, leagueKey string) ([]models.Player, error)
}

// StarterProvider supplies confirmed probable starters for a date range.
type StarterProvider interface {
	GetProbableStarters(ctx context.Context, startDate, endDate time.Time) ([]models.ConfirmedStart, error)
}

// AnalyzeOptions tune a single analysis run.
type AnalyzeOptions struct {
	// TargetDays overrides the default Monday/Tuesday target days.
	TargetDays []string
	// OwnershipThreshold drops matches owned below this fraction. Applied
	// after matching, so report counts reflect the filtered list.
	OwnershipThreshold float64
	// IncludeWaivers controls whether the waiver pool participates at all.
	IncludeWaivers bool
}

// DefaultAnalyzeOptions returns the options one analysis run starts from.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{IncludeWaivers: true}
}

// AnalysisService orchestrates a weekly starting-pitcher analysis: compute
// the window, merge the candidate pools, match against confirmed starters,
// estimate second starts, then score and rank.
type AnalysisService struct {
	fantasy   FantasyProvider
	starters  StarterProvider
	lookahead *ScheduleLookahead
	logger    *logrus.Logger

	teamKey   string
	leagueKey string
}

func NewAnalysisService(fantasy FantasyProvider, starters StarterProvider, lookahead *ScheduleLookahead, logger *logrus.Logger, teamKey, leagueKey string) *AnalysisService {
	return &AnalysisService{
		fantasy:   fantasy,
		starters:  starters,
		lookahead: lookahead,
		logger:    logger,
		teamKey:   teamKey,
		leagueKey: leagueKey,
	}
}

// AnalyzeWeek runs the full analysis for the fantasy week after today.
// Upstream failures on any single feed degrade to an empty pool; a partial
// recommendation beats none. Only a zero today is fatal.
func (s *AnalysisService) AnalyzeWeek(ctx context.Context, today time.Time, opts AnalyzeOptions) (*models.WeekReport, error) {
	if today.IsZero() {
		return nil, fmt.Errorf("analysis requires a reference date")
	}

	startTime := time.Now()
	week := models.NextFantasyWeek(today, opts.TargetDays)

	s.logger.WithFields(logrus.Fields{
		"week_start": week.StartDate.Format("2006-01-02"),
		"week_end":   week.EndDate.Format("2006-01-02"),
		"week":       week.WeekNumber,
	}).Info("Starting weekly pitcher analysis")

	// The roster and waiver fetches are independent; issue them together.
	var (
		wg             sync.WaitGroup
		rosterPitchers []models.Player
		waiverPitchers []models.Player
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		roster, err := s.fantasy.GetTeamRoster(ctx, s.teamKey)
		if err != nil {
			s.logger.Warnf("Could not fetch team roster: %v", err)
			return
		}
		rosterPitchers = FilterPitchers(roster)
	}()

	if opts.IncludeWaivers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			waivers, err := s.fantasy.GetWaiverPlayers(ctx, s.leagueKey)
			if err != nil {
				s.logger.Warnf("Could not fetch waiver pitchers: %v", err)
				return
			}
			waiverPitchers = FilterPitchers(waivers)
		}()
	}
	wg.Wait()

	candidates := CombinePitchers(rosterPitchers, waiverPitchers)

	confirmed := s.fetchConfirmedStarters(ctx, week)

	matches := s.matchStarters(ctx, candidates, confirmed, week)
	matches = applyPostFilters(matches, opts)
	RankAnalyses(matches)

	report := models.AssembleWeekReport(week, matches, time.Since(startTime))

	s.logger.WithFields(logrus.Fields{
		"total":   report.TotalPitchers,
		"my_team": report.MyTeamPitchers,
		"waivers": report.WaiverPitchers,
		"elapsed": report.Duration,
	}).Info("Weekly pitcher analysis complete")

	return report, nil
}

// fetchConfirmedStarters pulls probable starters for the week. The fetch
// window extends past the week end because the upstream publishes rolling
// probables; the matcher filters to the target dates.
func (s *AnalysisService) fetchConfirmedStarters(ctx context.Context, week models.FantasyWeek) []models.ConfirmedStart {
	fetchEnd := week.StartDate.AddDate(0, 0, 10)

	confirmed, err := s.starters.GetProbableStarters(ctx, week.StartDate, fetchEnd)
	if err != nil {
		s.logger.Warnf("Could not fetch probable starters: %v", err)
		return nil
	}
	return confirmed
}

// matchStarters joins confirmed starters against the candidate pool by
// normalized name. First candidate match wins; roster candidates precede
// waiver candidates in merge order. Starters with no matching candidate are
// dropped: they are not reachable from this roster or waiver pool.
func (s *AnalysisService) matchStarters(ctx context.Context, candidates []models.Player, confirmed []models.ConfirmedStart, week models.FantasyWeek) []models.PitcherAnalysis {
	targetDates := week.TargetDates()

	var matches []models.PitcherAnalysis
	for _, starter := range confirmed {
		if !containsDate(targetDates, starter.Date) {
			continue
		}

		slug := textutil.Slugify(starter.Name)
		if slug == "" {
			// An unnormalizable name matches nothing, including another
			// unnormalizable name.
			continue
		}

		matched, ok := findMatchingPlayer(candidates, slug)
		if !ok {
			continue
		}

		secondStart := s.lookahead.SecondStartLikely(ctx, starter.TeamID, starter.Date, week.EndDate)

		matched.MLBPlayerID = starter.MLBPlayerID
		matched.BaseballSavantURL = urlutil.BaseballSavantURL(starter.Name, starter.MLBPlayerID)

		analysis := models.PitcherAnalysis{
			Player:               matched,
			ConfirmedStartDate:   starter.Date,
			IsMondayTuesdayStart: dateutil.IsMondayOrTuesday(starter.Date),
			PotentialSecondStart: secondStart,
			Score:                CalculateRecommendationScore(matched, secondStart),
			Reason:               GenerateRecommendationReason(matched, secondStart),
		}
		matches = append(matches, analysis)
	}
	return matches
}

// FilterPitchers keeps only candidates with a pitching-eligible position.
func FilterPitchers(players []models.Player) []models.Player {
	var pitchers []models.Player
	for _, p := range players {
		if p.IsPitcher() {
			pitchers = append(pitchers, p)
		}
	}
	return pitchers
}

// CombinePitchers merges the two pools into one candidate list, roster
// entries first. Provenance rides along untouched and duplicates pass
// through; matching resolves ties by this order.
func CombinePitchers(rosterPitchers, waiverPitchers []models.Player) []models.Player {
	combined := make([]models.Player, 0, len(rosterPitchers)+len(waiverPitchers))
	combined = append(combined, rosterPitchers...)
	combined = append(combined, waiverPitchers...)
	return combined
}

func findMatchingPlayer(candidates []models.Player, slug string) (models.Player, bool) {
	for _, candidate := range candidates {
		if textutil.Slugify(candidate.Name) == slug {
			return candidate, true
		}
	}
	return models.Player{}, false
}

func containsDate(dates []time.Time, date time.Time) bool {
	for _, d := range dates {
		if dateutil.SameDate(d, date) {
			return true
		}
	}
	return false
}

// CalculateRecommendationScore computes the displayed score: ownership
// contributes up to 1.0, a rostered player 2.0, a likely second start 1.5.
// Display only; ordering uses PitcherAnalysis.PriorityScore.
func CalculateRecommendationScore(player models.Player, potentialSecond bool) float64 {
	score := player.PercentOwned / 100.0

	if player.Source == models.SourceMyTeam {
		score += 2.0
	}
	if potentialSecond {
		score += 1.5
	}
	return score
}

// GenerateRecommendationReason builds the human-readable rationale.
func GenerateRecommendationReason(player models.Player, potentialSecond bool) string {
	var reasons []string

	if player.Source == models.SourceMyTeam {
		reasons = append(reasons, "Already on your team")
	}
	if potentialSecond {
		reasons = append(reasons, "Likely second start")
	}
	if player.PercentOwned < 50 {
		reasons = append(reasons, "Low ownership")
	} else if player.PercentOwned > 80 {
		reasons = append(reasons, "High ownership")
	}

	if len(reasons) == 0 {
		return "Confirmed Monday/Tuesday start"
	}
	return strings.Join(reasons, "; ")
}

// RankAnalyses orders matches best-first by priority score. The sort is
// stable: equal priorities keep their input order.
func RankAnalyses(matches []models.PitcherAnalysis) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].PriorityScore() > matches[j].PriorityScore()
	})
}

func applyPostFilters(matches []models.PitcherAnalysis, opts AnalyzeOptions) []models.PitcherAnalysis {
	if opts.OwnershipThreshold <= 0 {
		return matches
	}

	filtered := matches[:0]
	for _, m := range matches {
		if m.Player.PercentOwned >= opts.OwnershipThreshold {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
