package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mgrady/pitchplan/internal/dateutil"
)

// TeamScheduleProvider supplies a team's scheduled game dates in a range,
// ascending and deduplicated.
type TeamScheduleProvider interface {
	GetTeamSchedule(ctx context.Context, teamID int, startDate, endDate time.Time) ([]time.Time, error)
}

type scheduleKey struct {
	teamID    int
	scanStart string
	scanEnd   string
}

// ScheduleLookahead owns the second-start heuristic. Rotations generally
// recycle a starter every 5th team game, so the 5th game after a confirmed
// start is the earliest plausible second start. Lookups are memoized per
// instance for the life of the process; Reset drops the memo.
type ScheduleLookahead struct {
	provider TeamScheduleProvider
	logger   *logrus.Logger

	mu   sync.Mutex
	memo map[scheduleKey]bool
}

func NewScheduleLookahead(provider TeamScheduleProvider, logger *logrus.Logger) *ScheduleLookahead {
	return &ScheduleLookahead{
		provider: provider,
		logger:   logger,
		memo:     make(map[scheduleKey]bool),
	}
}

// SecondStartLikely reports whether the team's rotation cadence puts the
// pitcher in line for another start before the week ends. Upstream failures
// yield false: a missing second-start signal must never abort a run.
func (s *ScheduleLookahead) SecondStartLikely(ctx context.Context, teamID int, firstStartDate, weekEnd time.Time) bool {
	if teamID <= 0 {
		return false
	}

	scanStart := dateutil.DateOf(firstStartDate).AddDate(0, 0, 1)
	scanEnd := dateutil.DateOf(weekEnd).AddDate(0, 0, 5)

	key := scheduleKey{
		teamID:    teamID,
		scanStart: scanStart.Format("2006-01-02"),
		scanEnd:   scanEnd.Format("2006-01-02"),
	}

	s.mu.Lock()
	if likely, ok := s.memo[key]; ok {
		s.mu.Unlock()
		return likely
	}
	s.mu.Unlock()

	likely := s.evaluate(ctx, teamID, scanStart, scanEnd, dateutil.DateOf(weekEnd))

	s.mu.Lock()
	s.memo[key] = likely
	s.mu.Unlock()

	return likely
}

func (s *ScheduleLookahead) evaluate(ctx context.Context, teamID int, scanStart, scanEnd, weekEnd time.Time) bool {
	gameDates, err := s.provider.GetTeamSchedule(ctx, teamID, scanStart, scanEnd)
	if err != nil {
		s.logger.Warnf("Error checking second start potential for team %d: %v", teamID, err)
		return false
	}

	// Fewer than 5 games in range means the rotation cannot have turned
	// over; fail closed.
	if len(gameDates) < 5 {
		return false
	}

	fifthGame := dateutil.DateOf(gameDates[4])
	return !fifthGame.After(weekEnd)
}

// Reset drops the memoized results.
func (s *ScheduleLookahead) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memo = make(map[scheduleKey]bool)
}
