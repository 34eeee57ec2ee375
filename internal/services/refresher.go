package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefreshService precomputes the next week's report on a schedule and warms
// the report cache, so the first request after rosters settle is instant.
type RefreshService struct {
	analysis *AnalysisService
	cache    *CacheService
	logger   *logrus.Logger
	cron     *cron.Cron
	schedule string
	opts     AnalyzeOptions

	mu        sync.Mutex
	isRunning bool
}

func NewRefreshService(analysis *AnalysisService, cache *CacheService, logger *logrus.Logger, schedule string, opts AnalyzeOptions) *RefreshService {
	return &RefreshService{
		analysis: analysis,
		cache:    cache,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
		opts:     opts,
	}
}

// Start schedules the recurring refresh. When runInitial is set, one refresh
// fires immediately in the background.
func (s *RefreshService) Start(runInitial bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresh service is already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.refresh); err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	if runInitial {
		go s.refresh()
	}

	s.logger.Infof("Refresh service started with schedule %q", s.schedule)
	return nil
}

// Stop halts the scheduler, waiting for any in-flight refresh.
func (s *RefreshService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Refresh service stopped")
}

// RefreshNow runs one refresh synchronously and returns its error.
func (s *RefreshService) RefreshNow(ctx context.Context) error {
	report, err := s.analysis.AnalyzeWeek(ctx, time.Now().UTC(), s.opts)
	if err != nil {
		return fmt.Errorf("scheduled analysis failed: %w", err)
	}

	if err := s.cache.SetWithRetry(ctx, LatestReportCacheKey(), report, 0, 3); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	if err := s.cache.Set(ctx, ReportCacheKey(report.Week.StartDate), report, 0); err != nil {
		s.logger.Warnf("Failed to cache report by week: %v", err)
	}
	return nil
}

func (s *RefreshService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RefreshNow(ctx); err != nil {
		s.logger.Errorf("Background refresh failed: %v", err)
		return
	}
	s.logger.Info("Background refresh complete")
}
