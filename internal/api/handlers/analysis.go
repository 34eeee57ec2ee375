package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mgrady/pitchplan/internal/dateutil"
	"github.com/mgrady/pitchplan/internal/models"
	"github.com/mgrady/pitchplan/internal/services"
	"github.com/mgrady/pitchplan/pkg/utils"
)

type AnalysisHandler struct {
	analysis  *services.AnalysisService
	refresher *services.RefreshService
	cache     *services.CacheService
	logger    *logrus.Logger
	defaults  services.AnalyzeOptions
}

func NewAnalysisHandler(analysis *services.AnalysisService, refresher *services.RefreshService, cache *services.CacheService, logger *logrus.Logger, defaults services.AnalyzeOptions) *AnalysisHandler {
	return &AnalysisHandler{
		analysis:  analysis,
		refresher: refresher,
		cache:     cache,
		logger:    logger,
		defaults:  defaults,
	}
}

// GetWeeklyAnalysis runs the analysis for the fantasy week after the given
// reference date.
// GET /api/v1/analysis/week?date=2024-04-17&days=Monday,Tuesday&min_ownership=50&include_waivers=true
func (h *AnalysisHandler) GetWeeklyAnalysis(c *gin.Context) {
	today := time.Now().UTC()
	customized := false

	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := dateutil.ParseDate(dateStr)
		if err != nil {
			utils.SendValidationError(c, "Invalid date", "Date must be in YYYY-MM-DD format")
			return
		}
		today = parsed
		customized = true
	}

	opts := h.defaults
	if daysStr := c.Query("days"); daysStr != "" {
		days, err := parseTargetDays(daysStr)
		if err != nil {
			utils.SendValidationError(c, "Invalid target days", err.Error())
			return
		}
		opts.TargetDays = days
		customized = true
	}
	if minStr := c.Query("min_ownership"); minStr != "" {
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil || min < 0 || min > 100 {
			utils.SendValidationError(c, "Invalid ownership threshold", "min_ownership must be a number between 0 and 100")
			return
		}
		opts.OwnershipThreshold = min
		customized = true
	}
	if waiversStr := c.Query("include_waivers"); waiversStr != "" {
		include, err := strconv.ParseBool(waiversStr)
		if err != nil {
			utils.SendValidationError(c, "Invalid include_waivers", "include_waivers must be true or false")
			return
		}
		opts.IncludeWaivers = include
		customized = true
	}

	// Default-parameter requests are served from the warmed cache when a
	// report for the same week exists.
	week := models.NextFantasyWeek(today, opts.TargetDays)
	if !customized {
		var cached models.WeekReport
		if err := h.cache.Get(c.Request.Context(), services.ReportCacheKey(week.StartDate), &cached); err == nil {
			utils.SendSuccess(c, cached)
			return
		}
	}

	report, err := h.analysis.AnalyzeWeek(c.Request.Context(), today, opts)
	if err != nil {
		h.logger.Errorf("Weekly analysis failed: %v", err)
		utils.SendInternalError(c, "Failed to run weekly analysis")
		return
	}

	if !customized {
		if err := h.cache.Set(c.Request.Context(), services.ReportCacheKey(week.StartDate), report, 0); err != nil {
			h.logger.Warnf("Failed to cache weekly report: %v", err)
		}
	}

	utils.SendSuccess(c, report)
}

// GetLatestReport returns the most recent cached report without recomputing.
// GET /api/v1/analysis/latest
func (h *AnalysisHandler) GetLatestReport(c *gin.Context) {
	var report models.WeekReport
	if err := h.cache.Get(c.Request.Context(), services.LatestReportCacheKey(), &report); err != nil {
		utils.SendNotFound(c, "No cached report available; run an analysis first")
		return
	}
	utils.SendSuccess(c, report)
}

// RefreshAnalysis forces a fresh run and rewarms the report cache.
// POST /api/v1/analysis/refresh
func (h *AnalysisHandler) RefreshAnalysis(c *gin.Context) {
	if err := h.refresher.RefreshNow(c.Request.Context()); err != nil {
		h.logger.Errorf("Manual refresh failed: %v", err)
		utils.SendError(c, http.StatusBadGateway,
			utils.NewAppError(utils.ErrCodeUnavailable, "Refresh failed", err.Error()))
		return
	}

	var report models.WeekReport
	if err := h.cache.Get(c.Request.Context(), services.LatestReportCacheKey(), &report); err != nil {
		utils.SendInternalError(c, "Refresh succeeded but report could not be read back")
		return
	}
	utils.SendSuccess(c, report)
}

func parseTargetDays(daysStr string) ([]string, error) {
	valid := map[string]bool{
		"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
		"Friday": true, "Saturday": true, "Sunday": true,
	}

	var days []string
	for _, raw := range strings.Split(daysStr, ",") {
		day := strings.TrimSpace(raw)
		if day == "" {
			continue
		}
		// Accept any casing on input, store canonical weekday names.
		day = strings.ToUpper(day[:1]) + strings.ToLower(day[1:])
		if !valid[day] {
			return nil, fmt.Errorf("unknown day name: %q", raw)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("days must contain at least one weekday name")
	}
	return days, nil
}
