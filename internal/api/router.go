package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mgrady/pitchplan/internal/api/handlers"
	"github.com/mgrady/pitchplan/internal/providers"
	"github.com/mgrady/pitchplan/internal/services"
	"github.com/mgrady/pitchplan/pkg/config"
	"github.com/mgrady/pitchplan/pkg/database"
)

// Services bundles everything the route handlers depend on.
type Services struct {
	DB        *database.DB
	Redis     *redis.Client
	Cache     *services.CacheService
	Yahoo     *providers.YahooClient
	MLB       *providers.MLBClient
	Analysis  *services.AnalysisService
	Refresher *services.RefreshService
	Lookup    *services.PlayerLookupService
	Logger    *logrus.Logger
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, svcs *Services, cfg *config.Config) {
	defaults := services.AnalyzeOptions{
		TargetDays:         cfg.TargetDays,
		OwnershipThreshold: cfg.OwnershipThreshold,
		IncludeWaivers:     cfg.IncludeWaivers,
	}

	analysisHandler := handlers.NewAnalysisHandler(svcs.Analysis, svcs.Refresher, svcs.Cache, svcs.Logger, defaults)
	rosterHandler := handlers.NewRosterHandler(svcs.Yahoo, svcs.MLB, svcs.Lookup, svcs.Logger, cfg.YahooTeamKey, cfg.YahooLeagueID)

	// Analysis endpoints
	group.GET("/analysis/week", analysisHandler.GetWeeklyAnalysis)
	group.GET("/analysis/latest", analysisHandler.GetLatestReport)
	group.POST("/analysis/refresh", analysisHandler.RefreshAnalysis)

	// Fantasy roster endpoints
	group.GET("/roster", rosterHandler.GetRoster)
	group.GET("/waivers", rosterHandler.GetWaiverPitchers)

	// MLB data endpoints
	group.GET("/starters", rosterHandler.GetProbableStarters)
	group.GET("/teams/:id/schedule", rosterHandler.GetTeamSchedule)
}
