package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mgrady/pitchplan/internal/dateutil"
	"github.com/mgrady/pitchplan/internal/providers"
	"github.com/mgrady/pitchplan/internal/services"
	"github.com/mgrady/pitchplan/pkg/utils"
)

type RosterHandler struct {
	yahoo     *providers.YahooClient
	mlb       *providers.MLBClient
	lookup    *services.PlayerLookupService
	logger    *logrus.Logger
	teamKey   string
	leagueKey string
}

func NewRosterHandler(yahoo *providers.YahooClient, mlb *providers.MLBClient, lookup *services.PlayerLookupService, logger *logrus.Logger, teamKey, leagueKey string) *RosterHandler {
	return &RosterHandler{
		yahoo:     yahoo,
		mlb:       mlb,
		lookup:    lookup,
		logger:    logger,
		teamKey:   teamKey,
		leagueKey: leagueKey,
	}
}

// GetRoster returns the fantasy team's roster with MLB IDs and Baseball
// Savant links filled in.
// GET /api/v1/roster
func (h *RosterHandler) GetRoster(c *gin.Context) {
	roster, err := h.yahoo.GetTeamRoster(c.Request.Context(), h.teamKey)
	if err != nil {
		h.logger.Errorf("Roster fetch failed: %v", err)
		utils.SendError(c, http.StatusBadGateway, utils.NewAppError(utils.ErrCodeUnavailable, "Could not fetch roster from Yahoo"))
		return
	}

	roster = h.lookup.EnrichRoster(c.Request.Context(), roster)
	utils.SendSuccess(c, roster)
}

// GetWaiverPitchers returns the available pitchers in the league.
// GET /api/v1/waivers
func (h *RosterHandler) GetWaiverPitchers(c *gin.Context) {
	waivers, err := h.yahoo.GetWaiverPlayers(c.Request.Context(), h.leagueKey)
	if err != nil {
		h.logger.Errorf("Waiver fetch failed: %v", err)
		utils.SendError(c, http.StatusBadGateway, utils.NewAppError(utils.ErrCodeUnavailable, "Could not fetch waiver players from Yahoo"))
		return
	}

	utils.SendSuccess(c, services.FilterPitchers(waivers))
}

// GetTeamSchedule returns an MLB team's game dates in a range.
// GET /api/v1/teams/:id/schedule?start=2024-04-22&end=2024-05-03
func (h *RosterHandler) GetTeamSchedule(c *gin.Context) {
	teamID, err := strconv.Atoi(c.Param("id"))
	if err != nil || teamID <= 0 {
		utils.SendValidationError(c, "Invalid team ID", "Team ID must be a positive integer")
		return
	}

	start := dateutil.DateOf(time.Now().UTC())
	end := start.AddDate(0, 0, 10)

	if startStr := c.Query("start"); startStr != "" {
		if start, err = dateutil.ParseDate(startStr); err != nil {
			utils.SendValidationError(c, "Invalid start date", "Date must be in YYYY-MM-DD format")
			return
		}
	}
	if endStr := c.Query("end"); endStr != "" {
		if end, err = dateutil.ParseDate(endStr); err != nil {
			utils.SendValidationError(c, "Invalid end date", "Date must be in YYYY-MM-DD format")
			return
		}
	}
	if end.Before(start) {
		utils.SendValidationError(c, "Invalid range", "End date must not precede start date")
		return
	}

	games, err := h.mlb.GetTeamSchedule(c.Request.Context(), teamID, start, end)
	if err != nil {
		h.logger.Errorf("Schedule fetch failed for team %d: %v", teamID, err)
		utils.SendError(c, http.StatusBadGateway, utils.NewAppError(utils.ErrCodeUnavailable, "Could not fetch team schedule"))
		return
	}

	dates := make([]string, len(games))
	for i, g := range games {
		dates[i] = g.Format("2006-01-02")
	}

	utils.SendSuccess(c, gin.H{
		"team_id": teamID,
		"start":   start.Format("2006-01-02"),
		"end":     end.Format("2006-01-02"),
		"games":   dates,
	})
}

// GetProbableStarters returns confirmed probable starters for a date range.
// GET /api/v1/starters?start=2024-04-22&end=2024-04-28
func (h *RosterHandler) GetProbableStarters(c *gin.Context) {
	start := dateutil.DateOf(time.Now().UTC())
	end := start.AddDate(0, 0, 7)

	var err error
	if startStr := c.Query("start"); startStr != "" {
		if start, err = dateutil.ParseDate(startStr); err != nil {
			utils.SendValidationError(c, "Invalid start date", "Date must be in YYYY-MM-DD format")
			return
		}
	}
	if endStr := c.Query("end"); endStr != "" {
		if end, err = dateutil.ParseDate(endStr); err != nil {
			utils.SendValidationError(c, "Invalid end date", "Date must be in YYYY-MM-DD format")
			return
		}
	}
	if end.Before(start) {
		utils.SendValidationError(c, "Invalid range", "End date must not precede start date")
		return
	}

	starters, err := h.mlb.GetProbableStarters(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Errorf("Probable starter fetch failed: %v", err)
		utils.SendError(c, http.StatusBadGateway, utils.NewAppError(utils.ErrCodeUnavailable, "Could not fetch probable starters"))
		return
	}

	utils.SendSuccess(c, starters)
}
