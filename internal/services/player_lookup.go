package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mgrady/pitchplan/internal/models"
	"github.com/mgrady/pitchplan/internal/textutil"
	"github.com/mgrady/pitchplan/internal/urlutil"
	"github.com/mgrady/pitchplan/pkg/database"
)

// PlayerSearcher resolves a display name to an MLBAM player ID.
type PlayerSearcher interface {
	SearchPlayerID(ctx context.Context, name string) (int, error)
}

// PlayerLookupService resolves Yahoo player names to MLB player IDs,
// persisting every successful resolution so repeat runs skip the upstream
// search entirely.
type PlayerLookupService struct {
	db       *database.DB
	searcher PlayerSearcher
	logger   *logrus.Logger
}

func NewPlayerLookupService(db *database.DB, searcher PlayerSearcher, logger *logrus.Logger) *PlayerLookupService {
	return &PlayerLookupService{
		db:       db,
		searcher: searcher,
		logger:   logger,
	}
}

// ResolveID returns the MLB player ID for a name, consulting the persistent
// cache before the MLB people search. Returns 0 when the player cannot be
// resolved; resolution failures are not fatal to a run.
func (s *PlayerLookupService) ResolveID(ctx context.Context, name string, positions []string) int {
	slug := textutil.Slugify(name)
	if slug == "" {
		return 0
	}

	var record models.PlayerIDRecord
	err := s.db.WithContext(ctx).Where("name_slug = ?", slug).First(&record).Error
	if err == nil {
		return record.MLBPlayerID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Warnf("Player ID cache lookup failed for %q: %v", name, err)
	}

	id, err := s.searcher.SearchPlayerID(ctx, name)
	if err != nil {
		s.logger.Warnf("MLB player search failed for %q: %v", name, err)
		return 0
	}
	if id == 0 {
		return 0
	}

	if err := s.store(ctx, slug, name, id, positions); err != nil {
		s.logger.Warnf("Failed to cache player ID for %q: %v", name, err)
	}
	return id
}

// EnrichRoster fills in MLB IDs and Baseball Savant links on a roster for
// display.
func (s *PlayerLookupService) EnrichRoster(ctx context.Context, players []models.Player) []models.Player {
	for i := range players {
		if players[i].MLBPlayerID != 0 {
			continue
		}
		id := s.ResolveID(ctx, players[i].Name, players[i].EligiblePositions)
		if id == 0 {
			continue
		}
		players[i].MLBPlayerID = id
		players[i].BaseballSavantURL = urlutil.BaseballSavantURL(players[i].Name, id)
	}
	return players
}

func (s *PlayerLookupService) store(ctx context.Context, slug, name string, id int, positions []string) error {
	posJSON, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("failed to encode positions: %w", err)
	}

	record := models.PlayerIDRecord{
		NameSlug:    slug,
		DisplayName: name,
		MLBPlayerID: id,
		Positions:   datatypes.JSON(posJSON),
	}
	return s.db.WithContext(ctx).Save(&record).Error
}
