package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/mgrady/pitchplan/internal/dateutil"
	"github.com/mgrady/pitchplan/internal/models"
	"github.com/mgrady/pitchplan/internal/textutil"
)

const (
	mlbStatsBaseURL = "https://statsapi.mlb.com/api/v1"
	mlbSportID      = 1
)

// CacheProvider is the slice of the cache service the providers need.
type CacheProvider interface {
	GetSimple(key string, dest interface{}) error
	SetSimple(key string, value interface{}, expiration time.Duration) error
}

// MLBClient talks to the MLB Stats API for probable starters and team
// schedules. Calls are rate limited and wrapped in a circuit breaker; results
// are memoized through the cache provider.
type MLBClient struct {
	baseURL    string
	httpClient *http.Client
	cache      CacheProvider
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	cacheTTL   time.Duration
	logger     *logrus.Logger
}

// NewMLBClient creates a new MLB Stats API client.
func NewMLBClient(cache CacheProvider, logger *logrus.Logger, timeout time.Duration, rateLimit, breakerThreshold int, cacheTTL time.Duration) *MLBClient {
	settings := gobreaker.Settings{
		Name:        "mlb-stats",
		MaxRequests: uint32(breakerThreshold),
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &MLBClient{
		baseURL:    mlbStatsBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Schedule endpoint response shapes, limited to the fields we consume.
type mlbScheduleResponse struct {
	Dates []struct {
		Date  string `json:"date"`
		Games []struct {
			GamePk int `json:"gamePk"`
			Teams  struct {
				Home mlbGameSide `json:"home"`
				Away mlbGameSide `json:"away"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

type mlbGameSide struct {
	ProbablePitcher *struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"probablePitcher"`
	Team *struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
}

type mlbPeopleSearchResponse struct {
	People []struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"people"`
}

// GetProbableStarters fetches the confirmed probable pitchers for a date
// range, deduplicated by MLB player ID (first sighting wins).
func (c *MLBClient) GetProbableStarters(ctx context.Context, startDate, endDate time.Time) ([]models.ConfirmedStart, error) {
	cacheKey := StartersCacheKey(startDate, endDate)

	var cached []models.ConfirmedStart
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return cached, nil
	}

	endpoint := fmt.Sprintf("schedule?sportId=%d&startDate=%s&endDate=%s&hydrate=probablePitcher,team",
		mlbSportID, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	var resp mlbScheduleResponse
	if err := c.makeRequest(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch probable starters: %w", err)
	}

	seen := make(map[int]bool)
	var starters []models.ConfirmedStart

	for _, day := range resp.Dates {
		gameDate, err := dateutil.ParseDate(day.Date)
		if err != nil {
			c.logger.Warnf("Skipping malformed schedule date %q: %v", day.Date, err)
			continue
		}
		if gameDate.Before(dateutil.DateOf(startDate)) || gameDate.After(dateutil.DateOf(endDate)) {
			continue
		}

		for _, game := range day.Games {
			for _, side := range []mlbGameSide{game.Teams.Home, game.Teams.Away} {
				if side.ProbablePitcher == nil || side.Team == nil {
					continue
				}
				if side.ProbablePitcher.ID == 0 || side.ProbablePitcher.FullName == "" {
					continue
				}
				if seen[side.ProbablePitcher.ID] {
					continue
				}
				seen[side.ProbablePitcher.ID] = true
				starters = append(starters, models.ConfirmedStart{
					MLBPlayerID: side.ProbablePitcher.ID,
					Name:        side.ProbablePitcher.FullName,
					Date:        gameDate,
					TeamID:      side.Team.ID,
					TeamName:    side.Team.Name,
				})
			}
		}
	}

	c.logger.Infof("Found %d confirmed probable starters between %s and %s",
		len(starters), startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	if len(starters) > 0 {
		if err := c.cache.SetSimple(cacheKey, starters, c.cacheTTL); err != nil {
			c.logger.Warnf("Failed to cache probable starters: %v", err)
		}
	}

	return starters, nil
}

// GetTeamSchedule returns the ascending, deduplicated dates on which the
// team has at least one scheduled game in range. Off-days are absent.
func (c *MLBClient) GetTeamSchedule(ctx context.Context, teamID int, startDate, endDate time.Time) ([]time.Time, error) {
	cacheKey := TeamScheduleCacheKey(teamID, startDate, endDate)

	var cached []time.Time
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return cached, nil
	}

	endpoint := fmt.Sprintf("schedule?sportId=%d&teamId=%d&startDate=%s&endDate=%s",
		mlbSportID, teamID, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))

	var resp mlbScheduleResponse
	if err := c.makeRequest(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for team %d: %w", teamID, err)
	}

	var gameDates []time.Time
	for _, day := range resp.Dates {
		gameDate, err := dateutil.ParseDate(day.Date)
		if err != nil {
			continue
		}

		hasGame := false
		for _, game := range day.Games {
			if game.GamePk != 0 {
				hasGame = true
				break
			}
		}
		if hasGame {
			gameDates = append(gameDates, gameDate)
		}
	}

	sort.Slice(gameDates, func(i, j int) bool { return gameDates[i].Before(gameDates[j]) })

	if err := c.cache.SetSimple(cacheKey, gameDates, c.cacheTTL); err != nil {
		c.logger.Warnf("Failed to cache team schedule: %v", err)
	}

	c.logger.Debugf("Found %d games for team %d", len(gameDates), teamID)
	return gameDates, nil
}

// SearchPlayerID resolves a player name to an MLBAM ID via the people
// search endpoint. Returns 0 when no slug-equal match exists.
func (c *MLBClient) SearchPlayerID(ctx context.Context, name string) (int, error) {
	slug := textutil.Slugify(name)
	if slug == "" {
		return 0, nil
	}

	endpoint := fmt.Sprintf("people/search?names=%s", url.QueryEscape(name))

	var resp mlbPeopleSearchResponse
	if err := c.makeRequest(ctx, endpoint, &resp); err != nil {
		return 0, fmt.Errorf("failed to search for player %q: %w", name, err)
	}

	for _, person := range resp.People {
		if textutil.Slugify(person.FullName) == slug {
			return person.ID, nil
		}
	}
	return 0, nil
}

// makeRequest performs a rate-limited GET through the circuit breaker and
// decodes the JSON body into target.
func (c *MLBClient) makeRequest(ctx context.Context, endpoint string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, endpoint), nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		return nil, json.NewDecoder(resp.Body).Decode(target)
	})
	return err
}

// Cache key generators
func StartersCacheKey(start, end time.Time) string {
	return fmt.Sprintf("mlb:starters:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func TeamScheduleCacheKey(teamID int, start, end time.Time) string {
	return fmt.Sprintf("mlb:schedule:%d:%s:%s", teamID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
