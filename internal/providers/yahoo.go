package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/mgrady/pitchplan/internal/models"
)

const yahooFantasyBaseURL = "https://fantasysports.yahooapis.com/fantasy/v2"

var yahooEndpoint = oauth2.Endpoint{
	AuthURL:  "https://api.login.yahoo.com/oauth2/request_auth",
	TokenURL: "https://api.login.yahoo.com/oauth2/get_token",
}

// YahooClient talks to the Yahoo Fantasy Sports API for roster and waiver
// pools. Token refresh is delegated to the oauth2 transport; the client only
// needs a long-lived refresh token.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
	cache      CacheProvider
	cacheTTL   time.Duration
	logger     *logrus.Logger
}

// NewYahooClient creates a Yahoo Fantasy client using the given OAuth2
// application credentials and refresh token.
func NewYahooClient(clientID, clientSecret, refreshToken string, cache CacheProvider, logger *logrus.Logger, timeout, cacheTTL time.Duration) *YahooClient {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     yahooEndpoint,
	}

	token := &oauth2.Token{RefreshToken: refreshToken}
	httpClient := oauth2.NewClient(context.Background(), conf.TokenSource(context.Background(), token))
	httpClient.Timeout = timeout

	return &YahooClient{
		baseURL:    yahooFantasyBaseURL,
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// GetTeamRoster fetches the full roster for a team key such as
// "458.l.135626.t.6", tagged with the My Team provenance.
func (c *YahooClient) GetTeamRoster(ctx context.Context, teamKey string) ([]models.Player, error) {
	cacheKey := RosterCacheKey(teamKey)

	var cached []models.Player
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return cached, nil
	}

	endpoint := fmt.Sprintf("team/%s/roster/players/percent_owned?format=json", teamKey)
	body, err := c.makeRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch team roster: %w", err)
	}

	players := c.parsePlayers(body, models.SourceMyTeam)
	if len(players) > 0 {
		if err := c.cache.SetSimple(cacheKey, players, c.cacheTTL); err != nil {
			c.logger.Warnf("Failed to cache roster: %v", err)
		}
	}

	c.logger.Infof("Fetched %d roster players for team %s", len(players), teamKey)
	return players, nil
}

// GetWaiverPlayers fetches the available-player pool for a league, sorted by
// ownership, tagged with the Waiver provenance.
func (c *YahooClient) GetWaiverPlayers(ctx context.Context, leagueKey string) ([]models.Player, error) {
	cacheKey := WaiverCacheKey(leagueKey)

	var cached []models.Player
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return cached, nil
	}

	endpoint := fmt.Sprintf("league/%s/players;status=A;position=P;sort=AR;count=100/percent_owned?format=json", leagueKey)
	body, err := c.makeRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch waiver players: %w", err)
	}

	players := c.parsePlayers(body, models.SourceWaiver)
	if len(players) > 0 {
		if err := c.cache.SetSimple(cacheKey, players, c.cacheTTL); err != nil {
			c.logger.Warnf("Failed to cache waiver pool: %v", err)
		}
	}

	c.logger.Infof("Fetched %d waiver players for league %s", len(players), leagueKey)
	return players, nil
}

func (c *YahooClient) makeRequest(ctx context.Context, endpoint string) (map[string]interface{}, error) {
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

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return body, nil
}

// parsePlayers walks Yahoo's fantasy_content envelope down to the players
// collection and converts each entry. Yahoo mixes arrays and objects freely,
// so every step is defensive; entries that fail to parse are skipped.
func (c *YahooClient) parsePlayers(body map[string]interface{}, source models.PlayerSource) []models.Player {
	collection := findPlayersCollection(asMap(body["fantasy_content"]))
	if collection == nil {
		c.logger.Warn("No players collection in Yahoo response")
		return nil
	}

	count := int(toFloat(collection["count"]))
	players := make([]models.Player, 0, count)

	for i := 0; i < count; i++ {
		entry := asMap(collection[strconv.Itoa(i)])
		if entry == nil {
			continue
		}

		player, ok := parsePlayerEntry(asSlice(entry["player"]))
		if !ok {
			continue
		}
		player.Source = source
		player.NormalizePositions()
		players = append(players, player)
	}
	return players
}

// findPlayersCollection locates the "players" map under either a team
// roster response or a league players response.
func findPlayersCollection(content map[string]interface{}) map[string]interface{} {
	for _, key := range []string{"team", "league"} {
		for _, part := range asSlice(content[key]) {
			m := asMap(part)
			if m == nil {
				continue
			}
			if roster := asMap(m["roster"]); roster != nil {
				if inner := asMap(roster["0"]); inner != nil {
					if players := asMap(inner["players"]); players != nil {
						return players
					}
				}
			}
			if players := asMap(m["players"]); players != nil {
				return players
			}
		}
	}
	return nil
}

// parsePlayerEntry converts one Yahoo player value: element 0 is a list of
// single-key attribute maps, later elements hold sub-resources such as
// percent_owned.
func parsePlayerEntry(parts []interface{}) (models.Player, bool) {
	var player models.Player

	if len(parts) == 0 {
		return player, false
	}

	for _, attr := range asSlice(parts[0]) {
		m := asMap(attr)
		if m == nil {
			continue
		}
		if v, ok := m["name"]; ok {
			player.Name = toString(asMap(v)["full"])
		}
		if v, ok := m["player_id"]; ok {
			player.YahooPlayerID = toString(v)
		}
		if v, ok := m["editorial_team_full_name"]; ok {
			player.MLBTeamName = toString(v)
		}
		if v, ok := m["eligible_positions"]; ok {
			for _, pos := range asSlice(v) {
				if pm := asMap(pos); pm != nil {
					player.EligiblePositions = append(player.EligiblePositions, toString(pm["position"]))
				}
			}
		}
	}

	for _, part := range parts[1:] {
		m := asMap(part)
		if m == nil {
			continue
		}
		for _, sub := range asSlice(m["percent_owned"]) {
			if sm := asMap(sub); sm != nil {
				if v, ok := sm["value"]; ok {
					player.PercentOwned = toFloat(v)
				}
			}
		}
	}

	if player.Name == "" {
		return player, false
	}
	return player, true
}

// JSON walking helpers. Yahoo responses mix types, so each conversion
// tolerates nil and wrong-type values.

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}

// Cache key generators
func RosterCacheKey(teamKey string) string {
	return fmt.Sprintf("yahoo:roster:%s", teamKey)
}

func WaiverCacheKey(leagueKey string) string {
	return fmt.Sprintf("yahoo:waivers:%s", leagueKey)
}
