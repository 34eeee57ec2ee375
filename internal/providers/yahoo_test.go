package providers

import (
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgrady/pitchplan/internal/models"
)

// Trimmed-down version of Yahoo's roster response shape: arrays of
// single-key attribute maps with sub-resources appended.
const yahooRosterFixture = `{
  "fantasy_content": {
    "team": [
      [{"team_key": "458.l.135626.t.6"}],
      {
        "roster": {
          "0": {
            "players": {
              "count": 2,
              "0": {
                "player": [
                  [
                    {"player_key": "458.p.11001"},
                    {"player_id": "11001"},
                    {"name": {"full": "Gerrit Cole", "first": "Gerrit", "last": "Cole"}},
                    {"editorial_team_full_name": "New York Yankees"},
                    {"eligible_positions": [{"position": "SP"}, {"position": "P"}]}
                  ],
                  {
                    "percent_owned": [
                      {"coverage_type": "week", "week": "5"},
                      {"value": 99}
                    ]
                  }
                ]
              },
              "1": {
                "player": [
                  [
                    {"player_id": 11002},
                    {"name": {"full": "José Ramírez"}},
                    {"editorial_team_full_name": "Cleveland Guardians"},
                    {"eligible_positions": [{"position": "3B"}]}
                  ],
                  {
                    "percent_owned": [
                      {"value": 97.5}
                    ]
                  }
                ]
              }
            }
          }
        }
      }
    ]
  }
}`

const yahooLeagueFixture = `{
  "fantasy_content": {
    "league": [
      [{"league_key": "458.l.135626"}],
      {
        "players": {
          "count": 1,
          "0": {
            "player": [
              [
                {"player_id": "12000"},
                {"name": {"full": "Andrés Muñoz"}},
                {"eligible_positions": [{"position": "RP"}, {"position": "P"}]}
              ],
              {"percent_owned": [{"value": 41}]}
            ]
          }
        }
      }
    ]
  }
}`

func testYahooClient() *YahooClient {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return &YahooClient{logger: logger}
}

func decodeFixture(t *testing.T, fixture string) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(fixture), &body))
	return body
}

func TestParsePlayersRoster(t *testing.T) {
	players := testYahooClient().parsePlayers(decodeFixture(t, yahooRosterFixture), models.SourceMyTeam)
	require.Len(t, players, 2)

	cole := players[0]
	assert.Equal(t, "Gerrit Cole", cole.Name)
	assert.Equal(t, "11001", cole.YahooPlayerID)
	assert.Equal(t, "New York Yankees", cole.MLBTeamName)
	assert.Equal(t, []string{"SP", "P"}, cole.EligiblePositions)
	assert.Equal(t, 99.0, cole.PercentOwned)
	assert.Equal(t, models.SourceMyTeam, cole.Source)
	assert.True(t, cole.IsPitcher())

	ramirez := players[1]
	assert.Equal(t, "José Ramírez", ramirez.Name)
	assert.Equal(t, "11002", ramirez.YahooPlayerID, "numeric player_id coerces to string")
	assert.Equal(t, 97.5, ramirez.PercentOwned)
	assert.False(t, ramirez.IsPitcher())
}

func TestParsePlayersLeague(t *testing.T) {
	players := testYahooClient().parsePlayers(decodeFixture(t, yahooLeagueFixture), models.SourceWaiver)
	require.Len(t, players, 1)

	munoz := players[0]
	assert.Equal(t, "Andrés Muñoz", munoz.Name)
	assert.Equal(t, models.SourceWaiver, munoz.Source)
	assert.Equal(t, 41.0, munoz.PercentOwned)
	assert.True(t, munoz.IsPitcher())
}

func TestParsePlayersMalformed(t *testing.T) {
	cases := map[string]string{
		"empty body":        `{}`,
		"no players":        `{"fantasy_content": {"team": [[{"team_key": "x"}], {}]}}`,
		"nameless entry":    `{"fantasy_content": {"league": [[], {"players": {"count": 1, "0": {"player": [[{"player_id": "1"}]]}}}]}}`,
		"wrong value types": `{"fantasy_content": {"league": [[], {"players": {"count": 1, "0": {"player": "not-an-array"}}}]}}`,
	}

	for name, fixture := range cases {
		t.Run(name, func(t *testing.T) {
			players := testYahooClient().parsePlayers(decodeFixture(t, fixture), models.SourceWaiver)
			assert.Empty(t, players)
		})
	}
}
