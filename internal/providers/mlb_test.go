package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCache is an in-memory CacheProvider for tests.
type stubCache struct {
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (s *stubCache) GetSimple(key string, dest interface{}) error {
	data, ok := s.entries[key]
	if !ok {
		return assert.AnError
	}
	return json.Unmarshal(data, dest)
}

func (s *stubCache) SetSimple(key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[key] = data
	return nil
}

func newTestMLBClient(serverURL string, cache CacheProvider) *MLBClient {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	c := NewMLBClient(cache, logger, 5*time.Second, 100, 5, time.Hour)
	c.baseURL = serverURL
	return c
}

const scheduleFixture = `{
  "dates": [
    {
      "date": "2024-04-22",
      "games": [
        {
          "gamePk": 745001,
          "teams": {
            "home": {
              "probablePitcher": {"id": 608070, "fullName": "José Ramírez"},
              "team": {"id": 114, "name": "Cleveland Guardians"}
            },
            "away": {
              "probablePitcher": {"id": 543037, "fullName": "Gerrit Cole"},
              "team": {"id": 147, "name": "New York Yankees"}
            }
          }
        }
      ]
    },
    {
      "date": "2024-04-23",
      "games": [
        {
          "gamePk": 745002,
          "teams": {
            "home": {
              "probablePitcher": {"id": 543037, "fullName": "Gerrit Cole"},
              "team": {"id": 147, "name": "New York Yankees"}
            },
            "away": {
              "team": {"id": 121, "name": "New York Mets"}
            }
          }
        }
      ]
    }
  ]
}`

func TestGetProbableStarters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "hydrate=probablePitcher,team")
		w.Write([]byte(scheduleFixture))
	}))
	defer server.Close()

	client := newTestMLBClient(server.URL, newStubCache())

	start := time.Date(2024, time.April, 22, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.April, 28, 0, 0, 0, 0, time.UTC)

	starters, err := client.GetProbableStarters(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, starters, 2, "duplicate pitcher IDs collapse to the first sighting")

	assert.Equal(t, 608070, starters[0].MLBPlayerID)
	assert.Equal(t, "José Ramírez", starters[0].Name)
	assert.Equal(t, 114, starters[0].TeamID)
	assert.Equal(t, start, starters[0].Date)

	assert.Equal(t, 543037, starters[1].MLBPlayerID)
	assert.Equal(t, start, starters[1].Date, "Cole's first sighting is Monday, not Tuesday")
}

func TestGetProbableStartersFiltersRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scheduleFixture))
	}))
	defer server.Close()

	client := newTestMLBClient(server.URL, newStubCache())

	// Window that excludes both fixture dates.
	start := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)

	starters, err := client.GetProbableStarters(context.Background(), start, end)
	require.NoError(t, err)
	assert.Empty(t, starters)
}

func TestGetTeamSchedule(t *testing.T) {
	fixture := `{
	  "dates": [
	    {"date": "2024-04-23", "games": [{"gamePk": 1}]},
	    {"date": "2024-04-24", "games": [{"gamePk": 2}]},
	    {"date": "2024-04-25", "games": []},
	    {"date": "2024-04-26", "games": [{"gamePk": 3}]}
	  ]
	}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "teamId=114")
		w.Write([]byte(fixture))
	}))
	defer server.Close()

	client := newTestMLBClient(server.URL, newStubCache())

	dates, err := client.GetTeamSchedule(context.Background(),
		114,
		time.Date(2024, time.April, 23, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, dates, 3, "dates with no actual game are off-days")
	assert.True(t, dates[0].Before(dates[1]) && dates[1].Before(dates[2]))
}

func TestGetTeamScheduleUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"dates": [{"date": "2024-04-23", "games": [{"gamePk": 1}]}]}`))
	}))
	defer server.Close()

	client := newTestMLBClient(server.URL, newStubCache())
	start := time.Date(2024, time.April, 23, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)

	_, err := client.GetTeamSchedule(context.Background(), 114, start, end)
	require.NoError(t, err)
	_, err = client.GetTeamSchedule(context.Background(), 114, start, end)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second lookup should hit the cache")
}

func TestSearchPlayerID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"people": [
			{"id": 123, "fullName": "Luis Castillo"},
			{"id": 456, "fullName": "Luis Castillo Jr."}
		]}`))
	}))
	defer server.Close()

	client := newTestMLBClient(server.URL, newStubCache())

	id, err := client.SearchPlayerID(context.Background(), "Luis Castillo")
	require.NoError(t, err)
	assert.Equal(t, 123, id)

	id, err = client.SearchPlayerID(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestMakeRequestErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestMLBClient(server.URL, newStubCache())

	_, err := client.GetProbableStarters(context.Background(),
		time.Date(2024, time.April, 22, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.April, 28, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}
