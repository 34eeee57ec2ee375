package urlutil

import (
	"fmt"
	"net/url"

	"github.com/mgrady/pitchplan/internal/textutil"
)

// BaseballSavantURL builds the Baseball Savant player page URL from a name
// and MLBAM ID. Returns "" when either piece is missing.
func BaseballSavantURL(playerName string, mlbPlayerID int) string {
	if playerName == "" || mlbPlayerID <= 0 {
		return ""
	}
	return fmt.Sprintf("https://baseballsavant.mlb.com/savant-player/%s-%d", textutil.Slugify(playerName), mlbPlayerID)
}

// MLBPlayerURL builds the MLB.com player page URL.
func MLBPlayerURL(mlbPlayerID int) string {
	if mlbPlayerID <= 0 {
		return ""
	}
	return fmt.Sprintf("https://www.mlb.com/player/%d", mlbPlayerID)
}

// HeadshotURL builds the MLB static headshot URL, falling back to the
// generic silhouette when no ID is known.
func HeadshotURL(mlbPlayerID int) string {
	ref := "generic"
	if mlbPlayerID > 0 {
		ref = fmt.Sprintf("%d", mlbPlayerID)
	}
	return fmt.Sprintf("https://img.mlbstatic.com/mlb-photos/image/upload/d_people:generic:headshot:67:current.png/w_213,q_auto:best/v1/people/%s/headshot/67/current", ref)
}

// YahooTeamURL builds the Yahoo Fantasy team page URL from a team key such
// as "458.l.135626.t.6".
func YahooTeamURL(teamKey string) string {
	if teamKey == "" {
		return ""
	}
	return fmt.Sprintf("https://baseball.fantasysports.yahoo.com/b1/%s", teamKey)
}

// YahooPlayerSearchURL builds the Yahoo Fantasy player search URL.
func YahooPlayerSearchURL(playerName string) string {
	if playerName == "" {
		return ""
	}
	return fmt.Sprintf("https://baseball.fantasysports.yahoo.com/b1/playersearch?search=%s", url.QueryEscape(playerName))
}
