package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseballSavantURL(t *testing.T) {
	assert.Equal(t,
		"https://baseballsavant.mlb.com/savant-player/jose-ramirez-608070",
		BaseballSavantURL("José Ramírez", 608070))

	assert.Empty(t, BaseballSavantURL("", 608070))
	assert.Empty(t, BaseballSavantURL("Jose Ramirez", 0))
}

func TestMLBPlayerURL(t *testing.T) {
	assert.Equal(t, "https://www.mlb.com/player/543037", MLBPlayerURL(543037))
	assert.Empty(t, MLBPlayerURL(0))
}

func TestYahooTeamURL(t *testing.T) {
	assert.Equal(t,
		"https://baseball.fantasysports.yahoo.com/b1/458.l.135626.t.6",
		YahooTeamURL("458.l.135626.t.6"))
	assert.Empty(t, YahooTeamURL(""))
}

func TestYahooPlayerSearchURL(t *testing.T) {
	assert.Equal(t,
		"https://baseball.fantasysports.yahoo.com/b1/playersearch?search=Gerrit+Cole",
		YahooPlayerSearchURL("Gerrit Cole"))
}
