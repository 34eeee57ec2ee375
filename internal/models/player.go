package models

import (
	"fmt"
	"strings"
)

// PlayerSource tags where a candidate came from.
type PlayerSource string

const (
	SourceMyTeam PlayerSource = "My Team"
	SourceWaiver PlayerSource = "Waiver"
)

// PitcherPositions are the position codes that classify a player as a
// pitcher. A player with no eligible positions is never a pitcher.
var PitcherPositions = map[string]bool{
	"SP": true,
	"RP": true,
	"P":  true,
}

var validPositions = map[string]bool{
	"C": true, "1B": true, "2B": true, "3B": true, "SS": true,
	"OF": true, "LF": true, "CF": true, "RF": true, "DH": true,
	"SP": true, "RP": true, "P": true,
}

// Player is a candidate under consideration for a weekly recommendation.
// It combines Yahoo Fantasy roster data with MLB Stats API identifiers and
// lives only for the duration of one analysis run.
type Player struct {
	Name              string       `json:"name"`
	YahooPlayerID     string       `json:"yahoo_player_id,omitempty"`
	MLBPlayerID       int          `json:"mlb_player_id,omitempty"`
	EligiblePositions []string     `json:"eligible_positions"`
	PercentOwned      float64      `json:"percent_owned"`
	MLBTeamName       string       `json:"mlb_team_name,omitempty"`
	Source            PlayerSource `json:"source"`
	BaseballSavantURL string       `json:"baseball_savant_url,omitempty"`
}

// NormalizePositions upper-cases the position codes and drops anything
// outside the known set. Malformed upstream entries are coerced here, at the
// boundary, so matching logic never sees them.
func (p *Player) NormalizePositions() {
	normalized := p.EligiblePositions[:0]
	for _, pos := range p.EligiblePositions {
		pos = strings.ToUpper(strings.TrimSpace(pos))
		if validPositions[pos] {
			normalized = append(normalized, pos)
		}
	}
	p.EligiblePositions = normalized
}

// IsPitcher reports whether any eligible position is a pitching slot.
func (p *Player) IsPitcher() bool {
	for _, pos := range p.EligiblePositions {
		if PitcherPositions[pos] {
			return true
		}
	}
	return false
}

// DisplayPositions renders the eligible positions for display, hiding the
// generic "P" slot, e.g. "SP/RP".
func (p *Player) DisplayPositions() string {
	var shown []string
	for _, pos := range p.EligiblePositions {
		if pos != "P" {
			shown = append(shown, pos)
		}
	}
	if len(shown) == 0 {
		return "N/A"
	}
	return strings.Join(shown, "/")
}

// OwnershipDisplay renders the ownership fraction, e.g. "42.5%".
func (p *Player) OwnershipDisplay() string {
	return fmt.Sprintf("%.1f%%", p.PercentOwned)
}
