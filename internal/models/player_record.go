package models

import (
	"time"

	"gorm.io/datatypes"
)

// PlayerIDRecord persists a resolved Yahoo-name-to-MLBAM-ID mapping so
// repeat runs skip the MLB people search. The slug of the name is the
// lookup key.
type PlayerIDRecord struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	NameSlug    string         `gorm:"uniqueIndex;size:128" json:"name_slug"`
	DisplayName string         `gorm:"size:128" json:"display_name"`
	MLBPlayerID int            `gorm:"index" json:"mlb_player_id"`
	Positions   datatypes.JSON `json:"positions"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (PlayerIDRecord) TableName() string {
	return "player_id_cache"
}
