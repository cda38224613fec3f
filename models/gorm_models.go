// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormGameRecord is the GORM mapping of GameRecord. Winners and Totals are
// stored as jsonb.
type GormGameRecord struct {
	gorm.Model
	RoomCode string `gorm:"index;not null"`
	GameType string `gorm:"not null"`
	Rounds   int    `gorm:"default:0"`
	Winners  []byte `gorm:"type:jsonb"`
	Totals   []byte `gorm:"type:jsonb"`
}
