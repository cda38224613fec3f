// models/models.go
package models

import (
	"time"
)

// GameRecord is one finished game as archived by the host device. This is
// client-local operator data; the authoritative store stays on the server.
type GameRecord struct {
	RoomCode  string         `json:"room_code"`
	GameType  string         `json:"game_type"`
	Rounds    int            `json:"rounds"`
	Winners   []PlayerResult `json:"winners"`
	Totals    []PlayerResult `json:"totals"`
	CreatedAt time.Time      `json:"created_at"`
}

// PlayerResult pairs a player with a final score. Player ids are connection
// ids and only meaningful within the recorded game.
type PlayerResult struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name,omitempty"`
	Score    int    `json:"score"`
}
