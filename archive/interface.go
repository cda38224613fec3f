// archive/interface.go
package archive

import (
	"fmt"

	"github.com/generalChaos/partyroom/models"
)

// Database is the host device's local archive of finished games.
type Database interface {
	SaveGameRecord(record *models.GameRecord) error
	LoadGameRecords(roomCode string, limit int) ([]models.GameRecord, error)
	Close() error
}

var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
