// archive/postgresql.go
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/generalChaos/partyroom/models"
)

// PostgreSQL is the plain database/sql implementation of the archive.
type PostgreSQL struct {
	db *sql.DB
}

func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_code TEXT NOT NULL,
            game_type TEXT NOT NULL,
            rounds INT NOT NULL DEFAULT 0,
            winners JSONB NOT NULL,
            totals JSONB NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_game_records_room_code ON game_records (room_code)`)
	return err
}

func (p *PostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	winners, err := json.Marshal(record.Winners)
	if err != nil {
		return err
	}
	totals, err := json.Marshal(record.Totals)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(`
        INSERT INTO game_records (room_code, game_type, rounds, winners, totals, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		record.RoomCode, record.GameType, record.Rounds, winners, totals, record.CreatedAt)
	return err
}

func (p *PostgreSQL) LoadGameRecords(roomCode string, limit int) ([]models.GameRecord, error) {
	rows, err := p.db.Query(`
        SELECT room_code, game_type, rounds, winners, totals, created_at
        FROM game_records
        WHERE room_code = $1
        ORDER BY created_at DESC
        LIMIT $2`, roomCode, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.GameRecord
	for rows.Next() {
		var r models.GameRecord
		var winners, totals []byte
		if err := rows.Scan(&r.RoomCode, &r.GameType, &r.Rounds, &winners, &totals, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(winners, &r.Winners); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(totals, &r.Totals); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
