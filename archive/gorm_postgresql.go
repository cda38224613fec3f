// archive/gorm_postgresql.go
package archive

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/generalChaos/partyroom/models"
)

// GormPostgreSQL is the GORM implementation of the archive.
type GormPostgreSQL struct {
	db *gorm.DB
}

func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormGameRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	winners, err := json.Marshal(record.Winners)
	if err != nil {
		return err
	}
	totals, err := json.Marshal(record.Totals)
	if err != nil {
		return err
	}

	row := models.GormGameRecord{
		RoomCode: record.RoomCode,
		GameType: record.GameType,
		Rounds:   record.Rounds,
		Winners:  winners,
		Totals:   totals,
	}
	row.CreatedAt = record.CreatedAt

	return g.db.Create(&row).Error
}

func (g *GormPostgreSQL) LoadGameRecords(roomCode string, limit int) ([]models.GameRecord, error) {
	var rows []models.GormGameRecord
	err := g.db.Where("room_code = ?", roomCode).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]models.GameRecord, 0, len(rows))
	for _, row := range rows {
		r := models.GameRecord{
			RoomCode:  row.RoomCode,
			GameType:  row.GameType,
			Rounds:    row.Rounds,
			CreatedAt: row.CreatedAt,
		}
		if err := json.Unmarshal(row.Winners, &r.Winners); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(row.Totals, &r.Totals); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
