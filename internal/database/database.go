package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Seth7171/TaleWeaver-sub000/internal/entities"
)

// busyTimeoutMS lets writers from the tick goroutine and the HTTP handlers
// wait for each other instead of failing with SQLITE_BUSY.
const busyTimeoutMS = 5000

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens the sqlite file at dbPath and migrates the page list and
// the settings table.
func NewDatabase(dbPath string) (*Database, error) {
	dsn := fmt.Sprintf("%s?_busy_timeout=%d", dbPath, busyTimeoutMS)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open page store %s: %w", dbPath, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&entities.PageRecord{}, &entities.Setting{}); err != nil {
		return nil, fmt.Errorf("failed to migrate page store: %w", err)
	}

	log.Printf("Page store: opened %s", dbPath)
	return &Database{DB: db}, nil
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
