package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect ouvre la connexion GORM vers la base Postgres de Supabase
func Connect(dsn string, debug bool) error {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // le pooler Supabase ne supporte pas les prepared statements
	}), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return fmt.Errorf("connexion à Supabase: %w", err)
	}

	DB = db
	return nil
}
