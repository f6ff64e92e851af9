// Package db opens the gorm database handle for the service.
package db

import (
	"log"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/platform/config"
)

// Open connects to MySQL using the supplied configuration, retrying until
// the database accepts connections or the deadline passes. The schema is
// assumed to exist; AutoMigrate runs only when cfg.RunMigrations is set.
func Open(cfg config.DBConfig) *gorm.DB {
	dsn := cfg.DSN()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gmysql.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&entity.User{},
			&entity.Location{},
			&entity.Credential{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
