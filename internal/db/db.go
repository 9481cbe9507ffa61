package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// uniqueIndexes close the check-then-insert races of lazy seeding and
// booking admission. NULL partition columns are folded to 0 so the
// no-tenant partition is deduplicated too.
var uniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_slots_partition_day_time
		ON slots (COALESCE(barbershop_id, 0), COALESCE(barber_id, 0), year, month, day, start_time)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_bookings_confirmed_slot
		ON bookings (COALESCE(barbershop_id, 0), COALESCE(barber_id, 0), year, month, day, start_time)
		WHERE status = 'confirmed'`,
}

// Migrate creates or updates the schema. It works on postgres and sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Slot{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range uniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create unique index: %w", err)
		}
	}

	return nil
}
