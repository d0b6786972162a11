package db

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/healthify-app/healthify-api/internal/config"
	"github.com/healthify-app/healthify-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.AuditLog{},
	)
}

// constraint name -> offending field, for 400 responses that name it
var constraintFields = map[string]string{
	"idx_users_email":            "email",
	"idx_users_phone":            "phone",
	"idx_doctors_license_number": "license_number",
}

// ConflictField maps a write error to the unique field it violated.
// Empty string when the error is not a duplicate-key violation.
func ConflictField(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if f, ok := constraintFields[pgErr.ConstraintName]; ok {
			return f
		}
		return "record"
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		for name, f := range constraintFields {
			if strings.Contains(err.Error(), name) {
				return f
			}
		}
		return "record"
	}

	return ""
}
