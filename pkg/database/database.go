package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/sefazor/eventrsvp-backend/pkg/bcrypt"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database named by driver and dsn.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres, "":
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.RSVP{},
	)
}

type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
// Admin rights cannot be granted through the API, so this is the only way in.
func SeedAdmin(ctx context.Context, db *gorm.DB, seed AdminSeed, log *zap.Logger) error {
	if seed.Email == "" || seed.Password == "" {
		return nil
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", seed.Email).First(&existing).Error
	if err == nil {
		if !existing.IsAdmin {
			log.Warn("bootstrap admin email belongs to a non-admin user", zap.Uint("user_id", existing.ID))
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.HashPassword(seed.Password)
	if err != nil {
		return err
	}

	username := seed.Username
	if username == "" {
		username = "admin"
	}
	admin := &models.User{
		Username: username,
		Email:    seed.Email,
		Password: hash,
		IsAdmin:  true,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Info("bootstrap admin created", zap.Uint("user_id", admin.ID), zap.String("email", admin.Email))
	return nil
}
