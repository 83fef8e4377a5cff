// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/sefazor/eventrsvp-backend/pkg/bcrypt"
	"github.com/sefazor/eventrsvp-backend/pkg/database"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory SQLite database with the schema applied.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "_" + uuid.NewString()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := database.Open(database.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Errorf("close test database: %v", err)
		}
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts a user directly, bypassing the auth service.
func CreateUser(t *testing.T, db *gorm.DB, username, email, password string, isAdmin bool) *models.User {
	t.Helper()

	hash, err := bcrypt.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{Username: username, Email: email, Password: hash, IsAdmin: isAdmin}
	if err := db.WithContext(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// CreateEvent inserts an event directly, bypassing the event service.
func CreateEvent(t *testing.T, db *gorm.DB, createdBy uint, name string) *models.Event {
	t.Helper()

	event := &models.Event{
		Name:        name,
		Description: name + " description",
		Date:        "2026-11-20",
		Time:        "18:30",
		Location:    "Main Hall",
		CreatedBy:   createdBy,
	}
	if err := db.WithContext(context.Background()).Create(event).Error; err != nil {
		t.Fatalf("create event %s: %v", name, err)
	}
	return event
}
