package database_test

import (
	"context"
	"testing"

	"github.com/sefazor/eventrsvp-backend/internal/models"
	"github.com/sefazor/eventrsvp-backend/internal/testutil"
	"github.com/sefazor/eventrsvp-backend/pkg/bcrypt"
	"github.com/sefazor/eventrsvp-backend/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := database.Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestSeedAdmin(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	seed := database.AdminSeed{Email: "admin@x.com", Password: "admin123"}

	require.NoError(t, database.SeedAdmin(ctx, db, seed, zap.NewNop()))
	require.NoError(t, database.SeedAdmin(ctx, db, seed, zap.NewNop()))

	var admins []models.User
	require.NoError(t, db.Where("email = ?", "admin@x.com").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsAdmin)
	assert.Equal(t, "admin", admins[0].Username)
	assert.NoError(t, bcrypt.ComparePassword(admins[0].Password, "admin123"))
}

func TestSeedAdminDisabled(t *testing.T) {
	db := testutil.NewTestDB(t)

	require.NoError(t, database.SeedAdmin(context.Background(), db, database.AdminSeed{}, zap.NewNop()))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUniqueEmailIndex(t *testing.T) {
	db := testutil.NewTestDB(t)

	require.NoError(t, db.Create(&models.User{Username: "a", Email: "dup@x.com", Password: "h"}).Error)
	err := db.Create(&models.User{Username: "b", Email: "dup@x.com", Password: "h"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
