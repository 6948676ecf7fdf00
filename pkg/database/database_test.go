package database

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lightbnb_backend/internal/model"
	"lightbnb_backend/pkg/config"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestConfigurePool(t *testing.T) {
	db := openSQLite(t)

	require.NoError(t, ConfigurePool(db, config.DatabaseConfig{MaxIdleConns: 2, MaxOpenConns: 1}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestMigrateDatabase(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, ConfigurePool(db, config.DatabaseConfig{MaxIdleConns: 1, MaxOpenConns: 1}))

	models := []interface{}{
		&model.User{},
		&model.Property{},
		&model.Reservation{},
		&model.PropertyReview{},
	}

	require.NoError(t, MigrateDatabase(db, zerolog.Nop(), models...))
	// Second run takes the AutoMigrate path.
	require.NoError(t, MigrateDatabase(db, zerolog.Nop(), models...))

	for _, m := range models {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
	assert.True(t, db.Migrator().HasColumn(&model.Property{}, "cost_per_night"))
	assert.True(t, db.Migrator().HasColumn(&model.PropertyReview{}, "rating"))
}
