package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lightbnb_backend/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Property{},
		&model.Reservation{},
		&model.PropertyReview{},
	))

	return db
}

type fixture struct {
	owner      model.User
	otherOwner model.User
	guest      model.User
	properties map[string]*model.Property
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedFixture creates four properties:
//
//	vancouver-loft  owner  cost 150  ratings 5,4 (avg 4.5)
//	vancouver-room  owner  cost 60   ratings 2   (avg 2.0)
//	kelowna-cabin   other  cost 220  ratings 4   (avg 4.0)
//	victoria-suite  other  cost 95   no reviews
func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()

	f := &fixture{
		owner:      model.User{Name: "Olive Owner", Email: "olive@example.com", Password: "x"},
		otherOwner: model.User{Name: "Omar Other", Email: "omar@example.com", Password: "x"},
		guest:      model.User{Name: "Gail Guest", Email: "gail@example.com", Password: "x"},
		properties: map[string]*model.Property{},
	}
	require.NoError(t, db.Create(&f.owner).Error)
	require.NoError(t, db.Create(&f.otherOwner).Error)
	require.NoError(t, db.Create(&f.guest).Error)

	add := func(key string, ownerID uint, city string, cost int) {
		p := &model.Property{
			OwnerID:           ownerID,
			Title:             key,
			ThumbnailPhotoURL: "https://cdn.example.com/" + key + "-thumb.webp",
			CoverPhotoURL:     "https://cdn.example.com/" + key + "-cover.webp",
			CostPerNight:      cost,
			Country:           "Canada",
			Street:            "1 Main St",
			City:              city,
			Province:          "BC",
			PostCode:          "V0V0V0",
		}
		require.NoError(t, db.Create(p).Error)
		f.properties[key] = p
	}
	add("vancouver-loft", f.owner.ID, "Vancouver", 150)
	add("vancouver-room", f.owner.ID, "North Vancouver", 60)
	add("kelowna-cabin", f.otherOwner.ID, "Kelowna", 220)
	add("victoria-suite", f.otherOwner.ID, "Victoria", 95)

	review := func(key string, rating int, start time.Time) {
		p := f.properties[key]
		res := &model.Reservation{
			PropertyID: p.ID,
			GuestID:    f.guest.ID,
			StartDate:  model.Day(start),
			EndDate:    model.Day(start.AddDate(0, 0, 3)),
		}
		require.NoError(t, db.Create(res).Error)
		require.NoError(t, db.Create(&model.PropertyReview{
			GuestID:       f.guest.ID,
			PropertyID:    p.ID,
			ReservationID: res.ID,
			Rating:        rating,
		}).Error)
	}
	review("vancouver-loft", 5, date(2024, time.January, 10))
	review("vancouver-loft", 4, date(2024, time.March, 2))
	review("vancouver-room", 2, date(2024, time.February, 14))
	review("kelowna-cabin", 4, date(2024, time.May, 20))

	return f
}
