package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightbnb_backend/internal/model"
)

func TestReservationRepository_GetAllReservations(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	repo := NewReservationRepository(db)
	repo.now = func() time.Time { return date(2024, time.April, 1) }

	records, err := repo.GetAllReservations(context.Background(), f.guest.ID, 0)
	require.NoError(t, err)

	// The May stay in Kelowna has not ended yet.
	require.Len(t, records, 3)
	assert.Equal(t, "vancouver-loft", records[0].Title)
	assert.Equal(t, "vancouver-room", records[1].Title)
	assert.Equal(t, "vancouver-loft", records[2].Title)

	assert.Equal(t, date(2024, time.January, 10), time.Time(records[0].StartDate).UTC())
	assert.Equal(t, date(2024, time.January, 13), time.Time(records[0].EndDate).UTC())
	assert.NotZero(t, records[0].ReservationID)
	assert.NotEqual(t, records[0].ReservationID, records[2].ReservationID)

	require.NotNil(t, records[0].AverageRating)
	assert.InDelta(t, 4.5, *records[0].AverageRating, 0.0001)
}

func TestReservationRepository_GetAllReservations_Limit(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	repo := NewReservationRepository(db)
	repo.now = func() time.Time { return date(2025, time.January, 1) }

	records, err := repo.GetAllReservations(context.Background(), f.guest.ID, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "vancouver-loft", records[0].Title)
	assert.Equal(t, "vancouver-room", records[1].Title)
}

func TestReservationRepository_NoReservations(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	repo := NewReservationRepository(db)

	records, err := repo.GetAllReservations(context.Background(), f.owner.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReservationRepository_AddReservation(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	repo := NewReservationRepository(db)

	res, err := repo.AddReservation(context.Background(), &model.Reservation{
		PropertyID: f.properties["victoria-suite"].ID,
		GuestID:    f.guest.ID,
		StartDate:  model.Day(time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC)),
		EndDate:    model.Day(date(2024, time.June, 4)),
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Equal(t, 3, res.Nights())

	var stored model.Reservation
	require.NoError(t, db.First(&stored, res.ID).Error)
	assert.Equal(t, f.guest.ID, stored.GuestID)
}

func TestReservationRepository_AddReservation_InvalidDates(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	repo := NewReservationRepository(db)

	_, err := repo.AddReservation(context.Background(), &model.Reservation{
		PropertyID: f.properties["victoria-suite"].ID,
		GuestID:    f.guest.ID,
		StartDate:  model.Day(date(2024, time.June, 4)),
		EndDate:    model.Day(date(2024, time.June, 4)),
	})
	assert.ErrorIs(t, err, ErrInvalidReservation)
}
