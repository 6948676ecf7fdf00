package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"lightbnb_backend/internal/model"
	"lightbnb_backend/internal/search"
)

// pastReservationsQuery lists a guest's completed stays with the property's
// average rating. $2 is today's date so the statement stays dialect neutral.
const pastReservationsQuery = `SELECT properties.*,
  reservations.id AS reservation_id,
  reservations.start_date,
  reservations.end_date,
  avg(property_reviews.rating) AS average_rating
FROM reservations
JOIN properties ON reservations.property_id = properties.id
JOIN property_reviews ON properties.id = property_reviews.property_id
WHERE reservations.guest_id = $1
  AND reservations.end_date < $2
GROUP BY properties.id, reservations.id
ORDER BY reservations.start_date
LIMIT $3`

// ReservationRecord is a past stay with the booked property's details.
type ReservationRecord struct {
	PropertyRecord
	ReservationID uint           `json:"reservation_id" gorm:"column:reservation_id"`
	StartDate     datatypes.Date `json:"start_date" gorm:"column:start_date"`
	EndDate       datatypes.Date `json:"end_date" gorm:"column:end_date"`
}

// ReservationRepository reads and writes reservations.
type ReservationRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReservationRepository returns a repository backed by db.
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db, now: time.Now}
}

// GetAllReservations returns up to limit of the guest's past reservations,
// oldest first. limit is bounded the same way as property searches.
func (r *ReservationRepository) GetAllReservations(ctx context.Context, guestID uint, limit int) ([]ReservationRecord, error) {
	limit = search.SearchCriteria{Limit: limit}.EffectiveLimit()

	records := []ReservationRecord{}
	err := r.db.WithContext(ctx).
		Raw(pastReservationsQuery, guestID, model.Day(r.now()), limit).
		Scan(&records).Error
	if err != nil {
		return nil, storeError("get reservations", err)
	}

	return records, nil
}

// AddReservation books a stay. Dates are stored as UTC calendar days.
func (r *ReservationRepository) AddReservation(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	res.StartDate = model.Day(time.Time(res.StartDate))
	res.EndDate = model.Day(time.Time(res.EndDate))
	if !time.Time(res.EndDate).After(time.Time(res.StartDate)) {
		return nil, ErrInvalidReservation
	}

	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		return nil, storeError("add reservation", err)
	}
	return res, nil
}
