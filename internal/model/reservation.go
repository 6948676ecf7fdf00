package model

import (
	"time"

	"gorm.io/datatypes"
)

// Reservation books a property for a guest between two dates.
type Reservation struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	StartDate  datatypes.Date `json:"start_date" gorm:"not null"`
	EndDate    datatypes.Date `json:"end_date" gorm:"not null"`
	PropertyID uint           `json:"property_id" gorm:"not null;index"`
	GuestID    uint           `json:"guest_id" gorm:"not null;index"`

	Property *Property `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Guest    *User     `json:"-" gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE"`
}

// Nights returns the length of the stay.
func (r *Reservation) Nights() int {
	return int(time.Time(r.EndDate).Sub(time.Time(r.StartDate)).Hours() / 24)
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
