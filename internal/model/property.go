package model

// Property is a rental listing.
type Property struct {
	ID                uint   `json:"id" gorm:"primaryKey"`
	OwnerID           uint   `json:"owner_id" gorm:"not null;index"`
	Title             string `json:"title" gorm:"not null"`
	Description       string `json:"description" gorm:"type:text"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" gorm:"column:thumbnail_photo_url;not null"`
	CoverPhotoURL     string `json:"cover_photo_url" gorm:"column:cover_photo_url;not null"`
	CostPerNight      int    `json:"cost_per_night" gorm:"not null;default:0;index"`

	ParkingSpaces     int `json:"parking_spaces" gorm:"not null;default:0"`
	NumberOfBathrooms int `json:"number_of_bathrooms" gorm:"not null;default:0"`
	NumberOfBedrooms  int `json:"number_of_bedrooms" gorm:"not null;default:0"`

	// Location
	Country  string `json:"country" gorm:"not null"`
	Street   string `json:"street" gorm:"not null"`
	City     string `json:"city" gorm:"not null;index"`
	Province string `json:"province" gorm:"not null"`
	PostCode string `json:"post_code" gorm:"not null"`

	Active bool `json:"active" gorm:"not null;default:true"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// PropertyReview is a guest's rating of a stay.
type PropertyReview struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	GuestID       uint   `json:"guest_id" gorm:"not null;index"`
	PropertyID    uint   `json:"property_id" gorm:"not null;index"`
	ReservationID uint   `json:"reservation_id" gorm:"not null;index"`
	Rating        int    `json:"rating" gorm:"not null;default:0;check:rating >= 0 AND rating <= 5"`
	Message       string `json:"message" gorm:"type:text"`

	Guest       *User        `json:"-" gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE"`
	Property    *Property    `json:"-" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Reservation *Reservation `json:"-" gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE"`
}
