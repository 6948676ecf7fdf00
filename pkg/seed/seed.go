package seed

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lightbnb_backend/internal/model"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "password"

type demoProperty struct {
	owner    int
	property model.Property
	ratings  []int
}

var demoUsers = []model.User{
	{Name: "Devin Sanders", Email: "tristanjacobs@gmail.com"},
	{Name: "Suki Huang", Email: "allisonjackson@mail.com"},
	{Name: "Elliot Kim", Email: "asherpoole@gmx.com"},
}

var demoProperties = []demoProperty{
	{
		owner: 0,
		property: model.Property{
			Title:             "Speed Lamp",
			Description:       "Bright loft a short walk from the water.",
			ThumbnailPhotoURL: "https://images.pexels.com/photos/2086676/pexels-photo-2086676.jpeg?auto=compress&cs=tinysrgb&h=350",
			CoverPhotoURL:     "https://images.pexels.com/photos/2086676/pexels-photo-2086676.jpeg",
			CostPerNight:      93,
			ParkingSpaces:     6,
			NumberOfBathrooms: 4,
			NumberOfBedrooms:  8,
			Country:           "Canada",
			Street:            "536 Namsub Highway",
			City:              "Sotboske",
			Province:          "Quebec",
			PostCode:          "28142",
		},
		ratings: []int{3, 4},
	},
	{
		owner: 0,
		property: model.Property{
			Title:             "Blank Corner",
			Description:       "Quiet corner suite with a garden.",
			ThumbnailPhotoURL: "https://images.pexels.com/photos/2121121/pexels-photo-2121121.jpeg?auto=compress&cs=tinysrgb&h=350",
			CoverPhotoURL:     "https://images.pexels.com/photos/2121121/pexels-photo-2121121.jpeg",
			CostPerNight:      85,
			ParkingSpaces:     6,
			NumberOfBathrooms: 6,
			NumberOfBedrooms:  7,
			Country:           "Canada",
			Street:            "651 Nami Road",
			City:              "Bohbatev",
			Province:          "Alberta",
			PostCode:          "83680",
		},
		ratings: []int{5},
	},
	{
		owner: 1,
		property: model.Property{
			Title:             "Habit Mix",
			Description:       "Downtown condo close to everything.",
			ThumbnailPhotoURL: "https://images.pexels.com/photos/2080018/pexels-photo-2080018.jpeg?auto=compress&cs=tinysrgb&h=350",
			CoverPhotoURL:     "https://images.pexels.com/photos/2080018/pexels-photo-2080018.jpeg",
			CostPerNight:      68,
			ParkingSpaces:     0,
			NumberOfBathrooms: 5,
			NumberOfBedrooms:  6,
			Country:           "Canada",
			Street:            "1650 Hejto Center",
			City:              "Genwezuj",
			Province:          "Newfoundland And Labrador",
			PostCode:          "44583",
		},
	},
	{
		owner: 1,
		property: model.Property{
			Title:             "Headed Know",
			Description:       "Vancouver waterfront apartment.",
			ThumbnailPhotoURL: "https://images.pexels.com/photos/1029599/pexels-photo-1029599.jpeg?auto=compress&cs=tinysrgb&h=350",
			CoverPhotoURL:     "https://images.pexels.com/photos/1029599/pexels-photo-1029599.jpeg",
			CostPerNight:      182,
			ParkingSpaces:     2,
			NumberOfBathrooms: 2,
			NumberOfBedrooms:  3,
			Country:           "Canada",
			Street:            "513 Powov Grove",
			City:              "Vancouver",
			Province:          "British Columbia",
			PostCode:          "38051",
		},
		ratings: []int{4, 2},
	},
}

// Seed inserts demo users, listings, past stays and reviews. Rows that
// already exist are left alone, so running it twice is harmless.
func Seed(db *gorm.DB, log zerolog.Logger) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	users := make([]model.User, len(demoUsers))
	for i, u := range demoUsers {
		u.Password = string(hashed)
		if err := db.Where(model.User{Email: u.Email}).FirstOrCreate(&u).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		users[i] = u
	}

	// The last demo user is the guest who reviews everything.
	guest := users[len(users)-1]
	stay := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)

	for _, demo := range demoProperties {
		p := demo.property
		p.OwnerID = users[demo.owner].ID
		p.Active = true
		if err := db.Where(model.Property{OwnerID: p.OwnerID, Title: p.Title}).FirstOrCreate(&p).Error; err != nil {
			return fmt.Errorf("seed property %s: %w", p.Title, err)
		}

		for _, rating := range demo.ratings {
			res := model.Reservation{
				PropertyID: p.ID,
				GuestID:    guest.ID,
				StartDate:  model.Day(stay),
				EndDate:    model.Day(stay.AddDate(0, 0, 4)),
			}
			if err := db.Where(res).FirstOrCreate(&res).Error; err != nil {
				return fmt.Errorf("seed reservation for %s: %w", p.Title, err)
			}

			review := model.PropertyReview{
				GuestID:       guest.ID,
				PropertyID:    p.ID,
				ReservationID: res.ID,
			}
			if err := db.Where(review).Attrs(model.PropertyReview{Rating: rating, Message: "messages"}).FirstOrCreate(&review).Error; err != nil {
				return fmt.Errorf("seed review for %s: %w", p.Title, err)
			}

			stay = stay.AddDate(0, 0, 14)
		}
	}

	log.Info().Int("users", len(users)).Int("properties", len(demoProperties)).Msg("Demo data seeded")
	return nil
}
