package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"lightbnb_backend/internal/middleware"
	"lightbnb_backend/internal/model"
	"lightbnb_backend/internal/repository"
	"lightbnb_backend/internal/search"
)

type PropertyInput struct {
	Title             string `json:"title" form:"title"`
	Description       string `json:"description" form:"description"`
	ThumbnailPhotoURL string `json:"thumbnail_photo_url" form:"thumbnail_photo_url"`
	CoverPhotoURL     string `json:"cover_photo_url" form:"cover_photo_url"`
	CostPerNight      int    `json:"cost_per_night" form:"cost_per_night"`

	// Location fields
	Street   string `json:"street" form:"street"`
	City     string `json:"city" form:"city"`
	Province string `json:"province" form:"province"`
	PostCode string `json:"post_code" form:"post_code"`
	Country  string `json:"country" form:"country"`

	// Features fields
	ParkingSpaces     int `json:"parking_spaces" form:"parking_spaces"`
	NumberOfBathrooms int `json:"number_of_bathrooms" form:"number_of_bathrooms"`
	NumberOfBedrooms  int `json:"number_of_bedrooms" form:"number_of_bedrooms"`
}

func (in *PropertyInput) validate() error {
	switch {
	case in.Title == "":
		return errors.New("title is required")
	case in.City == "":
		return errors.New("city is required")
	case in.CostPerNight < 0:
		return errors.New("cost_per_night must not be negative")
	case in.ParkingSpaces < 0 || in.NumberOfBathrooms < 0 || in.NumberOfBedrooms < 0:
		return errors.New("room and parking counts must not be negative")
	}
	return nil
}

type PropertyController struct {
	properties *repository.PropertyRepository
	log        zerolog.Logger
}

func NewPropertyController(properties *repository.PropertyRepository, log zerolog.Logger) *PropertyController {
	return &PropertyController{properties: properties, log: log}
}

// ListProperties searches listings using the query string as criteria.
func (pc *PropertyController) ListProperties(c *fiber.Ctx) error {
	criteria, err := search.ParseCriteria(c.Queries())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	properties, err := pc.properties.ListProperties(c.UserContext(), criteria)
	if err != nil {
		pc.log.Error().Err(err).Str("query", string(c.Request().URI().QueryString())).Msg("Property search failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(fiber.Map{
		"properties": properties,
	})
}

// CreateProperty adds a listing owned by the caller.
func (pc *PropertyController) CreateProperty(c *fiber.Ctx) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	input := new(PropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := input.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	property := model.Property{
		OwnerID:           claims.UserID,
		Title:             input.Title,
		Description:       input.Description,
		ThumbnailPhotoURL: input.ThumbnailPhotoURL,
		CoverPhotoURL:     input.CoverPhotoURL,
		CostPerNight:      input.CostPerNight,
		Street:            input.Street,
		City:              input.City,
		Province:          input.Province,
		PostCode:          input.PostCode,
		Country:           input.Country,
		ParkingSpaces:     input.ParkingSpaces,
		NumberOfBathrooms: input.NumberOfBathrooms,
		NumberOfBedrooms:  input.NumberOfBedrooms,
		Active:            true,
	}

	created, err := pc.properties.AddProperty(c.UserContext(), &property)
	if err != nil {
		pc.log.Error().Err(err).Uint("owner_id", claims.UserID).Msg("Could not create property")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
