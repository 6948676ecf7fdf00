package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"lightbnb_backend/internal/middleware"
	"lightbnb_backend/internal/model"
	"lightbnb_backend/internal/repository"
	"lightbnb_backend/internal/search"
)

const dateLayout = "2006-01-02"

type ReservationInput struct {
	StartDate  string `json:"start_date" form:"start_date"`
	EndDate    string `json:"end_date" form:"end_date"`
	PropertyID uint   `json:"property_id" form:"property_id"`
}

type ReservationController struct {
	reservations *repository.ReservationRepository
	properties   *repository.PropertyRepository
	log          zerolog.Logger
}

func NewReservationController(reservations *repository.ReservationRepository, properties *repository.PropertyRepository, log zerolog.Logger) *ReservationController {
	return &ReservationController{reservations: reservations, properties: properties, log: log}
}

// ListMyReservations returns the caller's past stays.
func (rc *ReservationController) ListMyReservations(c *fiber.Ctx) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	limit := search.DefaultLimit
	if raw := c.Query(search.KeyLimit); raw != "" {
		n, err := search.ParseLimit(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("limit %s", err),
			})
		}
		limit = n
	}

	reservations, err := rc.reservations.GetAllReservations(c.UserContext(), claims.UserID, limit)
	if err != nil {
		rc.log.Error().Err(err).Uint("guest_id", claims.UserID).Msg("Could not fetch reservations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch reservations",
		})
	}

	return c.JSON(fiber.Map{
		"reservations": reservations,
	})
}

// CreateReservation books a property for the caller.
func (rc *ReservationController) CreateReservation(c *fiber.Ctx) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	input := new(ReservationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	start, errStart := time.Parse(dateLayout, input.StartDate)
	end, errEnd := time.Parse(dateLayout, input.EndDate)
	if errStart != nil || errEnd != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start_date and end_date must look like 2006-01-02",
		})
	}

	if _, err := rc.properties.GetPropertyWithID(c.UserContext(), input.PropertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		rc.log.Error().Err(err).Uint("property_id", input.PropertyID).Msg("Could not fetch property")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property",
		})
	}

	reservation := model.Reservation{
		StartDate:  model.Day(start),
		EndDate:    model.Day(end),
		PropertyID: input.PropertyID,
		GuestID:    claims.UserID,
	}

	created, err := rc.reservations.AddReservation(c.UserContext(), &reservation)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidReservation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		rc.log.Error().Err(err).Uint("guest_id", claims.UserID).Msg("Could not create reservation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create reservation",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
