package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Controllers groups the handlers served by the API.
type Controllers struct {
	Auth         *AuthController
	Properties   *PropertyController
	Reservations *ReservationController
	Uploads      *UploadController
}

// NewApp returns a fiber app that renders unhandled errors as JSON. Panics
// in handlers become 500 responses.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})
	app.Use(recover.New())

	return app
}

// SetupRoutes mounts every handler. auth guards the routes that need a
// signed-in user.
func SetupRoutes(app *fiber.App, ctrl Controllers, auth fiber.Handler) {
	// User routes
	users := app.Group("/users")
	users.Post("/", ctrl.Auth.Register)
	users.Post("/login", ctrl.Auth.Login)
	users.Get("/me", auth, ctrl.Auth.GetMe)

	api := app.Group("/api")

	// Property routes
	properties := api.Group("/properties")
	properties.Get("/", ctrl.Properties.ListProperties)
	properties.Post("/", auth, ctrl.Properties.CreateProperty)
	properties.Post("/photos", auth, ctrl.Uploads.UploadPropertyPhoto)
	properties.Delete("/photos", auth, ctrl.Uploads.DeletePropertyPhoto)

	// Reservation routes
	reservations := api.Group("/reservations", auth)
	reservations.Get("/", ctrl.Reservations.ListMyReservations)
	reservations.Post("/", ctrl.Reservations.CreateReservation)
}
