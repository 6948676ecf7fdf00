package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"lightbnb_backend/internal/middleware"
	"lightbnb_backend/internal/model"
	"lightbnb_backend/internal/repository"
	"lightbnb_backend/pkg/utils/jwt"
)

type RegisterInput struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AuthController struct {
	users  *repository.UserRepository
	issuer *jwt.Issuer
	log    zerolog.Logger
}

func NewAuthController(users *repository.UserRepository, issuer *jwt.Issuer, log zerolog.Logger) *AuthController {
	return &AuthController{users: users, issuer: issuer, log: log}
}

// Register creates an account and signs the new user in.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	input.Email = strings.TrimSpace(input.Email)
	if input.Name == "" || input.Email == "" || len(input.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name, email and a password of at least 6 characters are required",
		})
	}

	_, err := ac.users.GetUserWithEmail(c.UserContext(), input.Email)
	switch {
	case err == nil:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Email already exists",
		})
	case !errors.Is(err, repository.ErrNotFound):
		ac.log.Error().Err(err).Msg("Could not look up user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create user",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	user, err := ac.users.AddUser(c.UserContext(), &model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
	})
	if err != nil {
		ac.log.Error().Err(err).Msg("Could not create user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create user",
		})
	}

	token, err := ac.issuer.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user.GetPublicProfile(),
	})
}

// Login exchanges credentials for a token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	user, err := ac.users.GetUserWithEmail(c.UserContext(), strings.TrimSpace(input.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			ac.log.Error().Err(err).Msg("Could not look up user")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not sign in",
			})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := ac.issuer.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.GetPublicProfile(),
	})
}

// GetMe returns the signed-in user.
func (ac *AuthController) GetMe(c *fiber.Ctx) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	user, err := ac.users.GetUserWithID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		ac.log.Error().Err(err).Uint("user_id", claims.UserID).Msg("Could not fetch user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch user",
		})
	}

	return c.JSON(fiber.Map{
		"user": user.GetPublicProfile(),
	})
}
