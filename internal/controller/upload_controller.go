package controller

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"lightbnb_backend/internal/middleware"
	"lightbnb_backend/pkg/utils/cloudflare"
	"lightbnb_backend/pkg/utils/image"
	"lightbnb_backend/pkg/utils/validation"
)

// PhotoStore is where uploaded property photos end up.
type PhotoStore interface {
	Upload(ctx context.Context, in cloudflare.UploadPhotoInput) (cloudflare.UploadResult, error)
	Delete(ctx context.Context, url string) error
	KeyFromURL(url string) (string, bool)
}

type UploadController struct {
	photos      PhotoStore
	maxFileSize int64
	log         zerolog.Logger
}

// NewUploadController returns a controller for photo uploads. A nil store
// turns the endpoints into 503s.
func NewUploadController(photos PhotoStore, maxFileSize int64, log zerolog.Logger) *UploadController {
	return &UploadController{photos: photos, maxFileSize: maxFileSize, log: log}
}

// UploadPropertyPhoto stores a listing photo and returns its public URL for
// use as thumbnail_photo_url or cover_photo_url.
func (uc *UploadController) UploadPropertyPhoto(c *fiber.Ctx) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if uc.photos == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Photo uploads are not configured",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}
	if err := validation.ValidateImage(file, uc.maxFileSize); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not read file",
		})
	}
	defer src.Close()

	buf, contentType, err := image.ProcessImage(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := uc.photos.Upload(c.UserContext(), cloudflare.UploadPhotoInput{
		OwnerID:       claims.UserID,
		PropertyTitle: c.FormValue("title"),
		Body:          buf,
		ContentType:   contentType,
		Extension:     ".webp",
	})
	if err != nil {
		uc.log.Error().Err(err).Uint("user_id", claims.UserID).Msg("Photo upload failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload photo",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// DeletePropertyPhoto removes one of the caller's uploaded photos.
func (uc *UploadController) DeletePropertyPhoto(c *fiber.Ctx) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if uc.photos == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Photo uploads are not configured",
		})
	}

	url := c.Query("url")
	key, ok := uc.photos.KeyFromURL(url)
	if url == "" || !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url must point to an uploaded photo",
		})
	}

	if !strings.HasPrefix(key, cloudflare.OwnerPrefix(claims.UserID)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this photo",
		})
	}

	if err := uc.photos.Delete(c.UserContext(), url); err != nil {
		uc.log.Error().Err(err).Str("url", url).Msg("Photo delete failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete photo",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
