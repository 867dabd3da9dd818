package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"examportal/api"
	"examportal/middleware"

	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 * 1024 * 1024

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true, ".webp": true,
}

// UploadImage validates the file locally and only then forwards it to the
// backend, so an oversized or wrong-type file never leaves the client.
func UploadImage(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file selected"})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select a valid image file (JPG, PNG, GIF, BMP, WebP)"})
	}
	if fileHeader.Size > maxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File size must be less than 5MB"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read uploaded file"})
	}
	defer file.Close()

	uploaded, err := api.UploadImage(c.UserContext(), sess.Token, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": backendDetail(err, "Failed to upload image")})
	}

	// The backend returns a relative URL; questions store the absolute one.
	return c.JSON(fiber.Map{
		"url":      api.BaseURL() + uploaded.URL,
		"filename": uploaded.Filename,
	})
}

func DeleteImage(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	filename := c.Params("filename")

	if err := api.DeleteImage(c.UserContext(), sess.Token, filename); err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return err
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": backendDetail(err, "Failed to delete image")})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
