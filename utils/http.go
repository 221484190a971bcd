// utils/http.go - HTTP response helpers
package utils

import (
	"github.com/gofiber/fiber/v2"
)

// Success sends a JSON success response, merging data into the envelope.
func Success(c *fiber.Ctx, data fiber.Map) error {
	response := fiber.Map{"success": true}
	for k, v := range data {
		response[k] = v
	}
	return c.JSON(response)
}

// Error sends a JSON error response with the given status.
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
