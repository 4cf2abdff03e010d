package handlers

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/supportstack/helpdesk-service/pkg/util/errorutil"
)

// respond writes the standard envelope: payload data plus an optional
// transient message, the JSON stand-in for the web flash message.
func respond(c *fiber.Ctx, status int, data any, message string, category apperrors.MessageCategory) error {
	body := fiber.Map{"data": data}
	if message != "" {
		body["message"] = fiber.Map{
			"text":     message,
			"category": category,
		}
	}
	return c.Status(status).JSON(body)
}
