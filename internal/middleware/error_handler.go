package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maariam000/DevCamper/internal/errs"
)

// ErrorHandler is the single formatting boundary for every error returned by
// a handler or middleware. Handlers never write error bodies themselves.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *errs.Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(fiber.Map{
			"success": false,
			"error":   apiErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"success": false,
			"error":   fiberErr.Message,
		})
	}

	// unique indexes (users.email, one review per user per bootcamp) are the
	// last line of defense behind the service-level pre-checks
	if mongo.IsDuplicateKeyError(err) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Duplicate field value entered",
		})
	}

	logrus.WithFields(logrus.Fields{
		"request_id": c.Locals("request_id"),
		"path":       c.Path(),
	}).WithError(err).Error("unhandled error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Server Error",
	})
}
