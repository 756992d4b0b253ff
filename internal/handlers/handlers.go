package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/middleware"
)

// objectID parses a route parameter into an ObjectID. A malformed id can
// never match a resource, so it maps to NotFound.
func objectID(c *fiber.Ctx, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(param))
	if err != nil {
		return primitive.NilObjectID, errs.NotFoundf("Resource not found with id of %s", c.Params(param))
	}
	return id, nil
}

// advancedResult returns the envelope built by the list middleware.
func advancedResult(c *fiber.Ctx) error {
	result, ok := c.Locals(middleware.AdvancedResultKey).(middleware.Result)
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "advanced result missing")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
