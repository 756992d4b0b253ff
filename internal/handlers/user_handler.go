package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/models"
	"github.com/maariam000/DevCamper/internal/services"
)

type UserService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, in services.CreateUserInput) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, in services.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserHandler backs the admin-only user management routes.
type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	return advancedResult(c)
}

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": user})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in services.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	user, err := h.svc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	var in services.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	user, err := h.svc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
		"msg":     "User Deleted!",
	})
}
