package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/authz"
	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/middleware"
	"github.com/maariam000/DevCamper/internal/models"
	"github.com/maariam000/DevCamper/internal/services"
)

type ReviewService interface {
	ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Review, error)
	Get(ctx context.Context, id primitive.ObjectID) (*services.ReviewDetail, error)
	Create(ctx context.Context, actor authz.Principal, bootcampID primitive.ObjectID, in services.CreateReviewInput) (*models.Review, error)
	Update(ctx context.Context, actor authz.Principal, id primitive.ObjectID, in services.UpdateReviewInput) (*models.Review, error)
	Delete(ctx context.Context, actor authz.Principal, id primitive.ObjectID) error
}

type ReviewHandler struct {
	svc ReviewService
}

func NewReviewHandler(svc ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	if c.Params("bootcampId") == "" {
		return advancedResult(c)
	}

	bootcampID, err := objectID(c, "bootcampId")
	if err != nil {
		return err
	}

	reviews, err := h.svc.ListByBootcamp(c.UserContext(), bootcampID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(reviews),
		"data":    reviews,
	})
}

func (h *ReviewHandler) GetByID(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	review, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": review})
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	bootcampID, err := objectID(c, "bootcampId")
	if err != nil {
		return err
	}

	var in services.CreateReviewInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	review, err := h.svc.Create(c.UserContext(), middleware.PrincipalFrom(c), bootcampID, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": review})
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	var in services.UpdateReviewInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	review, err := h.svc.Update(c.UserContext(), middleware.PrincipalFrom(c), id, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": review})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{},
		"msg":     "Review Deleted!",
	})
}
