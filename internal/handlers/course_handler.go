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

type CourseService interface {
	ListByBootcamp(ctx context.Context, bootcampID primitive.ObjectID) ([]models.Course, error)
	Get(ctx context.Context, id primitive.ObjectID) (*services.CourseDetail, error)
	Create(ctx context.Context, actor authz.Principal, bootcampID primitive.ObjectID, in services.CreateCourseInput) (*models.Course, error)
	Update(ctx context.Context, actor authz.Principal, id primitive.ObjectID, in services.UpdateCourseInput) (*models.Course, error)
	Delete(ctx context.Context, actor authz.Principal, id primitive.ObjectID) error
}

type CourseHandler struct {
	svc CourseService
}

func NewCourseHandler(svc CourseService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

// List serves both the top-level listing (advanced result) and the nested
// flat listing under a bootcamp.
func (h *CourseHandler) List(c *fiber.Ctx) error {
	if c.Params("bootcampId") == "" {
		return advancedResult(c)
	}

	bootcampID, err := objectID(c, "bootcampId")
	if err != nil {
		return err
	}

	courses, err := h.svc.ListByBootcamp(c.UserContext(), bootcampID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(courses),
		"data":    courses,
	})
}

func (h *CourseHandler) GetByID(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	course, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": course})
}

func (h *CourseHandler) Create(c *fiber.Ctx) error {
	bootcampID, err := objectID(c, "bootcampId")
	if err != nil {
		return err
	}

	var in services.CreateCourseInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	course, err := h.svc.Create(c.UserContext(), middleware.PrincipalFrom(c), bootcampID, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": course})
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	var in services.UpdateCourseInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	course, err := h.svc.Update(c.UserContext(), middleware.PrincipalFrom(c), id, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": course})
}

func (h *CourseHandler) Delete(c *fiber.Ctx) error {
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
		"msg":     "Course Deleted!",
	})
}
