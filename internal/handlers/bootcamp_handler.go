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

type BootcampService interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Bootcamp, error)
	Create(ctx context.Context, actor authz.Principal, in services.CreateBootcampInput) (*models.Bootcamp, error)
	Update(ctx context.Context, actor authz.Principal, id primitive.ObjectID, in services.UpdateBootcampInput) (*models.Bootcamp, error)
	Delete(ctx context.Context, actor authz.Principal, id primitive.ObjectID) error
	UploadPhoto(ctx context.Context, actor authz.Principal, id primitive.ObjectID, upload services.PhotoUpload) (string, error)
}

type BootcampHandler struct {
	svc BootcampService
}

func NewBootcampHandler(svc BootcampService) *BootcampHandler {
	return &BootcampHandler{svc: svc}
}

// List returns the envelope built by the advanced-result middleware.
func (h *BootcampHandler) List(c *fiber.Ctx) error {
	return advancedResult(c)
}

func (h *BootcampHandler) GetByID(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	bc, err := h.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": bc})
}

func (h *BootcampHandler) Create(c *fiber.Ctx) error {
	var in services.CreateBootcampInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	bc, err := h.svc.Create(c.UserContext(), middleware.PrincipalFrom(c), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": bc})
}

func (h *BootcampHandler) Update(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	var in services.UpdateBootcampInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	bc, err := h.svc.Update(c.UserContext(), middleware.PrincipalFrom(c), id, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": bc})
}

func (h *BootcampHandler) Delete(c *fiber.Ctx) error {
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
		"msg":     "Bootcamp Deleted!",
	})
}

// UploadPhoto stores a multipart image through the photo store and persists
// the generated filename.
func (h *BootcampHandler) UploadPhoto(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errs.Validationf("Please upload a file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errs.Uploadf("Problem with file upload")
	}
	defer file.Close()

	name, err := h.svc.UploadPhoto(c.UserContext(), middleware.PrincipalFrom(c), id, services.PhotoUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": name})
}
