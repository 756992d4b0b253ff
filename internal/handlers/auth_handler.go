package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/errs"
	"github.com/maariam000/DevCamper/internal/middleware"
	"github.com/maariam000/DevCamper/internal/models"
	"github.com/maariam000/DevCamper/internal/services"
)

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateDetails(ctx context.Context, id primitive.ObjectID, in services.UpdateDetailsInput) (*models.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, current, newPassword string) (string, error)
	ForgotPassword(ctx context.Context, email, resetBaseURL string) error
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	_, token, err := h.svc.Register(c.UserContext(), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "token": token})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	token, err := h.svc.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "token": token})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.svc.GetUser(c.UserContext(), middleware.PrincipalFrom(c).ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": user})
}

func (h *AuthHandler) UpdateDetails(c *fiber.Ctx) error {
	var in services.UpdateDetailsInput
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	user, err := h.svc.UpdateDetails(c.UserContext(), middleware.PrincipalFrom(c).ID, in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": user})
}

func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var in struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	token, err := h.svc.UpdatePassword(c.UserContext(), middleware.PrincipalFrom(c).ID, in.CurrentPassword, in.NewPassword)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "token": token})
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	resetBaseURL := c.BaseURL() + "/api/v1/auth/resetpassword"
	if err := h.svc.ForgotPassword(c.UserContext(), in.Email, resetBaseURL); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": "Email sent"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return errs.Validationf("Invalid request body")
	}

	token, err := h.svc.ResetPassword(c.UserContext(), c.Params("resettoken"), in.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "token": token})
}

// Logout exists for API symmetry; bearer tokens are discarded client-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{}})
}
