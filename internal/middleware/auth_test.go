package middleware_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/middleware"
	"github.com/maariam000/DevCamper/internal/models"
	"github.com/maariam000/DevCamper/internal/services"
)

const testSecret = "testing-secret"

func newProtectedApp(roles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})

	chain := []fiber.Handler{middleware.Protect(testSecret)}
	if len(roles) > 0 {
		chain = append(chain, middleware.Authorize(roles...))
	}
	chain = append(chain, func(c *fiber.Ctx) error {
		p := middleware.PrincipalFrom(c)
		return c.JSON(fiber.Map{"success": true, "id": p.ID.Hex(), "role": p.Role})
	})

	app.Get("/private", chain...)
	return app
}

func TestProtectRejectsMissingToken(t *testing.T) {
	app := newProtectedApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authorized to access this route", body["error"])
}

func TestProtectRejectsGarbageToken(t *testing.T) {
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectStoresPrincipal(t *testing.T) {
	app := newProtectedApp()
	userID := primitive.NewObjectID()

	token, err := services.GenerateJWT(testSecret, userID.Hex(), models.RolePublisher, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userID.Hex(), body["id"])
	assert.Equal(t, models.RolePublisher, body["role"])
}

func TestAuthorizeBlocksWrongRole(t *testing.T) {
	app := newProtectedApp(models.RolePublisher, models.RoleAdmin)
	userID := primitive.NewObjectID()

	token, err := services.GenerateJWT(testSecret, userID.Hex(), models.RoleUser, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "User role user is not authorized to access this route", body["error"])
}

func TestAuthorizeAllowsListedRole(t *testing.T) {
	app := newProtectedApp(models.RolePublisher, models.RoleAdmin)
	userID := primitive.NewObjectID()

	token, err := services.GenerateJWT(testSecret, userID.Hex(), models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
