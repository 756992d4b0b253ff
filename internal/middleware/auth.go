package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/maariam000/DevCamper/internal/authz"
	"github.com/maariam000/DevCamper/internal/errs"
)

// Protect validates the bearer token and stores the authenticated principal
// in the request locals for downstream handlers.
func Protect(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get("Authorization")
		if tokenString == "" {
			return errs.Unauthorized("Not authorized to access this route")
		}

		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			return errs.Unauthorized("Not authorized to access this route")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return errs.Unauthorized("Not authorized to access this route")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return errs.Unauthorized("Not authorized to access this route")
		}

		userID, userExists := claims["user_id"].(string)
		role, roleExists := claims["role"].(string)
		if !userExists || !roleExists {
			return errs.Unauthorized("Not authorized to access this route")
		}

		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return errs.Unauthorized("Not authorized to access this route")
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		c.Locals("principal", authz.Principal{ID: oid, Role: role})

		return c.Next()
	}
}

// Authorize restricts a route to the given roles. Runs after Protect.
func Authorize(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return errs.Unauthorized("Not authorized to access this route")
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return errs.Forbiddenf("User role %s is not authorized to access this route", role)
	}
}

// PrincipalFrom returns the principal stored by Protect.
func PrincipalFrom(c *fiber.Ctx) authz.Principal {
	p, _ := c.Locals("principal").(authz.Principal)
	return p
}
