package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/configs"
	"marketplace-api/responses"
)

type AuthClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// AuthMiddleware verifies the bearer token and stores the subject user id
// in Locals for the handlers. Token issuance lives elsewhere; this only
// consumes tokens.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "No auth token, access denied")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return unauthorized(c, "Invalid authorization header format")
	}

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(configs.EnvJWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return unauthorized(c, "Token verification failed, access denied")
	}

	if claims.UserID == "" {
		return unauthorized(c, "User ID not found in token")
	}

	c.Locals("userId", claims.UserID)
	return c.Next()
}

// UserID returns the authenticated user's id stored by AuthMiddleware.
func UserID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	raw, ok := c.Locals("userId").(string)
	if !ok || raw == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(responses.APIResponse{
		Status:  fiber.StatusUnauthorized,
		Message: message,
		Result:  nil,
	})
}
