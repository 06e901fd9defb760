package middleware

import (
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid Authorization header"})
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token", "detail": err.Error()})
	}

	c.Locals("userId", claims.UserID)
	c.Locals("email", claims.Email)
	c.Locals("role", claims.Role)

	return c.Next()
}

// RequireRoles จำกัด endpoint ให้เฉพาะ role ที่กำหนด — ต้องเรียกหลัง AuthJWT
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}

// CallerFromLocals สร้าง models.Caller จากค่าที่ AuthJWT ใส่ไว้ใน Locals
func CallerFromLocals(c *fiber.Ctx) (models.Caller, error) {
	userID, _ := c.Locals("userId").(string)
	role, _ := c.Locals("role").(string)

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Caller{}, err
	}

	return models.Caller{ID: oid, Role: role}, nil
}
