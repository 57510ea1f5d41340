package middleware

import (
	"Backend-PunchSync/src/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AuthJWT ตรวจ token ที่ session provider ภายนอกออกให้ แล้วฝัง employeeId/deviceId ลง context
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

	c.Locals("employeeId", claims.EmployeeID)
	c.Locals("deviceId", claims.DeviceID)

	return c.Next()
}
