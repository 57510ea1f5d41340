package routes

import (
	"Backend-PunchSync/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App, att *controllers.AttendanceController, sync *controllers.SyncController) {
	api := app.Group("/api/v1")
	attendanceRoutes(api, att)
	syncRoutes(api, sync)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
