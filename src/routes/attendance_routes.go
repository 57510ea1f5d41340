package routes

import (
	"Backend-PunchSync/src/controllers"
	"Backend-PunchSync/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// attendanceRoutes กำหนดเส้นทางสำหรับ Attendance API
func attendanceRoutes(router fiber.Router, ctl *controllers.AttendanceController) {
	attendanceRoutes := router.Group("/attendance")
	attendanceRoutes.Use(middleware.AuthJWT)

	attendanceRoutes.Post("/punch", ctl.Punch)
	attendanceRoutes.Get("/status", ctl.Status)
	attendanceRoutes.Get("/unsynced", ctl.UnsyncedCount)
}
