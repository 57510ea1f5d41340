package routes

import (
	"Backend-PunchSync/src/controllers"
	"Backend-PunchSync/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// syncRoutes กำหนดเส้นทางสำหรับ Sync API
func syncRoutes(router fiber.Router, ctl *controllers.SyncController) {
	syncRoutes := router.Group("/sync")
	syncRoutes.Use(middleware.AuthJWT)

	syncRoutes.Post("/trigger", ctl.Trigger)
	syncRoutes.Get("/status", ctl.Status)
}
