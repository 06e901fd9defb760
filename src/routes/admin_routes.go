package routes

import (
	"Backend-FieldSurvey-001/src/controllers"
	"Backend-FieldSurvey-001/src/middleware"
	"Backend-FieldSurvey-001/src/models"

	"github.com/gofiber/fiber/v2"
)

// adminRoutes กำหนด route สำหรับงานฝั่ง admin (jobs)
func adminRoutes(router fiber.Router) {
	admin := router.Group("/admin", middleware.AuthJWT, middleware.RequireRoles(models.RoleAdmin))

	admin.Post("/jobs/close-expired", controllers.TriggerCloseExpired)
}
