package routes

import (
	"Backend-FieldSurvey-001/src/controllers"
	"Backend-FieldSurvey-001/src/middleware"
	"Backend-FieldSurvey-001/src/models"

	"github.com/gofiber/fiber/v2"
)

// surveyRoutes กำหนด route สำหรับ survey management
func surveyRoutes(router fiber.Router) {
	surveys := router.Group("/surveys", middleware.AuthJWT)

	surveys.Get("/", controllers.GetSurveys)
	surveys.Get("/:id", controllers.GetSurveyByID)

	// จัดการแบบสำรวจ — เฉพาะ admin และ supervisor
	manage := middleware.RequireRoles(models.RoleAdmin, models.RoleSupervisor)
	surveys.Post("/", manage, controllers.CreateSurvey)
	surveys.Patch("/:id/status", manage, controllers.UpdateSurveyStatus)
	surveys.Patch("/:id/extend", manage, controllers.ExtendSurvey)
	surveys.Post("/:id/assign", manage, controllers.AssignAgents)
	surveys.Delete("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeleteSurvey)
}
