package routes

import (
	"Backend-FieldSurvey-001/src/controllers"
	"Backend-FieldSurvey-001/src/middleware"
	"Backend-FieldSurvey-001/src/models"

	"github.com/gofiber/fiber/v2"
)

// teamRoutes กำหนด route สำหรับ team management — เฉพาะ admin
func teamRoutes(router fiber.Router) {
	teams := router.Group("/teams", middleware.AuthJWT, middleware.RequireRoles(models.RoleAdmin))

	teams.Post("/", controllers.CreateTeam)
	teams.Get("/", controllers.GetTeams)
	teams.Post("/:id/members/:userId", controllers.AddTeamMember)
	teams.Delete("/:id/members/:userId", controllers.RemoveTeamMember)
	teams.Put("/:id/supervisor/:userId", controllers.SetTeamSupervisor)
}
