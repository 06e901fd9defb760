package routes

import (
	"Backend-FieldSurvey-001/src/controllers"
	"Backend-FieldSurvey-001/src/middleware"
	"Backend-FieldSurvey-001/src/models"

	"github.com/gofiber/fiber/v2"
)

// authRoutes กำหนด route สำหรับ authentication
func authRoutes(router fiber.Router) {
	auth := router.Group("/auth")

	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.Refresh)
	auth.Post("/logout", middleware.AuthJWT, controllers.Logout)
	auth.Get("/me", middleware.AuthJWT, controllers.Me)
	auth.Post("/register", middleware.AuthJWT, middleware.RequireRoles(models.RoleAdmin), controllers.Register)
}
