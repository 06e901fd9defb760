package routes

import (
	"Backend-FieldSurvey-001/src/controllers"
	"Backend-FieldSurvey-001/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// analyticsRoutes กำหนด route สำหรับ analytics/dashboard
func analyticsRoutes(router fiber.Router) {
	analytics := router.Group("/analytics", middleware.AuthJWT)

	analytics.Get("/dashboard", controllers.GetDashboard)
	analytics.Get("/compare", controllers.CompareSurveys)
	analytics.Get("/surveys/:id", controllers.GetSurveyAnalytics)
}
