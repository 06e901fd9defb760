package routes

import (
	"Backend-FieldSurvey-001/src/controllers"
	"Backend-FieldSurvey-001/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// responseRoutes กำหนด route สำหรับ response submission/listing
func responseRoutes(router fiber.Router) {
	responses := router.Group("/responses", middleware.AuthJWT)

	responses.Post("/", controllers.SubmitResponse)
	responses.Get("/", controllers.GetResponses)
	responses.Get("/:id", controllers.GetResponseByID)
}
