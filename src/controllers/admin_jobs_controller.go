package controllers

import (
	"Backend-FieldSurvey-001/src/jobs"
	"Backend-FieldSurvey-001/src/services/surveys"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// TriggerCloseExpired godoc
// @Summary      Run the expiry sweep now
// @Description  Close every active survey whose end date has passed. Runs inline when Redis is not configured, otherwise enqueues the sweep task.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        inline query bool false "Run inline instead of enqueueing" default(false)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  models.ErrorResponse
// @Router       /admin/jobs/close-expired [post]
func TriggerCloseExpired(c *fiber.Ctx) error {
	if c.Query("inline") == "true" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		closed := surveys.CloseExpiredSurveys(ctx)
		return c.JSON(fiber.Map{
			"message": "Expiry sweep finished",
			"closed":  closed,
		})
	}

	if err := jobs.EnqueueCloseExpiredSweep(); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to enqueue sweep: "+err.Error())
	}
	return c.JSON(fiber.Map{"message": "Expiry sweep enqueued"})
}
