package controllers

import (
	"Backend-FieldSurvey-001/src/middleware"
	"Backend-FieldSurvey-001/src/services/analytics"
	"Backend-FieldSurvey-001/src/services/visibility"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetSurveyAnalytics godoc
// @Summary      Get analytics for one survey
// @Description  Overview, NPS/CSAT/CES blocks, geographic coverage and optional time series
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        id        path   string true  "Survey ID"
// @Param        period    query  string false "Time series period (day, week, month, year)"
// @Param        agentId   query  string false "Filter by agent (admin/supervisor only)"
// @Param        startDate query  string false "Filter from date (YYYY-MM-DD)"
// @Param        endDate   query  string false "Filter to date (YYYY-MM-DD)"
// @Success      200  {object}  models.AnalyticsReport
// @Failure      404  {object}  models.ErrorResponse
// @Router       /analytics/surveys/{id} [get]
func GetSurveyAnalytics(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey ID")
	}

	params := visibility.Params{
		AgentID:   c.Query("agentId"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := analytics.GetSurveyAnalytics(ctx, id, caller, params, c.Query("period"))
	if err != nil {
		if err.Error() == "survey not found" {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(report)
}

// GetDashboard godoc
// @Summary      Get dashboard report
// @Description  Counters, trends, weekly activity and recent responses over the caller's visible surveys
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.DashboardReport
// @Failure      500  {object}  models.ErrorResponse
// @Router       /analytics/dashboard [get]
func GetDashboard(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := analytics.GetDashboard(ctx, caller)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(report)
}

// CompareSurveys godoc
// @Summary      Compare surveys side by side
// @Description  Totals, average NPS/CSAT and response rate per survey — unknown IDs are skipped
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        surveyIds query string true "Comma-separated survey IDs"
// @Success      200  {array}   models.ComparisonRow
// @Failure      400  {object}  models.ErrorResponse
// @Router       /analytics/compare [get]
func CompareSurveys(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	raw := c.Query("surveyIds")
	if raw == "" {
		return utils.HandleError(c, fiber.StatusBadRequest, "surveyIds is required")
	}

	ids := make([]primitive.ObjectID, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		oid, err := primitive.ObjectIDFromHex(part)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey ID: "+part)
		}
		ids = append(ids, oid)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := analytics.CompareSurveys(ctx, ids, caller)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}
