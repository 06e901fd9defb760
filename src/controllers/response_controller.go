package controllers

import (
	"Backend-FieldSurvey-001/src/middleware"
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/services/responses"
	"Backend-FieldSurvey-001/src/services/visibility"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmitResponse godoc
// @Summary      Submit a survey response
// @Description  Submit answers — NPS/CSAT/CES scores are derived on create, out-of-range values are dropped
// @Tags         responses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.SubmitResponseRequest true "Response with answers"
// @Success      201  {object}  models.Response
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /responses [post]
func SubmitResponse(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	var req models.SubmitResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	// anonymous=true ใน query → ไม่ผูกผู้ตอบ (survey ต้องอนุญาต)
	respondent := &caller.ID
	if c.Query("anonymous") == "true" {
		respondent = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	response, err := responses.CreateResponse(ctx, &req, respondent)
	if err != nil {
		if err.Error() == "survey not found" {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Response submitted successfully",
		"data":    response,
	})
}

// GetResponses godoc
// @Summary      Get responses visible to the caller
// @Description  Role-scoped listing — field agents only ever see their own responses
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        page      query  int     false  "Page number" default(1)
// @Param        limit     query  int     false  "Number of items per page" default(10)
// @Param        surveyId  query  string  false  "Filter by survey"
// @Param        agentId   query  string  false  "Filter by agent (admin/supervisor only)"
// @Param        startDate query  string  false  "Filter from date (YYYY-MM-DD)"
// @Param        endDate   query  string  false  "Filter to date (YYYY-MM-DD)"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /responses [get]
func GetResponses(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	page := models.DefaultPagination()
	page.Page, _ = strconv.Atoi(c.Query("page", strconv.Itoa(page.Page)))
	page.Limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(page.Limit)))
	page.Normalize()

	params := visibility.Params{
		AgentID:   c.Query("agentId"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	var surveyID *primitive.ObjectID
	if s := c.Query("surveyId"); s != "" {
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey ID")
		}
		surveyID = &oid
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := responses.GetResponses(ctx, caller, params, surveyID, page)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(result)
}

// GetResponseByID godoc
// @Summary      Get a response by ID
// @Description  Role-scoped — a response outside the caller's visibility returns 404
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Response ID"
// @Success      200  {object}  models.Response
// @Failure      404  {object}  models.ErrorResponse
// @Router       /responses/{id} [get]
func GetResponseByID(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid response ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	response, err := responses.GetResponseByID(ctx, caller, id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(response)
}
