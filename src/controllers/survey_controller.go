package controllers

import (
	"Backend-FieldSurvey-001/src/jobs"
	"Backend-FieldSurvey-001/src/middleware"
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/services/surveys"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateSurvey godoc
// @Summary      Create a new survey
// @Description  Create a new survey in draft status with its questions
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.CreateSurveyRequest true "Survey with questions"
// @Success      201  {object}  models.Survey
// @Failure      400  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /surveys [post]
func CreateSurvey(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	var req models.CreateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	survey, err := surveys.CreateSurvey(ctx, &req, caller.ID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Survey created successfully",
		"data":    survey,
	})
}

// GetSurveys godoc
// @Summary      Get surveys visible to the caller
// @Description  Get surveys with pagination — expired active surveys are closed before listing
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Number of items per page" default(10)
// @Param        search query  string  false  "Search term"
// @Param        sortBy query  string  false  "Field to sort by" default(createdAt)
// @Param        order  query  string  false  "Sort order (asc or desc)" default(desc)
// @Param        status query  string  false  "Filter by status"
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /surveys [get]
func GetSurveys(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	params := models.DefaultPagination()
	params.Page, _ = strconv.Atoi(c.Query("page", strconv.Itoa(params.Page)))
	params.Limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(params.Limit)))
	params.Search = c.Query("search", params.Search)
	params.SortBy = c.Query("sortBy", params.SortBy)
	params.Order = c.Query("order", params.Order)
	params.Normalize()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := surveys.GetSurveys(ctx, caller, params, c.Query("status"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// GetSurveyByID godoc
// @Summary      Get a survey by ID
// @Description  Read one survey — if its end date has passed it is closed before returning
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {object}  models.Survey
// @Failure      404  {object}  models.ErrorResponse
// @Router       /surveys/{id} [get]
func GetSurveyByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	survey, err := surveys.GetSurveyByID(ctx, id)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(survey)
}

// UpdateSurveyStatus godoc
// @Summary      Update survey status
// @Description  Move a survey through its lifecycle — closed is terminal
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Survey ID"
// @Param        body body models.UpdateSurveyStatusRequest true "New status"
// @Success      200  {object}  models.Survey
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /surveys/{id}/status [patch]
func UpdateSurveyStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey ID")
	}

	var req models.UpdateSurveyStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	survey, err := surveys.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if err.Error() == "survey not found" {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	// เปิดใช้งานแล้วมี endDate → ตั้ง task ปิดอัตโนมัติไว้ล่วงหน้า
	if survey.Status == models.SurveyStatusActive && survey.EndDate != nil {
		jobs.ScheduleSurveyClose(survey.ID.Hex(), *survey.EndDate)
	}

	return c.JSON(fiber.Map{
		"message": "Survey status updated",
		"data":    survey,
	})
}

// ExtendSurvey godoc
// @Summary      Extend survey end date
// @Description  Push the end date out — the first extension records the original end date
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Survey ID"
// @Param        body body models.ExtendSurveyRequest true "New end date"
// @Success      200  {object}  models.Survey
// @Failure      400  {object}  models.ErrorResponse
// @Router       /surveys/{id}/extend [patch]
func ExtendSurvey(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey ID")
	}

	var req models.ExtendSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	survey, err := surveys.ExtendEndDate(ctx, id, req.EndDate)
	if err != nil {
		if err.Error() == "survey not found" {
			return utils.HandleError(c, fiber.StatusNotFound, err.Error())
		}
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	if survey.Status == models.SurveyStatusActive {
		jobs.ScheduleSurveyClose(survey.ID.Hex(), req.EndDate)
	}

	return c.JSON(fiber.Map{
		"message": "Survey end date extended",
		"data":    survey,
	})
}

// AssignAgents godoc
// @Summary      Assign field agents to a survey
// @Tags         surveys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Survey ID"
// @Param        body body models.AssignAgentsRequest true "Agent IDs"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Router       /surveys/{id}/assign [post]
func AssignAgents(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey ID")
	}

	var req models.AssignAgentsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	agentIDs := make([]primitive.ObjectID, 0, len(req.AgentIDs))
	for _, idStr := range req.AgentIDs {
		oid, err := primitive.ObjectIDFromHex(idStr)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid agent ID: "+idStr)
		}
		agentIDs = append(agentIDs, oid)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := surveys.AssignAgents(ctx, id, agentIDs); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Agents assigned successfully"})
}

// DeleteSurvey godoc
// @Summary      Delete a survey and its responses
// @Tags         surveys
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Survey ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /surveys/{id} [delete]
func DeleteSurvey(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid survey ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := surveys.DeleteSurvey(ctx, id); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Survey deleted successfully"})
}
