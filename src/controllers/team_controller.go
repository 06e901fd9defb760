package controllers

import (
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/services/teams"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTeam godoc
// @Summary      Create a team
// @Tags         teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.CreateTeamRequest true "Team"
// @Success      201  {object}  models.Team
// @Failure      400  {object}  models.ErrorResponse
// @Router       /teams [post]
func CreateTeam(c *fiber.Ctx) error {
	var req models.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	team, err := teams.CreateTeam(ctx, &req)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(team)
}

// GetTeams godoc
// @Summary      Get all teams
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Team
// @Failure      500  {object}  models.ErrorResponse
// @Router       /teams [get]
func GetTeams(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := teams.GetTeams(ctx)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(result)
}

// AddTeamMember godoc
// @Summary      Add a member to a team
// @Description  A user belongs to at most one team — they are pulled from any other team first
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Team ID"
// @Param        userId path string true "User ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /teams/{id}/members/{userId} [post]
func AddTeamMember(c *fiber.Ctx) error {
	teamID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid team ID")
	}
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := teams.AddMember(ctx, teamID, userID); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Member added successfully"})
}

// RemoveTeamMember godoc
// @Summary      Remove a member from a team
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Team ID"
// @Param        userId path string true "User ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /teams/{id}/members/{userId} [delete]
func RemoveTeamMember(c *fiber.Ctx) error {
	teamID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid team ID")
	}
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := teams.RemoveMember(ctx, teamID, userID); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Member removed successfully"})
}

// SetTeamSupervisor godoc
// @Summary      Set the supervisor of a team
// @Tags         teams
// @Produce      json
// @Security     BearerAuth
// @Param        id     path string true "Team ID"
// @Param        userId path string true "Supervisor user ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /teams/{id}/supervisor/{userId} [put]
func SetTeamSupervisor(c *fiber.Ctx) error {
	teamID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid team ID")
	}
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := teams.SetSupervisor(ctx, teamID, userID); err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Supervisor updated successfully"})
}
