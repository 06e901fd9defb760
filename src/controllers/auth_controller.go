package controllers

import (
	"Backend-FieldSurvey-001/src/middleware"
	"Backend-FieldSurvey-001/src/models"
	"Backend-FieldSurvey-001/src/services"
	"Backend-FieldSurvey-001/src/utils"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Login with email and password
// @Description  Authenticate a user and return access + refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body loginRequest true "Credentials"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	user, err := services.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, err.Error())
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	// refresh token เก็บใน Redis — ถ้าไม่มี Redis จะข้าม (dev mode)
	refreshToken := utils.NewRefreshToken()
	if err := utils.StoreRefreshToken(user.ID.Hex(), refreshToken, 7*24*time.Hour); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	return c.JSON(fiber.Map{
		"accessToken":  token,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

type refreshRequest struct {
	UserID       string `json:"userId"`
	RefreshToken string `json:"refreshToken"`
}

// Refresh godoc
// @Summary      Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body refreshRequest true "Refresh token"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/refresh [post]
func Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	valid, err := utils.ValidateRefreshToken(req.UserID, req.RefreshToken)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to validate refresh token")
	}
	if !valid {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := services.GetUserByID(ctx, userID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, err.Error())
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(fiber.Map{"accessToken": token})
}

// Me godoc
// @Summary      Get current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/me [get]
func Me(c *fiber.Ctx) error {
	caller, err := middleware.CallerFromLocals(c)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid caller identity")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := services.GetUserByID(ctx, caller.ID)
	if err != nil {
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	}
	return c.JSON(user)
}

// Logout godoc
// @Summary      Logout and revoke refresh token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.SuccessResponse
// @Router       /auth/logout [post]
func Logout(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	if err := utils.DeleteRefreshToken(userID); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to revoke refresh token")
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Register godoc
// @Summary      Create a new user (admin only)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body models.User true "User"
// @Success      201  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Router       /auth/register [post]
func Register(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	created, err := services.CreateUser(ctx, &user)
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
