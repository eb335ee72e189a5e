package controllers

import (
	"github.com/gin-gonic/gin"

	"gadget-store/models"
	"gadget-store/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// @Summary Register a new user
// @Description Create an account and receive an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.SignupRequest true "Signup payload"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Name, email and password are required"})
		return
	}

	result, err := ctrl.auth.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, models.Response{
		Success: true,
		Message: "User registered successfully",
		Data:    result,
	})
}

// @Summary Log in
// @Description Exchange credentials for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Login payload"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, models.ErrorResponse{Success: false, Message: "Email and password are required"})
		return
	}

	result, err := ctrl.auth.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Login successful",
		Data:    result,
	})
}

// @Summary Log out
// @Description Revoke the current access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	token := c.GetString("token")

	if err := ctrl.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Logged out successfully",
	})
}

// @Summary Get current profile
// @Description Return the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(401, models.ErrorResponse{Success: false, Message: "Authorization token is required"})
		return
	}

	profile, err := ctrl.auth.Me(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, models.Response{
		Success: true,
		Message: "Profile retrieved",
		Data:    profile,
	})
}
