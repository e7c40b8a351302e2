package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmap/hackmap/internal/app/services"
	"github.com/hackmap/hackmap/internal/middleware"
)

// UserController serves the authenticated user's profile views
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Security BearerAuth
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.userService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetTeams lists the teams the authenticated user belongs to
func (c *UserController) GetTeams(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.userService.GetTeams(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetIdeas lists the project ideas posted by the user's teams
func (c *UserController) GetIdeas(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.userService.GetIdeas(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
