package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/services"
	"github.com/hackmap/hackmap/internal/middleware"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

// TeamController handles team lookup, invitations, joining, and ideas
type TeamController struct {
	teamService *services.TeamService
	ideaService *services.IdeaService
}

// NewTeamController creates a new TeamController
func NewTeamController(teamService *services.TeamService, ideaService *services.IdeaService) *TeamController {
	return &TeamController{
		teamService: teamService,
		ideaService: ideaService,
	}
}

// GetTeam godoc
// @Summary Get a team with its members
// @Tags teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} dto.TeamResponse
// @Security BearerAuth
// @Router /teams/{id} [get]
func (c *TeamController) GetTeam(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id", "Team")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.teamService.GetTeam(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Invite sends a team invite to a user by username
func (c *TeamController) Invite(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Team")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.InviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	resp, err := c.teamService.Invite(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Join adds the caller to the team matching the submitted join code
func (c *TeamController) Join(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.JoinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	resp, err := c.teamService.Join(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateIdea posts a project idea for the team
func (c *TeamController) CreateIdea(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Team")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.IdeaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	idea, err := c.ideaService.CreateIdea(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, idea)
}
