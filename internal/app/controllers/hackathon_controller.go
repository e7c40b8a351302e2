package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/services"
	"github.com/hackmap/hackmap/internal/middleware"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

// parseIDParam reads a numeric path parameter. A non-numeric value maps to
// a not-found error named after the resource.
func parseIDParam(ctx *gin.Context, name, resource string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewResourceNotFoundError(resource + " not found")
	}
	return id, nil
}

// HackathonController handles hackathon CRUD, registration, and team
// creation
type HackathonController struct {
	hackathonService *services.HackathonService
	teamService      *services.TeamService
}

// NewHackathonController creates a new HackathonController
func NewHackathonController(hackathonService *services.HackathonService, teamService *services.TeamService) *HackathonController {
	return &HackathonController{
		hackathonService: hackathonService,
		teamService:      teamService,
	}
}

// ListHackathons godoc
// @Summary List all hackathons
// @Tags hackathons
// @Produce json
// @Success 200 {array} dto.HackathonResponse
// @Security BearerAuth
// @Router /hackathons [get]
func (c *HackathonController) ListHackathons(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.hackathonService.ListHackathons(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetHackathon godoc
// @Summary Get one hackathon
// @Tags hackathons
// @Produce json
// @Param id path int true "Hackathon ID"
// @Success 200 {object} dto.HackathonResponse
// @Security BearerAuth
// @Router /hackathons/{id} [get]
func (c *HackathonController) GetHackathon(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Hackathon")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.hackathonService.GetHackathon(ctx.Request.Context(), id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateHackathon godoc
// @Summary Publish a hackathon
// @Tags hackathons
// @Accept json
// @Produce json
// @Param request body dto.HackathonRequest true "Hackathon details"
// @Success 201 {object} dto.HackathonResponse
// @Security BearerAuth
// @Router /hackathons [post]
func (c *HackathonController) CreateHackathon(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	var req dto.HackathonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	resp, err := c.hackathonService.CreateHackathon(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateHackathon rewrites a hackathon; only its organizer may call this
func (c *HackathonController) UpdateHackathon(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Hackathon")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.HackathonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	resp, err := c.hackathonService.UpdateHackathon(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Register signs the caller up for a hackathon with their skills
func (c *HackathonController) Register(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Hackathon")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	registration, err := c.hackathonService.Register(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, registration)
}

// CreateTeam creates a team under a hackathon, auto-joining the creator
func (c *HackathonController) CreateTeam(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Hackathon")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.TeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	team, err := c.teamService.CreateTeam(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, team)
}
