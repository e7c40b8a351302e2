package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/services"
	"github.com/hackmap/hackmap/internal/middleware"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

// IdeaController handles idea browsing, comments, and endorsements
type IdeaController struct {
	ideaService *services.IdeaService
}

// NewIdeaController creates a new IdeaController
func NewIdeaController(ideaService *services.IdeaService) *IdeaController {
	return &IdeaController{ideaService: ideaService}
}

// ListIdeas godoc
// @Summary List all project ideas
// @Tags ideas
// @Produce json
// @Success 200 {array} dto.IdeaResponse
// @Security BearerAuth
// @Router /ideas [get]
func (c *IdeaController) ListIdeas(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.ideaService.ListIdeas(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetIdea returns one idea with its comments, newest first
func (c *IdeaController) GetIdea(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Idea")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.ideaService.GetIdea(ctx.Request.Context(), id, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AddComment posts a comment on an idea
func (c *IdeaController) AddComment(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Idea")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	comment, err := c.ideaService.AddComment(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, comment)
}

// Endorse records the caller's endorsement of an idea
func (c *IdeaController) Endorse(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Idea")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp, err := c.ideaService.Endorse(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
