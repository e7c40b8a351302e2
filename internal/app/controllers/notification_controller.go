package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmap/hackmap/internal/app/models/dto"
	"github.com/hackmap/hackmap/internal/app/services"
	"github.com/hackmap/hackmap/internal/middleware"
	"github.com/hackmap/hackmap/internal/pkg/apperrors"
)

// NotificationController handles listing and responding to notifications
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List returns the caller's notifications, newest first
func (c *NotificationController) List(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)

	resp, err := c.notificationService.List(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Respond godoc
// @Summary Respond to a notification
// @Description Accepts or declines a pending invite or join request
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Param request body dto.RespondRequest true "ACCEPT or DECLINE"
// @Success 200 {object} dto.RespondResponse
// @Security BearerAuth
// @Router /notifications/{id}/respond [post]
func (c *NotificationController) Respond(ctx *gin.Context) {
	userID, _ := middleware.GetUserID(ctx)
	id, err := parseIDParam(ctx, "id", "Notification")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RespondRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	resp, err := c.notificationService.Respond(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
