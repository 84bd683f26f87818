package notifications_controllers

import (
	"net/http"
	"strconv"
	"strings"

	notifications_dto "huddle/internal/features/notifications/dto"
	notifications_services "huddle/internal/features/notifications/services"
	users_middleware "huddle/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationController struct {
	notificationService *notifications_services.NotificationService
}

func (c *NotificationController) RegisterRoutes(router *gin.RouterGroup) {
	notificationRoutes := router.Group("/notifications")

	notificationRoutes.GET("", c.GetNotifications)
	notificationRoutes.POST("/mark-read", c.MarkAllRead)
	notificationRoutes.POST("/projects/:projectId/mark-read", c.MarkProjectRead)
	notificationRoutes.POST("/broadcast", c.BroadcastAnnouncement)
}

// GetNotifications
// @Summary List the authenticated user's notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} notifications_dto.ListNotificationsResponseDTO
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	response, err := c.notificationService.GetNotifications(user.ID, limit, offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// MarkAllRead
// @Summary Mark every notification of the user as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} notifications_dto.MarkReadResponseDTO
// @Router /notifications/mark-read [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	response, err := c.notificationService.MarkAllRead(user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// MarkProjectRead
// @Summary Mark the user's notifications for one project as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} notifications_dto.MarkReadResponseDTO
// @Router /notifications/projects/{projectId}/mark-read [post]
func (c *NotificationController) MarkProjectRead(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	response, err := c.notificationService.MarkProjectRead(user.ID, projectID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// BroadcastAnnouncement
// @Summary Broadcast an announcement to all active users
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body notifications_dto.BroadcastAnnouncementRequestDTO true "Announcement"
// @Success 200 {object} notifications_dto.BroadcastAnnouncementResponseDTO
// @Failure 403 {object} map[string]string
// @Router /notifications/broadcast [post]
func (c *NotificationController) BroadcastAnnouncement(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request notifications_dto.BroadcastAnnouncementRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.notificationService.BroadcastAnnouncement(user, request.Message)
	if err != nil {
		if strings.Contains(err.Error(), "only administrators") {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
