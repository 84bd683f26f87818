package chat_controllers

import (
	"net/http"
	"strconv"
	"strings"

	chat_services "huddle/internal/features/chat/services"
	users_middleware "huddle/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatController struct {
	chatService *chat_services.ChatService
}

func (c *ChatController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/projects/:id/messages", c.GetMessages)
	router.GET("/projects/:id/messages/:messageId/reactions", c.GetReactions)
}

// GetReactions
// @Summary Get the reaction aggregate of a message
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param messageId path string true "Message ID"
// @Success 200 {object} chat_dto.ReactionsUpdatedDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{id}/messages/{messageId}/reactions [get]
func (c *ChatController) GetReactions(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	messageID, err := uuid.Parse(ctx.Param("messageId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	response, err := c.chatService.GetReactions(user, projectID, messageID)
	if err != nil {
		if strings.Contains(err.Error(), "access") {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		if strings.Contains(err.Error(), "not found") {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetMessages
// @Summary List project chat history
// @Description Returns messages newest first with reaction aggregates
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} chat_dto.ListMessagesResponseDTO
// @Failure 403 {object} map[string]string
// @Router /projects/{id}/messages [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	response, err := c.chatService.GetMessages(user, projectID, limit, offset)
	if err != nil {
		if strings.Contains(err.Error(), "access") {
			ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
