package users_controllers

import (
	"net/http"

	users_dto "huddle/internal/features/users/dto"
	users_middleware "huddle/internal/features/users/middleware"
	users_services "huddle/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ManagementController struct {
	managementService *users_services.ManagementService
}

func (c *ManagementController) RegisterRoutes(router *gin.RouterGroup) {
	managementRoutes := router.Group("/users/management")

	managementRoutes.GET("", c.ListUsers)
	managementRoutes.PUT("/:userId/status", c.ChangeUserStatus)
	managementRoutes.PUT("/:userId/role", c.ChangeUserRole)
}

// ListUsers
// @Summary List all users
// @Description Admin-only listing of registered users
// @Tags users-management
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /users/management [get]
func (c *ManagementController) ListUsers(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.ListUsersRequestDTO
	if err := ctx.ShouldBindQuery(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.managementService.ListUsers(&request, user)
	if err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ChangeUserStatus
// @Summary Suspend or reactivate a user
// @Tags users-management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body users_dto.ChangeUserStatusRequestDTO true "New status"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/management/{userId}/status [put]
func (c *ManagementController) ChangeUserStatus(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request users_dto.ChangeUserStatusRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.managementService.ChangeUserStatus(targetUserID, &request, user); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ChangeUserRole
// @Summary Change a user's global role
// @Tags users-management
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body users_dto.ChangeUserRoleRequestDTO true "New role"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/management/{userId}/role [put]
func (c *ManagementController) ChangeUserRole(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	targetUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request users_dto.ChangeUserRoleRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.managementService.ChangeUserRole(targetUserID, &request, user); err != nil {
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "updated"})
}
