package projects_controllers

import (
	"net/http"
	"strings"

	projects_dto "huddle/internal/features/projects/dto"
	projects_services "huddle/internal/features/projects/services"
	users_middleware "huddle/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MembershipController struct {
	membershipService *projects_services.MembershipService
}

func (c *MembershipController) RegisterRoutes(router *gin.RouterGroup) {
	membershipRoutes := router.Group("/projects/memberships")

	membershipRoutes.GET("/:projectId/members", c.GetMembers)
	membershipRoutes.POST("/:projectId/members", c.AddMember)
	membershipRoutes.PUT("/:projectId/members/:userId", c.UpdateMemberPermissions)
	membershipRoutes.DELETE("/:projectId/members/:userId", c.RemoveMember)
	membershipRoutes.GET("/:projectId/permissions", c.GetEffectivePermissions)
	membershipRoutes.POST("/invitations/accept", c.AcceptInvitation)
}

// GetMembers
// @Summary List project members
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 403 {object} map[string]string
// @Router /projects/memberships/{projectId}/members [get]
func (c *MembershipController) GetMembers(ctx *gin.Context) {
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

	response, err := c.membershipService.GetMembers(projectID, user)
	if err != nil {
		respondMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// AddMember
// @Summary Add a member or invite by email
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body projects_dto.AddMemberRequestDTO true "Member data"
// @Success 200 {object} projects_dto.AddMemberResponseDTO
// @Failure 403 {object} map[string]string
// @Router /projects/memberships/{projectId}/members [post]
func (c *MembershipController) AddMember(ctx *gin.Context) {
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

	var request projects_dto.AddMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.membershipService.AddMember(projectID, &request, user)
	if err != nil {
		respondMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateMemberPermissions
// @Summary Update a member's capability flags
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param userId path string true "Member user ID"
// @Param request body projects_dto.UpdateMemberPermissionsRequestDTO true "Permission flags"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/memberships/{projectId}/members/{userId} [put]
func (c *MembershipController) UpdateMemberPermissions(ctx *gin.Context) {
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

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var request projects_dto.UpdateMemberPermissionsRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.UpdateMemberPermissions(projectID, memberUserID, &request, user); err != nil {
		respondMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// RemoveMember
// @Summary Remove a member from the project
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param userId path string true "Member user ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /projects/memberships/{projectId}/members/{userId} [delete]
func (c *MembershipController) RemoveMember(ctx *gin.Context) {
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

	memberUserID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.membershipService.RemoveMember(projectID, memberUserID, user); err != nil {
		respondMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// GetEffectivePermissions
// @Summary Get the caller's effective permissions for a project
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} projects_permissions.Capabilities
// @Router /projects/memberships/{projectId}/permissions [get]
func (c *MembershipController) GetEffectivePermissions(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, c.membershipService.GetEffectivePermissions(projectID, user))
}

// AcceptInvitation
// @Summary Accept a project invitation by token
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body projects_dto.AcceptInvitationRequestDTO true "Invitation token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /projects/memberships/invitations/accept [post]
func (c *MembershipController) AcceptInvitation(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request projects_dto.AcceptInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.membershipService.AcceptInvitation(request.Token, user); err != nil {
		respondMembershipError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

func respondMembershipError(ctx *gin.Context, err error) {
	message := err.Error()

	switch {
	case strings.Contains(message, "insufficient permissions"),
		strings.Contains(message, "cannot change creator"),
		strings.Contains(message, "cannot remove the project creator"):
		ctx.JSON(http.StatusForbidden, gin.H{"error": message})
	case strings.Contains(message, "not found"):
		ctx.JSON(http.StatusNotFound, gin.H{"error": message})
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
	}
}
