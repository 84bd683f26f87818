package projects_services

import (
	"sync"

	"huddle/internal/cache"
	"huddle/internal/features/audit_logs"
	projects_interfaces "huddle/internal/features/projects/interfaces"
	projects_models "huddle/internal/features/projects/models"
	projects_permissions "huddle/internal/features/projects/permissions"
	projects_repositories "huddle/internal/features/projects/repositories"
	users_services "huddle/internal/features/users/services"
	cache_utils "huddle/internal/util/cache"

	"golang.org/x/sync/singleflight"
)

var (
	projectService    *ProjectService
	membershipService *MembershipService
	diOnce            sync.Once
)

func setupServices() {
	projectRepository := &projects_repositories.ProjectRepository{}
	membershipRepository := &projects_repositories.MembershipRepository{}
	invitationRepository := &projects_repositories.InvitationRepository{}

	projectService = &ProjectService{
		projectRepository,
		membershipRepository,
		projects_permissions.GetResolver(),
		audit_logs.GetAuditLogService(),
		[]projects_interfaces.ProjectDeletionListener{},
		cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "huddle_project:"),
		singleflight.Group{},
	}

	membershipService = &MembershipService{
		membershipRepository,
		invitationRepository,
		projectRepository,
		projects_permissions.GetResolver(),
		users_services.GetUserService(),
		audit_logs.GetAuditLogService(),
		[]projects_interfaces.MemberRemovalListener{},
	}
}

func GetProjectService() *ProjectService {
	diOnce.Do(setupServices)
	return projectService
}

func GetMembershipService() *MembershipService {
	diOnce.Do(setupServices)
	return membershipService
}
