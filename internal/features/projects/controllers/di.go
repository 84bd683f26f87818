package projects_controllers

import (
	"sync"

	audit_logs "huddle/internal/features/audit_logs"
	projects_services "huddle/internal/features/projects/services"
)

var (
	projectController    *ProjectController
	membershipController *MembershipController
	diOnce               sync.Once
)

func setupControllers() {
	projectController = &ProjectController{
		projects_services.GetProjectService(),
		projects_services.GetMembershipService(),
		audit_logs.GetAuditLogService(),
	}

	membershipController = &MembershipController{
		projects_services.GetMembershipService(),
	}
}

func GetProjectController() *ProjectController {
	diOnce.Do(setupControllers)
	return projectController
}

func GetMembershipController() *MembershipController {
	diOnce.Do(setupControllers)
	return membershipController
}
