package projects_services

import (
	"errors"
	"fmt"
	"time"

	audit_logs "huddle/internal/features/audit_logs"
	projects_dto "huddle/internal/features/projects/dto"
	projects_interfaces "huddle/internal/features/projects/interfaces"
	projects_models "huddle/internal/features/projects/models"
	projects_permissions "huddle/internal/features/projects/permissions"
	projects_repositories "huddle/internal/features/projects/repositories"
	users_models "huddle/internal/features/users/models"
	cache_utils "huddle/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type ProjectService struct {
	projectRepository        *projects_repositories.ProjectRepository
	membershipRepository     *projects_repositories.MembershipRepository
	resolver                 *projects_permissions.Resolver
	auditLogService          *audit_logs.AuditLogService
	projectDeletionListeners []projects_interfaces.ProjectDeletionListener

	projectCacheUtil *cache_utils.CacheUtil[projects_models.Project]
	singleflight     singleflight.Group // Prevents thundering herd on DB calls
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.projectDeletionListeners = append(s.projectDeletionListeners, listener)
}

func (s *ProjectService) CreateProject(
	request *projects_dto.CreateProjectRequestDTO,
	creator *users_models.User,
) (*projects_dto.ProjectResponseDTO, error) {
	project := &projects_models.Project{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		Status:      projects_models.ProjectStatusActive,
		CreatorID:   creator.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.projectRepository.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	// Pre-warm cache with new project for immediate availability
	s.projectCacheUtil.Set(project.ID.String(), project)

	// The creator gets a membership row so member listings include them;
	// the flags are irrelevant because creator status grants everything.
	membership := &projects_models.ProjectMembership{
		UserID:               creator.ID,
		ProjectID:            project.ID,
		RoleLabel:            "Creator",
		CanManageTasks:       true,
		CanManageFiles:       true,
		CanChat:              true,
		CanChangeProjectName: true,
		CanAddMembers:        true,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to create project membership: %w", err)
	}

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Title),
		&creator.ID,
		&project.ID,
	)

	return projectToResponse(project), nil
}

func (s *ProjectService) GetProject(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_models.Project, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.HasAny() {
		return nil, errors.New("insufficient permissions to view project")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project == nil {
		return nil, errors.New("project not found")
	}

	if project.IsTrashed() && !capabilities.IsCreator {
		return nil, errors.New("project not found")
	}

	return project, nil
}

// GetProjectCached is the hot-path lookup used when routing realtime
// events; it serves from Valkey and collapses concurrent misses.
func (s *ProjectService) GetProjectCached(projectID uuid.UUID) (*projects_models.Project, error) {
	if cached := s.projectCacheUtil.Get(projectID.String()); cached != nil {
		return cached, nil
	}

	result, err, _ := s.singleflight.Do(projectID.String(), func() (any, error) {
		project, err := s.projectRepository.GetProjectByID(projectID)
		if err != nil {
			return nil, err
		}

		if project != nil {
			s.projectCacheUtil.Set(projectID.String(), project)
		}

		return project, nil
	})
	if err != nil {
		return nil, err
	}

	project, _ := result.(*projects_models.Project)

	return project, nil
}

func (s *ProjectService) GetUserProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.projectRepository.GetProjectsForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user projects: %w", err)
	}

	responses := make([]projects_dto.ProjectResponseDTO, len(projects))
	for i, project := range projects {
		responses[i] = *projectToResponse(project)
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: responses}, nil
}

func (s *ProjectService) GetTrashedProjects(user *users_models.User) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.projectRepository.GetTrashedProjectsForCreator(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trashed projects: %w", err)
	}

	responses := make([]projects_dto.ProjectResponseDTO, len(projects))
	for i, project := range projects {
		responses[i] = *projectToResponse(project)
	}

	return &projects_dto.ListProjectsResponseDTO{Projects: responses}, nil
}

func (s *ProjectService) UpdateProject(
	projectID uuid.UUID,
	request *projects_dto.UpdateProjectRequestDTO,
	user *users_models.User,
) (*projects_models.Project, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.CanChangeProjectName {
		return nil, errors.New("insufficient permissions to update project")
	}

	if !request.Status.IsValid() {
		return nil, errors.New("invalid project status")
	}

	existingProject, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if existingProject == nil || existingProject.IsTrashed() {
		return nil, errors.New("project not found")
	}

	existingProject.Title = request.Title
	existingProject.Description = request.Description
	existingProject.Status = request.Status

	if err := s.projectRepository.UpdateProject(existingProject); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", existingProject.Title),
		&user.ID,
		&projectID,
	)

	return existingProject, nil
}

func (s *ProjectService) MoveToTrash(projectID uuid.UUID, user *users_models.User) error {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.IsCreator {
		return errors.New("only the project creator can delete the project")
	}

	if err := s.projectRepository.MoveToTrash(projectID); err != nil {
		return fmt.Errorf("failed to move project to trash: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog("Project moved to trash", &user.ID, &projectID)

	return nil
}

func (s *ProjectService) RestoreFromTrash(projectID uuid.UUID, user *users_models.User) error {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.IsCreator {
		return errors.New("only the project creator can restore the project")
	}

	if err := s.projectRepository.RestoreFromTrash(projectID); err != nil {
		return fmt.Errorf("failed to restore project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog("Project restored from trash", &user.ID, &projectID)

	return nil
}

// PurgeProject permanently deletes a trashed project. Called by the
// retention worker once the 30 day window has passed.
func (s *ProjectService) PurgeProject(projectID uuid.UUID) error {
	for _, listener := range s.projectDeletionListeners {
		if err := listener.OnBeforeProjectDeletion(projectID); err != nil {
			return fmt.Errorf("project deletion listener failed: %w", err)
		}
	}

	if err := s.projectRepository.PurgeProject(projectID); err != nil {
		return fmt.Errorf("failed to purge project: %w", err)
	}

	s.projectCacheUtil.Invalidate(projectID.String())

	s.auditLogService.WriteAuditLog("Project purged after retention window", nil, &projectID)

	return nil
}

func (s *ProjectService) GetTrashedProjectIDsBefore(cutoff time.Time) ([]uuid.UUID, error) {
	return s.projectRepository.GetTrashedProjectIDsBefore(cutoff)
}

func projectToResponse(project *projects_models.Project) *projects_dto.ProjectResponseDTO {
	return &projects_dto.ProjectResponseDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Status:      project.Status,
		CreatorID:   project.CreatorID,
		CreatedAt:   project.CreatedAt,
		DeletedAt:   project.DeletedAt,
	}
}
