package projects_services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	audit_logs "huddle/internal/features/audit_logs"
	projects_dto "huddle/internal/features/projects/dto"
	projects_interfaces "huddle/internal/features/projects/interfaces"
	projects_models "huddle/internal/features/projects/models"
	projects_permissions "huddle/internal/features/projects/permissions"
	projects_repositories "huddle/internal/features/projects/repositories"
	users_models "huddle/internal/features/users/models"
	users_services "huddle/internal/features/users/services"

	"github.com/google/uuid"
)

type MembershipService struct {
	membershipRepository   *projects_repositories.MembershipRepository
	invitationRepository   *projects_repositories.InvitationRepository
	projectRepository      *projects_repositories.ProjectRepository
	resolver               *projects_permissions.Resolver
	userService            *users_services.UserService
	auditLogService        *audit_logs.AuditLogService
	memberRemovalListeners []projects_interfaces.MemberRemovalListener
}

func (s *MembershipService) AddMemberRemovalListener(listener projects_interfaces.MemberRemovalListener) {
	s.memberRemovalListeners = append(s.memberRemovalListeners, listener)
}

// GetEffectivePermissions returns the caller's resolved capability set.
// Clients cache it to hide UI affordances; every mutation is still
// re-checked server side.
func (s *MembershipService) GetEffectivePermissions(
	projectID uuid.UUID,
	user *users_models.User,
) projects_permissions.Capabilities {
	return s.resolver.Resolve(projectID, user.ID)
}

func (s *MembershipService) GetMembers(
	projectID uuid.UUID,
	user *users_models.User,
) (*projects_dto.GetMembersResponseDTO, error) {
	capabilities := s.resolver.Resolve(projectID, user.ID)
	if !capabilities.HasAny() {
		return nil, errors.New("insufficient permissions to view project members")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil || project == nil {
		return nil, errors.New("project not found")
	}

	members, err := s.membershipRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	membersList := make([]projects_dto.ProjectMemberResponseDTO, len(members))
	for i, member := range members {
		membersList[i] = projects_dto.ProjectMemberResponseDTO{
			ID:          member.ID,
			UserID:      member.UserID,
			Email:       member.Email,
			DisplayName: member.DisplayName,
			RoleLabel:   member.RoleLabel,
			IsCreator:   member.UserID == project.CreatorID,
			Flags: projects_dto.CapabilityFlagsDTO{
				CanManageTasks:       member.CanManageTasks,
				CanManageFiles:       member.CanManageFiles,
				CanChat:              member.CanChat,
				CanChangeProjectName: member.CanChangeProjectName,
				CanAddMembers:        member.CanAddMembers,
			},
			CreatedAt: member.CreatedAt,
		}
	}

	return &projects_dto.GetMembersResponseDTO{Members: membersList}, nil
}

func (s *MembershipService) AddMember(
	projectID uuid.UUID,
	request *projects_dto.AddMemberRequestDTO,
	addedBy *users_models.User,
) (*projects_dto.AddMemberResponseDTO, error) {
	capabilities := s.resolver.Resolve(projectID, addedBy.ID)
	if !capabilities.CanManageMembers() {
		return nil, errors.New("insufficient permissions to manage members")
	}

	targetUser, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if targetUser == nil {
		// User doesn't exist yet: leave an invitation they can accept by token
		invitation := &projects_models.ProjectInvitation{
			ProjectID:            projectID,
			Email:                strings.ToLower(request.Email),
			Token:                uuid.New().String(),
			RoleLabel:            request.RoleLabel,
			CanManageTasks:       request.Flags.CanManageTasks,
			CanManageFiles:       request.Flags.CanManageFiles,
			CanChat:              request.Flags.CanChat,
			CanChangeProjectName: request.Flags.CanChangeProjectName,
			CanAddMembers:        request.Flags.CanAddMembers,
		}

		if err := s.invitationRepository.CreateInvitation(invitation); err != nil {
			return nil, fmt.Errorf("failed to create invitation: %w", err)
		}

		s.auditLogService.WriteAuditLog(
			fmt.Sprintf("User invited to project: %s", request.Email),
			&addedBy.ID,
			&projectID,
		)

		return &projects_dto.AddMemberResponseDTO{Status: projects_dto.AddStatusInvited}, nil
	}

	existingMembership, _ := s.membershipRepository.GetMembershipByUserAndProject(targetUser.ID, projectID)
	if existingMembership != nil {
		return nil, errors.New("user is already a member of this project")
	}

	membership := &projects_models.ProjectMembership{
		UserID:               targetUser.ID,
		ProjectID:            projectID,
		RoleLabel:            request.RoleLabel,
		CanManageTasks:       request.Flags.CanManageTasks,
		CanManageFiles:       request.Flags.CanManageFiles,
		CanChat:              request.Flags.CanChat,
		CanChangeProjectName: request.Flags.CanChangeProjectName,
		CanAddMembers:        request.Flags.CanAddMembers,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	s.resolver.Invalidate(projectID, targetUser.ID)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("User added to project: %s", targetUser.Email),
		&addedBy.ID,
		&projectID,
	)

	return &projects_dto.AddMemberResponseDTO{Status: projects_dto.AddStatusAdded}, nil
}

func (s *MembershipService) UpdateMemberPermissions(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	request *projects_dto.UpdateMemberPermissionsRequestDTO,
	changedBy *users_models.User,
) error {
	capabilities := s.resolver.Resolve(projectID, changedBy.ID)
	if !capabilities.CanManageMembers() {
		return errors.New("insufficient permissions to manage members")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil || project == nil {
		return errors.New("project not found")
	}

	if memberUserID == project.CreatorID {
		return errors.New("cannot change creator permissions")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndProject(memberUserID, projectID)
	if err != nil {
		return fmt.Errorf("failed to look up membership: %w", err)
	}

	if existingMembership == nil {
		return errors.New("user is not a member of this project")
	}

	err = s.membershipRepository.UpdateMemberPermissions(
		memberUserID, projectID,
		request.RoleLabel,
		request.Flags.CanManageTasks,
		request.Flags.CanManageFiles,
		request.Flags.CanChat,
		request.Flags.CanChangeProjectName,
		request.Flags.CanAddMembers,
	)
	if err != nil {
		return fmt.Errorf("failed to update member permissions: %w", err)
	}

	s.resolver.Invalidate(projectID, memberUserID)

	s.auditLogService.WriteAuditLog("Member permissions changed", &changedBy.ID, &projectID)

	return nil
}

func (s *MembershipService) RemoveMember(
	projectID uuid.UUID,
	memberUserID uuid.UUID,
	removedBy *users_models.User,
) error {
	capabilities := s.resolver.Resolve(projectID, removedBy.ID)
	if !capabilities.CanManageMembers() {
		return errors.New("insufficient permissions to remove members")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil || project == nil {
		return errors.New("project not found")
	}

	if memberUserID == project.CreatorID {
		return errors.New("cannot remove the project creator")
	}

	existingMembership, err := s.membershipRepository.GetMembershipByUserAndProject(memberUserID, projectID)
	if err != nil {
		return fmt.Errorf("failed to look up membership: %w", err)
	}

	if existingMembership == nil {
		return errors.New("user is not a member of this project")
	}

	if err := s.membershipRepository.RemoveMember(memberUserID, projectID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.resolver.Invalidate(projectID, memberUserID)

	// Removed members keep no task assignments behind
	for _, listener := range s.memberRemovalListeners {
		if err := listener.OnMemberRemoved(projectID, memberUserID); err != nil {
			return fmt.Errorf("member removal listener failed: %w", err)
		}
	}

	s.auditLogService.WriteAuditLog("Member removed from project", &removedBy.ID, &projectID)

	return nil
}

func (s *MembershipService) AcceptInvitation(token string, user *users_models.User) error {
	invitation, err := s.invitationRepository.GetInvitationByToken(token)
	if err != nil {
		return fmt.Errorf("failed to look up invitation: %w", err)
	}

	if invitation == nil {
		return errors.New("invitation not found")
	}

	if invitation.AcceptedAt != nil {
		return errors.New("invitation already accepted")
	}

	if !strings.EqualFold(invitation.Email, user.Email) {
		return errors.New("invitation was issued for a different email")
	}

	existingMembership, _ := s.membershipRepository.GetMembershipByUserAndProject(user.ID, invitation.ProjectID)
	if existingMembership != nil {
		return errors.New("user is already a member of this project")
	}

	membership := &projects_models.ProjectMembership{
		UserID:               user.ID,
		ProjectID:            invitation.ProjectID,
		RoleLabel:            invitation.RoleLabel,
		CanManageTasks:       invitation.CanManageTasks,
		CanManageFiles:       invitation.CanManageFiles,
		CanChat:              invitation.CanChat,
		CanChangeProjectName: invitation.CanChangeProjectName,
		CanAddMembers:        invitation.CanAddMembers,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.membershipRepository.CreateMembership(membership); err != nil {
		return fmt.Errorf("failed to create membership: %w", err)
	}

	if err := s.invitationRepository.MarkAccepted(invitation.ID); err != nil {
		return fmt.Errorf("failed to mark invitation accepted: %w", err)
	}

	s.resolver.Invalidate(invitation.ProjectID, user.ID)

	s.auditLogService.WriteAuditLog(
		fmt.Sprintf("Invitation accepted by %s", user.Email),
		&user.ID,
		&invitation.ProjectID,
	)

	return nil
}
