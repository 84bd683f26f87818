package users_services

import (
	"errors"
	"fmt"

	users_dto "huddle/internal/features/users/dto"
	users_interfaces "huddle/internal/features/users/interfaces"
	users_models "huddle/internal/features/users/models"
	users_repositories "huddle/internal/features/users/repositories"

	"github.com/google/uuid"
)

type ManagementService struct {
	userRepository *users_repositories.UserRepository
	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *ManagementService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *ManagementService) ListUsers(
	request *users_dto.ListUsersRequestDTO,
	user *users_models.User,
) (*users_dto.ListUsersResponseDTO, error) {
	if !user.CanManageUsers() {
		return nil, errors.New("insufficient permissions to list users")
	}

	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	offset := max(request.Offset, 0)

	users, total, err := s.userRepository.GetUsers(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]users_dto.UserProfileResponseDTO, len(users))
	for i, u := range users {
		profiles[i] = users_dto.UserProfileResponseDTO{
			ID:          u.ID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        u.Role,
			Status:      u.Status,
			CreatedAt:   u.CreatedAt,
		}
	}

	return &users_dto.ListUsersResponseDTO{
		Users: profiles,
		Total: total,
	}, nil
}

func (s *ManagementService) ChangeUserStatus(
	targetUserID uuid.UUID,
	request *users_dto.ChangeUserStatusRequestDTO,
	changedBy *users_models.User,
) error {
	if !changedBy.CanManageUsers() {
		return errors.New("insufficient permissions to change user status")
	}

	if targetUserID == changedBy.ID {
		return errors.New("cannot change your own status")
	}

	if !request.Status.IsValid() {
		return errors.New("invalid user status")
	}

	targetUser, err := s.userRepository.GetUserByID(targetUserID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.userRepository.UpdateUserStatus(targetUserID, request.Status); err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User status changed: %s to %s", targetUser.Email, request.Status),
		&changedBy.ID,
		nil,
	)

	return nil
}

func (s *ManagementService) ChangeUserRole(
	targetUserID uuid.UUID,
	request *users_dto.ChangeUserRoleRequestDTO,
	changedBy *users_models.User,
) error {
	if !changedBy.CanManageUsers() {
		return errors.New("insufficient permissions to change user role")
	}

	if targetUserID == changedBy.ID {
		return errors.New("cannot change your own role")
	}

	if !request.Role.IsValid() {
		return errors.New("invalid user role")
	}

	targetUser, err := s.userRepository.GetUserByID(targetUserID)
	if err != nil {
		return errors.New("user not found")
	}

	if err := s.userRepository.UpdateUserRole(targetUserID, request.Role); err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User role changed: %s from %s to %s", targetUser.Email, targetUser.Role, request.Role),
		&changedBy.ID,
		nil,
	)

	return nil
}

func (s *ManagementService) GetActiveUserIDs() ([]uuid.UUID, error) {
	return s.userRepository.GetActiveUserIDs()
}

func (s *ManagementService) GetUsersByIDs(userIDs []uuid.UUID) ([]*users_models.User, error) {
	return s.userRepository.GetUsersByIDs(userIDs)
}
