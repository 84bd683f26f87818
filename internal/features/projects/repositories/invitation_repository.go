package projects_repositories

import (
	"errors"
	"time"

	projects_models "huddle/internal/features/projects/models"
	"huddle/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct{}

func (r *InvitationRepository) CreateInvitation(invitation *projects_models.ProjectInvitation) error {
	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}

	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = time.Now().UTC()
	}

	return storage.GetDb().Create(invitation).Error
}

func (r *InvitationRepository) GetInvitationByToken(token string) (*projects_models.ProjectInvitation, error) {
	var invitation projects_models.ProjectInvitation

	if err := storage.GetDb().Where("token = ?", token).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &invitation, nil
}

func (r *InvitationRepository) MarkAccepted(invitationID uuid.UUID) error {
	return storage.GetDb().
		Model(&projects_models.ProjectInvitation{}).
		Where("id = ?", invitationID).
		Update("accepted_at", time.Now().UTC()).Error
}
