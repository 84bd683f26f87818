package projects_interfaces

import "github.com/google/uuid"

type ProjectDeletionListener interface {
	OnBeforeProjectDeletion(projectID uuid.UUID) error
}

// MemberRemovalListener lets other features react when a member leaves a
// project. Tasks use it to unassign the removed member's tasks.
type MemberRemovalListener interface {
	OnMemberRemoved(projectID, userID uuid.UUID) error
}
