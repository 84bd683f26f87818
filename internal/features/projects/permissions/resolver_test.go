package projects_permissions

import (
	"errors"
	"testing"

	projects_models "huddle/internal/features/projects/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeProjectStore struct {
	project *projects_models.Project
	err     error
}

func (s *fakeProjectStore) GetProjectByID(uuid.UUID) (*projects_models.Project, error) {
	return s.project, s.err
}

type fakeMembershipStore struct {
	membership *projects_models.ProjectMembership
	err        error
}

func (s *fakeMembershipStore) GetMembershipByUserAndProject(
	userID, projectID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	return s.membership, s.err
}

type fakeCapabilityStore struct {
	values map[string]*Capabilities
}

func newFakeCapabilityStore() *fakeCapabilityStore {
	return &fakeCapabilityStore{values: make(map[string]*Capabilities)}
}

func (s *fakeCapabilityStore) Get(key string) *Capabilities {
	return s.values[key]
}

func (s *fakeCapabilityStore) Set(key string, item *Capabilities) {
	s.values[key] = item
}

func (s *fakeCapabilityStore) Invalidate(key string) {
	delete(s.values, key)
}

func Test_CapabilitiesFor_UserIsCreator_GrantsEverything(t *testing.T) {
	creatorID := uuid.New()
	project := &projects_models.Project{
		ID:        uuid.New(),
		CreatorID: creatorID,
	}

	capabilities := CapabilitiesFor(project, nil, creatorID)

	assert.Equal(t, AllCapabilities(), capabilities)
	assert.True(t, capabilities.HasAny())
	assert.True(t, capabilities.CanManageMembers())
}

func Test_CapabilitiesFor_CreatorWithRestrictiveMembershipRow_StillGrantsEverything(t *testing.T) {
	creatorID := uuid.New()
	project := &projects_models.Project{
		ID:        uuid.New(),
		CreatorID: creatorID,
	}
	// membership row with every flag off must not demote the creator
	membership := &projects_models.ProjectMembership{
		UserID:    creatorID,
		ProjectID: project.ID,
	}

	capabilities := CapabilitiesFor(project, membership, creatorID)

	assert.Equal(t, AllCapabilities(), capabilities)
}

func Test_CapabilitiesFor_MemberWithFlags_ReflectsExactlyThoseFlags(t *testing.T) {
	userID := uuid.New()
	project := &projects_models.Project{
		ID:        uuid.New(),
		CreatorID: uuid.New(),
	}
	membership := &projects_models.ProjectMembership{
		UserID:         userID,
		ProjectID:      project.ID,
		CanManageTasks: true,
		CanChat:        true,
	}

	capabilities := CapabilitiesFor(project, membership, userID)

	assert.True(t, capabilities.IsMember)
	assert.False(t, capabilities.IsCreator)
	assert.True(t, capabilities.CanManageTasks)
	assert.True(t, capabilities.CanChat)
	assert.False(t, capabilities.CanManageFiles)
	assert.False(t, capabilities.CanChangeProjectName)
	assert.False(t, capabilities.CanAddMembers)
}

func Test_CapabilitiesFor_MemberWithAllFlagsOff_KeepsReadAccess(t *testing.T) {
	userID := uuid.New()
	project := &projects_models.Project{
		ID:        uuid.New(),
		CreatorID: uuid.New(),
	}
	membership := &projects_models.ProjectMembership{
		UserID:    userID,
		ProjectID: project.ID,
	}

	capabilities := CapabilitiesFor(project, membership, userID)

	assert.True(t, capabilities.HasAny())
	assert.False(t, capabilities.CanManageMembers())
	assert.False(t, capabilities.CanChat)
}

func Test_CapabilitiesFor_NoMembership_DeniesAccess(t *testing.T) {
	project := &projects_models.Project{
		ID:        uuid.New(),
		CreatorID: uuid.New(),
	}

	capabilities := CapabilitiesFor(project, nil, uuid.New())

	assert.Equal(t, Capabilities{}, capabilities)
	assert.False(t, capabilities.HasAny())
}

func Test_CapabilitiesFor_NilProject_DeniesAccess(t *testing.T) {
	capabilities := CapabilitiesFor(nil, nil, uuid.New())

	assert.False(t, capabilities.HasAny())
}

func Test_CanManageMembers_MemberWithAddMembersFlag_Allowed(t *testing.T) {
	capabilities := Capabilities{
		IsMember:      true,
		CanAddMembers: true,
	}

	assert.True(t, capabilities.CanManageMembers())
}

func Test_Resolve_WhenProjectLookupFails_DeniesWithoutCaching(t *testing.T) {
	capabilityStore := newFakeCapabilityStore()
	resolver := NewResolver(
		&fakeProjectStore{err: errors.New("connection refused")},
		&fakeMembershipStore{},
		capabilityStore,
	)

	capabilities := resolver.Resolve(uuid.New(), uuid.New())

	assert.False(t, capabilities.HasAny())
	assert.Empty(t, capabilityStore.values, "a transient failure must not be cached as denial")
}

func Test_Resolve_WhenMembershipLookupFails_DeniesWithoutCaching(t *testing.T) {
	capabilityStore := newFakeCapabilityStore()
	resolver := NewResolver(
		&fakeProjectStore{project: &projects_models.Project{ID: uuid.New(), CreatorID: uuid.New()}},
		&fakeMembershipStore{err: errors.New("connection refused")},
		capabilityStore,
	)

	capabilities := resolver.Resolve(uuid.New(), uuid.New())

	assert.False(t, capabilities.HasAny())
	assert.Empty(t, capabilityStore.values)
}

func Test_Resolve_WhenProjectAbsent_CachesTheDenial(t *testing.T) {
	capabilityStore := newFakeCapabilityStore()
	resolver := NewResolver(&fakeProjectStore{}, &fakeMembershipStore{}, capabilityStore)

	capabilities := resolver.Resolve(uuid.New(), uuid.New())

	assert.False(t, capabilities.HasAny())
	assert.Len(t, capabilityStore.values, 1)
}

func Test_Resolve_WhenCreator_CachesAndServesFromCache(t *testing.T) {
	creatorID := uuid.New()
	projectID := uuid.New()
	projectStore := &fakeProjectStore{
		project: &projects_models.Project{ID: projectID, CreatorID: creatorID},
	}
	capabilityStore := newFakeCapabilityStore()
	resolver := NewResolver(projectStore, &fakeMembershipStore{}, capabilityStore)

	first := resolver.Resolve(projectID, creatorID)
	assert.Equal(t, AllCapabilities(), first)
	assert.Len(t, capabilityStore.values, 1)

	// store now fails; the cached set still answers
	projectStore.err = errors.New("connection refused")
	projectStore.project = nil

	second := resolver.Resolve(projectID, creatorID)
	assert.Equal(t, AllCapabilities(), second)
}
