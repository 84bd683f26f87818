package projects_permissions

import (
	projects_models "huddle/internal/features/projects/models"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Capabilities is the effective capability set of a user within a project.
// The zero value means no access.
type Capabilities struct {
	IsMember             bool `json:"isMember"`
	IsCreator            bool `json:"isCreator"`
	CanManageTasks       bool `json:"canManageTasks"`
	CanManageFiles       bool `json:"canManageFiles"`
	CanChat              bool `json:"canChat"`
	CanChangeProjectName bool `json:"canChangeProjectName"`
	CanAddMembers        bool `json:"canAddMembers"`
}

func AllCapabilities() Capabilities {
	return Capabilities{
		IsMember:             true,
		IsCreator:            true,
		CanManageTasks:       true,
		CanManageFiles:       true,
		CanChat:              true,
		CanChangeProjectName: true,
		CanAddMembers:        true,
	}
}

// HasAny reports whether the user may access the project at all. A member
// whose capability flags are all false may still read the project.
func (c Capabilities) HasAny() bool {
	return c.IsMember
}

// CanManageMembers gates membership mutations: only the creator or a
// member holding canAddMembers may add, update or remove members.
func (c Capabilities) CanManageMembers() bool {
	return c.IsCreator || c.CanAddMembers
}

// CapabilitiesFor computes the capability set from the membership records.
// Creator status overrides everything; a missing membership means no access.
func CapabilitiesFor(
	project *projects_models.Project,
	membership *projects_models.ProjectMembership,
	userID uuid.UUID,
) Capabilities {
	if project == nil {
		return Capabilities{}
	}

	if project.CreatorID == userID {
		return AllCapabilities()
	}

	if membership == nil {
		return Capabilities{}
	}

	return Capabilities{
		IsMember:             true,
		CanManageTasks:       membership.CanManageTasks,
		CanManageFiles:       membership.CanManageFiles,
		CanChat:              membership.CanChat,
		CanChangeProjectName: membership.CanChangeProjectName,
		CanAddMembers:        membership.CanAddMembers,
	}
}

// Resolver answers "what may this user do in this project". Results are
// cached in Valkey and recomputed under singleflight so that a room full
// of clients cannot stampede the database.
//
// Resolve never returns an error: any lookup failure degrades to the
// all-false set, so callers fall back to read-only instead of crashing.
type projectStore interface {
	GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error)
}

type membershipStore interface {
	GetMembershipByUserAndProject(userID, projectID uuid.UUID) (*projects_models.ProjectMembership, error)
}

type capabilityStore interface {
	Get(key string) *Capabilities
	Set(key string, item *Capabilities)
	Invalidate(key string)
}

type Resolver struct {
	projectRepository    projectStore
	membershipRepository membershipStore
	capabilityCache      capabilityStore
	singleflight         singleflight.Group
}

func NewResolver(
	projectRepository projectStore,
	membershipRepository membershipStore,
	capabilityCache capabilityStore,
) *Resolver {
	return &Resolver{
		projectRepository:    projectRepository,
		membershipRepository: membershipRepository,
		capabilityCache:      capabilityCache,
	}
}

func (r *Resolver) Resolve(projectID, userID uuid.UUID) Capabilities {
	cacheKey := projectID.String() + ":" + userID.String()

	if cached := r.capabilityCache.Get(cacheKey); cached != nil {
		return *cached
	}

	result, _, _ := r.singleflight.Do(cacheKey, func() (any, error) {
		capabilities, resolved := r.resolveFromStore(projectID, userID)
		if resolved {
			r.capabilityCache.Set(cacheKey, &capabilities)
		}
		return capabilities, nil
	})

	capabilities, ok := result.(Capabilities)
	if !ok {
		return Capabilities{}
	}

	return capabilities
}

// Invalidate drops the cached capability set after a membership mutation.
func (r *Resolver) Invalidate(projectID, userID uuid.UUID) {
	r.capabilityCache.Invalidate(projectID.String() + ":" + userID.String())
}

// resolveFromStore computes the capability set from the database. The
// second return value is false on a lookup failure; only a genuinely
// absent project or membership may be cached, a transient failure must
// not deny the user for a full cache TTL.
func (r *Resolver) resolveFromStore(projectID, userID uuid.UUID) (Capabilities, bool) {
	project, err := r.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return Capabilities{}, false
	}
	if project == nil {
		return Capabilities{}, true
	}

	if project.CreatorID == userID {
		return AllCapabilities(), true
	}

	membership, err := r.membershipRepository.GetMembershipByUserAndProject(userID, projectID)
	if err != nil {
		return Capabilities{}, false
	}

	return CapabilitiesFor(project, membership, userID), true
}
