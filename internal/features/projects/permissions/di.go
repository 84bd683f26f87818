package projects_permissions

import (
	"sync"

	"huddle/internal/cache"
	projects_repositories "huddle/internal/features/projects/repositories"
	cache_utils "huddle/internal/util/cache"
)

var (
	resolver     *Resolver
	resolverOnce sync.Once
)

func GetResolver() *Resolver {
	resolverOnce.Do(func() {
		resolver = NewResolver(
			&projects_repositories.ProjectRepository{},
			&projects_repositories.MembershipRepository{},
			cache_utils.NewCacheUtil[Capabilities](cache.GetCache(), "huddle_caps:"),
		)
	})

	return resolver
}
