package realtime

import (
	"sync"

	projects_permissions "huddle/internal/features/projects/permissions"
	users_services "huddle/internal/features/users/services"
	"huddle/internal/util/logger"
)

var (
	setupOnce sync.Once

	hub                *Hub
	realtimeService    *RealtimeService
	realtimeController *RealtimeController
)

func setup() {
	setupOnce.Do(func() {
		hub = NewHub()
		realtimeService = NewRealtimeService(hub, projects_permissions.GetResolver(), logger.GetLogger())
		realtimeController = NewRealtimeController(
			realtimeService,
			users_services.GetUserService(),
			logger.GetLogger(),
		)
	})
}

func GetHub() *Hub {
	setup()
	return hub
}

func GetRealtimeService() *RealtimeService {
	setup()
	return realtimeService
}

func GetRealtimeController() *RealtimeController {
	setup()
	return realtimeController
}
