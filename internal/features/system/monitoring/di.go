package system_monitoring

import (
	"sync"

	"huddle/internal/features/realtime"
)

var (
	setupOnce            sync.Once
	monitoringController *MonitoringController
)

func GetMonitoringController() *MonitoringController {
	setupOnce.Do(func() {
		monitoringController = &MonitoringController{
			monitoringService: NewMonitoringService(realtime.GetHub()),
		}
	})

	return monitoringController
}
