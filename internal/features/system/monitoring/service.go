package system_monitoring

import (
	"fmt"
	"runtime"
	"time"

	"huddle/internal/features/realtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

type SystemStatus struct {
	Uptime          string  `json:"uptime"`
	Goroutines      int     `json:"goroutines"`
	CPUPercent      float64 `json:"cpuPercent"`
	MemoryUsedMB    float64 `json:"memoryUsedMb"`
	MemoryTotalMB   float64 `json:"memoryTotalMb"`
	MemoryPercent   float64 `json:"memoryPercent"`
	DiskUsedGB      float64 `json:"diskUsedGb"`
	DiskTotalGB     float64 `json:"diskTotalGb"`
	DiskPercent     float64 `json:"diskPercent"`
	ConnectedRooms  int     `json:"connectedRooms"`
	ConnectedUsers  int     `json:"connectedUsers"`
	OpenConnections int     `json:"openConnections"`
}

type MonitoringService struct {
	hub       *realtime.Hub
	startedAt time.Time
}

func NewMonitoringService(hub *realtime.Hub) *MonitoringService {
	return &MonitoringService{
		hub:       hub,
		startedAt: time.Now().UTC(),
	}
}

func (s *MonitoringService) GetSystemStatus() (*SystemStatus, error) {
	status := &SystemStatus{
		Uptime:     time.Since(s.startedAt).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}

	memory, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to read memory stats: %w", err)
	}
	status.MemoryUsedMB = float64(memory.Used) / 1024 / 1024
	status.MemoryTotalMB = float64(memory.Total) / 1024 / 1024
	status.MemoryPercent = memory.UsedPercent

	usage, err := disk.Usage("/")
	if err != nil {
		return nil, fmt.Errorf("failed to read disk stats: %w", err)
	}
	status.DiskUsedGB = float64(usage.Used) / 1024 / 1024 / 1024
	status.DiskTotalGB = float64(usage.Total) / 1024 / 1024 / 1024
	status.DiskPercent = usage.UsedPercent

	rooms, users, connections := s.hub.Stats()
	status.ConnectedRooms = rooms
	status.ConnectedUsers = users
	status.OpenConnections = connections

	return status, nil
}
