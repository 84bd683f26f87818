package trash

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"huddle/internal/config"
	projects_services "huddle/internal/features/projects/services"
	tasks_repositories "huddle/internal/features/tasks/repositories"
)

const (
	retentionPeriodDays = 30
	purgeInterval       = 1 * time.Hour
)

// TrashRetentionService permanently purges trashed projects and tasks
// once they have sat in the trash past the retention period.
type TrashRetentionService struct {
	projectService *projects_services.ProjectService
	taskRepository *tasks_repositories.TaskRepository
	logger         *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (s *TrashRetentionService) StartWorkers() {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting trash retention worker",
		slog.Duration("interval", purgeInterval),
		slog.Int("retentionDays", retentionPeriodDays))

	s.wg.Add(1)
	go s.purgeWorker()
}

func (s *TrashRetentionService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// ExecuteAllTasksForTest runs one purge cycle synchronously.
func (s *TrashRetentionService) ExecuteAllTasksForTest() error {
	return s.purgeExpiredTrash()
}

func (s *TrashRetentionService) purgeWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Trash retention worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Trash retention worker shutting down")
			return

		case <-ticker.C:
			if err := s.purgeExpiredTrash(); err != nil {
				s.logger.Error("Error during trash purge", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *TrashRetentionService) purgeExpiredTrash() error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionPeriodDays)

	projectIDs, err := s.projectService.GetTrashedProjectIDsBefore(cutoff)
	if err != nil {
		return fmt.Errorf("failed to list expired trashed projects: %w", err)
	}

	purgeFailures := 0
	for _, projectID := range projectIDs {
		if err := s.projectService.PurgeProject(projectID); err != nil {
			purgeFailures++
			s.logger.Error("Failed to purge trashed project",
				slog.String("projectId", projectID.String()),
				slog.String("error", err.Error()))
			continue
		}

		s.logger.Info("Purged trashed project",
			slog.String("projectId", projectID.String()))
	}

	// tasks trashed individually, outside a project cascade
	purgedTasks, err := s.taskRepository.PurgeTrashedBefore(cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge expired trashed tasks: %w", err)
	}

	if len(projectIDs) > 0 || purgedTasks > 0 {
		s.logger.Info("Trash purge completed",
			slog.Int("projectsPurged", len(projectIDs)-purgeFailures),
			slog.Int64("tasksPurged", purgedTasks))
	}

	if purgeFailures > 0 {
		return fmt.Errorf("trash purge failed for %d projects", purgeFailures)
	}

	return nil
}
