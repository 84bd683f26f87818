package tasks_services

import (
	"fmt"
	"strings"

	tasks_models "huddle/internal/features/tasks/models"
)

const maxTitleLength = 255

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)

	if title == "" {
		return "", fmt.Errorf("task title is required")
	}
	if len(title) > maxTitleLength {
		return "", fmt.Errorf("task title exceeds %d characters", maxTitleLength)
	}

	return title, nil
}

func validateEstimatedHours(hours *float64) error {
	if hours != nil && *hours < 0 {
		return fmt.Errorf("estimated hours cannot be negative")
	}

	return nil
}

// parsePriority maps an optional request value to a priority, defaulting
// to medium.
func parsePriority(raw string) (tasks_models.TaskPriority, error) {
	if raw == "" {
		return tasks_models.TaskPriorityMedium, nil
	}

	priority := tasks_models.TaskPriority(strings.ToUpper(raw))
	if !priority.IsValid() {
		return "", fmt.Errorf("invalid task priority: %q", raw)
	}

	return priority, nil
}

func parseStatus(raw string) (tasks_models.TaskStatus, error) {
	status := tasks_models.TaskStatus(strings.ToUpper(raw))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %q", raw)
	}

	return status, nil
}
