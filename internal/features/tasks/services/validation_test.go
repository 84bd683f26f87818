package tasks_services

import (
	"strings"
	"testing"

	tasks_models "huddle/internal/features/tasks/models"

	"github.com/stretchr/testify/assert"
)

func Test_ValidateTitle_TrimsWhitespace(t *testing.T) {
	title, err := validateTitle("  ship the release  ")

	assert.NoError(t, err)
	assert.Equal(t, "ship the release", title)
}

func Test_ValidateTitle_EmptyOrBlank_ReturnsError(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := validateTitle(raw)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "required")
	}
}

func Test_ValidateTitle_TooLong_ReturnsError(t *testing.T) {
	_, err := validateTitle(strings.Repeat("x", maxTitleLength+1))

	assert.Error(t, err)
}

func Test_ValidateEstimatedHours_NegativeValue_ReturnsError(t *testing.T) {
	negative := -1.5

	assert.Error(t, validateEstimatedHours(&negative))
}

func Test_ValidateEstimatedHours_NilAndZero_Allowed(t *testing.T) {
	zero := 0.0

	assert.NoError(t, validateEstimatedHours(nil))
	assert.NoError(t, validateEstimatedHours(&zero))
}

func Test_ParsePriority_EmptyDefaultsToMedium(t *testing.T) {
	priority, err := parsePriority("")

	assert.NoError(t, err)
	assert.Equal(t, tasks_models.TaskPriorityMedium, priority)
}

func Test_ParsePriority_CaseInsensitive(t *testing.T) {
	priority, err := parsePriority("high")

	assert.NoError(t, err)
	assert.Equal(t, tasks_models.TaskPriorityHigh, priority)
}

func Test_ParsePriority_UnknownValue_ReturnsError(t *testing.T) {
	_, err := parsePriority("urgent")

	assert.Error(t, err)
}

func Test_ParseStatus_AllWorkflowStates_Accepted(t *testing.T) {
	for raw, want := range map[string]tasks_models.TaskStatus{
		"todo":        tasks_models.TaskStatusTodo,
		"IN_PROGRESS": tasks_models.TaskStatusInProgress,
		"completed":   tasks_models.TaskStatusCompleted,
	} {
		status, err := parseStatus(raw)

		assert.NoError(t, err)
		assert.Equal(t, want, status)
	}
}

func Test_ParseStatus_UnknownValue_ReturnsError(t *testing.T) {
	_, err := parseStatus("archived")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid task status")
}
