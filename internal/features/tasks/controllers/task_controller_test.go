package tasks_controllers

import (
	"net/http"
	"testing"

	projects_controllers "huddle/internal/features/projects/controllers"
	projects_dto "huddle/internal/features/projects/dto"
	projects_testing "huddle/internal/features/projects/testing"
	tasks_dto "huddle/internal/features/tasks/dto"
	tasks_models "huddle/internal/features/tasks/models"
	users_enums "huddle/internal/features/users/enums"
	users_testing "huddle/internal/features/users/testing"
	test_utils "huddle/internal/util/testing"

	"github.com/stretchr/testify/assert"
)

func Test_UpdateTask_WhenMemberManagesTasks_TaskUpdated(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		GetTaskController(),
	)

	creator := users_testing.CreateTestUser(users_enums.UserRoleMember)
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Release Board", creator.Token, router)
	projects_testing.AddMemberToProject(
		project.ID,
		member.Email,
		projects_dto.CapabilityFlagsDTO{CanManageTasks: true},
		creator.Token,
		router,
	)

	var task tasks_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/tasks",
		"Bearer "+creator.Token,
		tasks_dto.CreateTaskRequestDTO{Title: "Ship the release"},
		http.StatusCreated,
		&task,
	)

	newTitle := "Ship the release notes"
	var updated tasks_models.Task
	test_utils.MakePutRequestAndUnmarshal(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+member.Token,
		tasks_dto.UpdateTaskRequestDTO{Title: &newTitle},
		http.StatusOK,
		&updated,
	)

	assert.Equal(t, newTitle, updated.Title)
}

func Test_MoveTaskToTrash_WhenMemberManagesTasks_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		GetTaskController(),
	)

	creator := users_testing.CreateTestUser(users_enums.UserRoleMember)
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Delete Rights Board", creator.Token, router)
	projects_testing.AddMemberToProject(
		project.ID,
		member.Email,
		projects_dto.CapabilityFlagsDTO{CanManageTasks: true},
		creator.Token,
		router,
	)

	var task tasks_models.Task
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/tasks",
		"Bearer "+creator.Token,
		tasks_dto.CreateTaskRequestDTO{Title: "Untouchable task"},
		http.StatusCreated,
		&task,
	)

	// manage_tasks grants editing, never deletion
	resp := test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+member.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "only the project creator")

	test_utils.MakeDeleteRequest(
		t,
		router,
		"/api/v1/tasks/"+task.ID.String(),
		"Bearer "+creator.Token,
		http.StatusOK,
	)

	var trashed tasks_dto.ListTasksResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/tasks/trash",
		"Bearer "+creator.Token,
		http.StatusOK,
		&trashed,
	)
	assert.Len(t, trashed.Tasks, 1)
}
