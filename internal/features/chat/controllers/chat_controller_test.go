package chat_controllers

import (
	"net/http"
	"testing"

	chat_dto "huddle/internal/features/chat/dto"
	chat_services "huddle/internal/features/chat/services"
	projects_controllers "huddle/internal/features/projects/controllers"
	projects_dto "huddle/internal/features/projects/dto"
	projects_testing "huddle/internal/features/projects/testing"
	users_enums "huddle/internal/features/users/enums"
	users_testing "huddle/internal/features/users/testing"
	test_utils "huddle/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ToggleReaction_WhenToggledTwiceBySameUser_AggregateIsEmpty(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		GetChatController(),
	)

	creator := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Reaction Board", creator.Token, router)

	chatService := chat_services.GetChatService()
	creatorUser := users_testing.GetTestUser(creator.UserID)

	require.NoError(t, chatService.SendMessage(creatorUser, project.ID, "release is ready"))

	var list chat_dto.ListMessagesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/messages",
		"Bearer "+creator.Token,
		http.StatusOK,
		&list,
	)
	require.Len(t, list.Messages, 1)
	messageID := list.Messages[0].ID

	reactionsURL := "/api/v1/projects/" + project.ID.String() +
		"/messages/" + messageID.String() + "/reactions"

	require.NoError(t, chatService.ToggleReaction(creatorUser, project.ID, messageID, "👍"))

	var afterFirst chat_dto.ReactionsUpdatedDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, reactionsURL, "Bearer "+creator.Token, http.StatusOK, &afterFirst)
	assert.Equal(t, 1, afterFirst.Reactions["👍"])

	require.NoError(t, chatService.ToggleReaction(creatorUser, project.ID, messageID, "👍"))

	var afterSecond chat_dto.ReactionsUpdatedDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t, router, reactionsURL, "Bearer "+creator.Token, http.StatusOK, &afterSecond)
	assert.Empty(t, afterSecond.Reactions)
}

func Test_ToggleReaction_ByTwoUsers_CountsBoth(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		GetChatController(),
	)

	creator := users_testing.CreateTestUser(users_enums.UserRoleMember)
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Shared Reactions", creator.Token, router)
	projects_testing.AddMemberToProject(
		project.ID,
		member.Email,
		projects_dto.CapabilityFlagsDTO{CanChat: true},
		creator.Token,
		router,
	)

	chatService := chat_services.GetChatService()
	creatorUser := users_testing.GetTestUser(creator.UserID)
	memberUser := users_testing.GetTestUser(member.UserID)

	require.NoError(t, chatService.SendMessage(creatorUser, project.ID, "standup in five"))

	var list chat_dto.ListMessagesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/messages",
		"Bearer "+creator.Token,
		http.StatusOK,
		&list,
	)
	require.Len(t, list.Messages, 1)
	messageID := list.Messages[0].ID

	require.NoError(t, chatService.ToggleReaction(creatorUser, project.ID, messageID, "🎉"))
	require.NoError(t, chatService.ToggleReaction(memberUser, project.ID, messageID, "🎉"))

	var aggregate chat_dto.ReactionsUpdatedDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/messages/"+messageID.String()+"/reactions",
		"Bearer "+creator.Token,
		http.StatusOK,
		&aggregate,
	)
	assert.Equal(t, 2, aggregate.Reactions["🎉"])
}

func Test_SendMessage_WhenMemberCannotChat_NoMessagePersisted(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		GetChatController(),
	)

	creator := users_testing.CreateTestUser(users_enums.UserRoleMember)
	member := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Quiet Project", creator.Token, router)
	projects_testing.AddMemberToProject(
		project.ID,
		member.Email,
		projects_dto.CapabilityFlagsDTO{CanManageTasks: true},
		creator.Token,
		router,
	)

	memberUser := users_testing.GetTestUser(member.UserID)

	err := chat_services.GetChatService().SendMessage(memberUser, project.ID, "am I muted?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission to chat")

	var list chat_dto.ListMessagesResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/messages",
		"Bearer "+creator.Token,
		http.StatusOK,
		&list,
	)
	assert.Empty(t, list.Messages)
	assert.Equal(t, int64(0), list.Total)
}

func Test_GetMessages_WhenNotAMember_ReturnsForbidden(t *testing.T) {
	router := projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetMembershipController(),
		GetChatController(),
	)

	creator := users_testing.CreateTestUser(users_enums.UserRoleMember)
	outsider := users_testing.CreateTestUser(users_enums.UserRoleMember)
	project := projects_testing.CreateTestProject("Private Chat", creator.Token, router)

	resp := test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/projects/"+project.ID.String()+"/messages",
		"Bearer "+outsider.Token,
		http.StatusForbidden,
	)
	assert.Contains(t, string(resp.Body), "access")
}
