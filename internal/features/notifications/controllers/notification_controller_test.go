package notifications_controllers

import (
	"fmt"
	"net/http"
	"testing"

	notifications_dto "huddle/internal/features/notifications/dto"
	notifications_models "huddle/internal/features/notifications/models"
	notifications_repositories "huddle/internal/features/notifications/repositories"
	projects_testing "huddle/internal/features/projects/testing"
	users_enums "huddle/internal/features/users/enums"
	users_testing "huddle/internal/features/users/testing"
	test_utils "huddle/internal/util/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MarkAllRead_WhenCalledTwice_SecondCallUpdatesNothing(t *testing.T) {
	router := projects_testing.CreateTestRouter(GetNotificationController())
	user := users_testing.CreateTestUser(users_enums.UserRoleMember)

	notificationRepository := &notifications_repositories.NotificationRepository{}
	for i := 0; i < 3; i++ {
		require.NoError(t, notificationRepository.CreateNotification(&notifications_models.Notification{
			RecipientID: user.UserID,
			Kind:        notifications_models.NotificationKindBroadcast,
			Message:     fmt.Sprintf("maintenance window %d", i+1),
		}))
	}

	var first notifications_dto.MarkReadResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications/mark-read",
		"Bearer "+user.Token,
		nil,
		http.StatusOK,
		&first,
	)
	assert.Equal(t, int64(3), first.Updated)

	var second notifications_dto.MarkReadResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications/mark-read",
		"Bearer "+user.Token,
		nil,
		http.StatusOK,
		&second,
	)
	assert.Equal(t, int64(0), second.Updated)

	var list notifications_dto.ListNotificationsResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/notifications",
		"Bearer "+user.Token,
		http.StatusOK,
		&list,
	)
	assert.Equal(t, int64(0), list.UnreadCount)
	assert.Len(t, list.Notifications, 3)
}
