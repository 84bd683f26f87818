package realtime

import (
	"encoding/json"
	"testing"

	users_models "huddle/internal/features/users/models"
	"huddle/internal/util/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uuid.UUID) *Client {
	return NewClient(nil, &users_models.User{ID: userID}, logger.GetLogger())
}

func receiveChatError(t *testing.T, client *Client) string {
	t.Helper()

	select {
	case raw := <-client.send:
		var envelope Envelope
		require.NoError(t, json.Unmarshal(raw, &envelope))
		require.Equal(t, EventChatError, envelope.Event)

		var payload ChatErrorPayload
		require.NoError(t, json.Unmarshal(envelope.Data, &payload))
		return payload.Message

	default:
		t.Fatal("expected a chatError event on the client queue")
		return ""
	}
}

func Test_HandleInbound_MalformedFrame_SendsChatError(t *testing.T) {
	service := NewRealtimeService(NewHub(), nil, logger.GetLogger())
	client := newTestClient(uuid.New())

	service.HandleInbound(client, []byte("{broken"))

	message := receiveChatError(t, client)
	assert.Contains(t, message, "malformed")
}

func Test_HandleInbound_UnknownEventKind_SendsChatError(t *testing.T) {
	service := NewRealtimeService(NewHub(), nil, logger.GetLogger())
	client := newTestClient(uuid.New())

	service.HandleInbound(client, []byte(`{"event":"selfDestruct","data":{}}`))

	message := receiveChatError(t, client)
	assert.Contains(t, message, "unknown inbound event")
}

func Test_HandleInbound_RegisterUserWithForeignIdentity_Rejected(t *testing.T) {
	hub := NewHub()
	service := NewRealtimeService(hub, nil, logger.GetLogger())
	client := newTestClient(uuid.New())

	impersonated := uuid.New()
	raw := []byte(`{"event":"registerUser","data":{"userId":"` + impersonated.String() + `"}}`)

	service.HandleInbound(client, raw)

	message := receiveChatError(t, client)
	assert.Contains(t, message, "does not match")
	assert.False(t, hub.IsUserConnected(impersonated))
}

func Test_HandleInbound_RegisterUserWithOwnIdentity_BindsConnection(t *testing.T) {
	hub := NewHub()
	service := NewRealtimeService(hub, nil, logger.GetLogger())

	userID := uuid.New()
	client := newTestClient(userID)

	raw := []byte(`{"event":"registerUser","data":{"userId":"` + userID.String() + `"}}`)
	service.HandleInbound(client, raw)

	assert.True(t, hub.IsUserConnected(userID))
	assert.Empty(t, client.send)
}

func Test_HandleInbound_SendMessageWithoutChatFeature_SendsChatError(t *testing.T) {
	service := NewRealtimeService(NewHub(), nil, logger.GetLogger())
	client := newTestClient(uuid.New())

	raw := []byte(`{"event":"sendMessage","data":{"projectId":"` + uuid.New().String() + `","content":"hi"}}`)
	service.HandleInbound(client, raw)

	message := receiveChatError(t, client)
	assert.Contains(t, message, "chat is not available")
}

func Test_HandleInbound_LeaveProjectNeverJoined_IsNoOp(t *testing.T) {
	hub := NewHub()
	service := NewRealtimeService(hub, nil, logger.GetLogger())
	client := newTestClient(uuid.New())

	raw := []byte(`{"event":"leaveProject","data":{"projectId":"` + uuid.New().String() + `"}}`)
	service.HandleInbound(client, raw)

	assert.Empty(t, client.send)
}

func Test_HandleDisconnect_UnbindsUserAndClosesSendQueue(t *testing.T) {
	hub := NewHub()
	service := NewRealtimeService(hub, nil, logger.GetLogger())

	userID := uuid.New()
	client := newTestClient(userID)
	service.HandleConnect(client)
	require.True(t, hub.IsUserConnected(userID))

	service.HandleDisconnect(client)

	assert.False(t, hub.IsUserConnected(userID))
	// the queue is closed, so the write pump exits instead of idling
	// until its next ping
	assert.False(t, client.Send([]byte(`{}`)))
}
