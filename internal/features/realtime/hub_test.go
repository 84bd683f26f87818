package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSubscriber struct {
	received [][]byte
	failSend bool
	closed   bool
}

func (f *fakeSubscriber) Send(payload []byte) bool {
	if f.failSend {
		return false
	}

	f.received = append(f.received, payload)
	return true
}

func (f *fakeSubscriber) Close() {
	f.closed = true
}

func Test_BroadcastToRoom_OnlyRoomMembersReceive(t *testing.T) {
	hub := NewHub()
	projectID := uuid.New()
	otherProjectID := uuid.New()

	inRoom := &fakeSubscriber{}
	elsewhere := &fakeSubscriber{}

	hub.JoinRoom(projectID, inRoom)
	hub.JoinRoom(otherProjectID, elsewhere)

	hub.BroadcastToRoom(projectID, []byte("hello"))

	assert.Len(t, inRoom.received, 1)
	assert.Empty(t, elsewhere.received)
}

func Test_JoinRoom_Twice_DeliversBroadcastOnce(t *testing.T) {
	hub := NewHub()
	projectID := uuid.New()
	client := &fakeSubscriber{}

	hub.JoinRoom(projectID, client)
	hub.JoinRoom(projectID, client)

	hub.BroadcastToRoom(projectID, []byte("once"))

	assert.Len(t, client.received, 1)
	assert.Equal(t, 1, hub.RoomSize(projectID))
}

func Test_LeaveRoom_StopsDelivery(t *testing.T) {
	hub := NewHub()
	projectID := uuid.New()
	client := &fakeSubscriber{}

	hub.JoinRoom(projectID, client)
	hub.LeaveRoom(projectID, client)

	hub.BroadcastToRoom(projectID, []byte("gone"))

	assert.Empty(t, client.received)
	assert.Equal(t, 0, hub.RoomSize(projectID))
}

func Test_SendToUser_AllConnectionsOfUserReceive(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	firstTab := &fakeSubscriber{}
	secondTab := &fakeSubscriber{}

	hub.RegisterUser(userID, firstTab)
	hub.RegisterUser(userID, secondTab)

	delivered := hub.SendToUser(userID, []byte("ping"))

	assert.True(t, delivered)
	assert.Len(t, firstTab.received, 1)
	assert.Len(t, secondTab.received, 1)
}

func Test_SendToUser_NoConnections_ReportsNotDelivered(t *testing.T) {
	hub := NewHub()

	delivered := hub.SendToUser(uuid.New(), []byte("ping"))

	assert.False(t, delivered)
}

func Test_RemoveConnection_CleansRoomsAndUserBinding(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	firstProject := uuid.New()
	secondProject := uuid.New()

	client := &fakeSubscriber{}
	hub.RegisterUser(userID, client)
	hub.JoinRoom(firstProject, client)
	hub.JoinRoom(secondProject, client)

	hub.RemoveConnection(client)

	assert.True(t, client.closed)
	assert.Equal(t, 0, hub.RoomSize(firstProject))
	assert.Equal(t, 0, hub.RoomSize(secondProject))
	assert.False(t, hub.IsUserConnected(userID))

	hub.BroadcastToRoom(firstProject, []byte("after"))
	assert.Empty(t, client.received)
}

func Test_RemoveConnection_OtherConnectionOfSameUserSurvives(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	closingTab := &fakeSubscriber{}
	survivingTab := &fakeSubscriber{}

	hub.RegisterUser(userID, closingTab)
	hub.RegisterUser(userID, survivingTab)

	hub.RemoveConnection(closingTab)

	assert.True(t, hub.IsUserConnected(userID))

	delivered := hub.SendToUser(userID, []byte("still here"))
	assert.True(t, delivered)
	assert.Len(t, survivingTab.received, 1)
	assert.Empty(t, closingTab.received)
}

func Test_BroadcastToRoom_FailingSubscriberIsDropped(t *testing.T) {
	hub := NewHub()
	projectID := uuid.New()

	healthy := &fakeSubscriber{}
	stuck := &fakeSubscriber{failSend: true}

	hub.JoinRoom(projectID, healthy)
	hub.JoinRoom(projectID, stuck)

	hub.BroadcastToRoom(projectID, []byte("first"))

	assert.True(t, stuck.closed)
	assert.Equal(t, 1, hub.RoomSize(projectID))

	hub.BroadcastToRoom(projectID, []byte("second"))
	assert.Len(t, healthy.received, 2)
}

func Test_Stats_CountsRoomsUsersAndConnections(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	projectID := uuid.New()

	client := &fakeSubscriber{}
	hub.RegisterUser(userID, client)
	hub.JoinRoom(projectID, client)

	rooms, users, connections := hub.Stats()

	assert.Equal(t, 1, rooms)
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, connections)
}
