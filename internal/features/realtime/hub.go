package realtime

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber abstracts a connected client so the hub can be exercised
// without a live websocket.
type Subscriber interface {
	Send(payload []byte) bool
	Close()
}

// Hub tracks which connections are subscribed to which project rooms and
// keeps an explicit user-id to connection-set multimap for targeted
// notification push (one user may hold several tabs).
//
// Room membership is in-memory only: after a reconnect the client must
// re-issue joinProject for every room it wants back.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[Subscriber]struct{}
	users map[uuid.UUID]map[Subscriber]struct{}
	// reverse indexes so a closing connection removes its exact entries
	joinedRooms map[Subscriber]map[uuid.UUID]struct{}
	boundUser   map[Subscriber]uuid.UUID
}

func NewHub() *Hub {
	return &Hub{
		rooms:       make(map[uuid.UUID]map[Subscriber]struct{}),
		users:       make(map[uuid.UUID]map[Subscriber]struct{}),
		joinedRooms: make(map[Subscriber]map[uuid.UUID]struct{}),
		boundUser:   make(map[Subscriber]uuid.UUID),
	}
}

// RegisterUser binds a connection to a user identity for targeted pushes.
func (h *Hub) RegisterUser(userID uuid.UUID, client Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[Subscriber]struct{})
	}

	h.users[userID][client] = struct{}{}
	h.boundUser[client] = userID
}

// JoinRoom subscribes a connection to a project room. Joining twice is a no-op.
func (h *Hub) JoinRoom(projectID uuid.UUID, client Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[projectID]; !ok {
		h.rooms[projectID] = make(map[Subscriber]struct{})
	}

	h.rooms[projectID][client] = struct{}{}

	if _, ok := h.joinedRooms[client]; !ok {
		h.joinedRooms[client] = make(map[uuid.UUID]struct{})
	}

	h.joinedRooms[client][projectID] = struct{}{}
}

func (h *Hub) LeaveRoom(projectID uuid.UUID, client Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(projectID, client)
}

// RemoveConnection drops a closed connection from every room and from the
// user multimap.
func (h *Hub) RemoveConnection(client Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for projectID := range h.joinedRooms[client] {
		h.removeFromRoom(projectID, client)
	}

	delete(h.joinedRooms, client)

	if userID, ok := h.boundUser[client]; ok {
		delete(h.boundUser, client)

		if connections, ok := h.users[userID]; ok {
			delete(connections, client)
			if len(connections) == 0 {
				delete(h.users, userID)
			}
		}
	}
}

// BroadcastToRoom delivers a payload to every connection currently joined
// to the room, including the sender's other tabs. Connections that cannot
// accept the payload are closed and dropped.
func (h *Hub) BroadcastToRoom(projectID uuid.UUID, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.rooms[projectID] {
		if !client.Send(payload) {
			h.dropConnection(client)
		}
	}
}

// SendToUser delivers a payload to every registered connection of a user.
// Returns true if at least one connection accepted it.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := false
	for client := range h.users[userID] {
		if client.Send(payload) {
			delivered = true
		} else {
			h.dropConnection(client)
		}
	}

	return delivered
}

// IsUserConnected reports whether the user has at least one registered
// connection. Used by the notification fan-out to decide between an
// immediate push and lazy delivery on next poll.
func (h *Hub) IsUserConnected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.users[userID]) > 0
}

func (h *Hub) RoomSize(projectID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[projectID])
}

// Stats returns active room, user and connection counts for monitoring.
func (h *Hub) Stats() (rooms, users, connections int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms), len(h.users), len(h.boundUser)
}

// removeFromRoom must be called with the lock held.
func (h *Hub) removeFromRoom(projectID uuid.UUID, client Subscriber) {
	if clients, ok := h.rooms[projectID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, projectID)
		}
	}

	if rooms, ok := h.joinedRooms[client]; ok {
		delete(rooms, projectID)
	}
}

// dropConnection must be called with the lock held.
func (h *Hub) dropConnection(client Subscriber) {
	client.Close()

	for projectID := range h.joinedRooms[client] {
		h.removeFromRoom(projectID, client)
	}

	delete(h.joinedRooms, client)

	if userID, ok := h.boundUser[client]; ok {
		delete(h.boundUser, client)

		if connections, ok := h.users[userID]; ok {
			delete(connections, client)
			if len(connections) == 0 {
				delete(h.users, userID)
			}
		}
	}
}
