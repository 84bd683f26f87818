package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// EventKind is the closed set of realtime event names. Inbound events are
// sent by clients, outbound events are pushed by the server. Anything
// outside this set is rejected before payload decoding.
type EventKind string

const (
	// inbound
	EventRegisterUser   EventKind = "registerUser"
	EventJoinProject    EventKind = "joinProject"
	EventLeaveProject   EventKind = "leaveProject"
	EventSendMessage    EventKind = "sendMessage"
	EventToggleReaction EventKind = "toggleReaction"

	// outbound
	EventReceiveMessage      EventKind = "receiveMessage"
	EventChatError           EventKind = "chatError"
	EventReactionsUpdated    EventKind = "reactionsUpdated"
	EventTaskUpdated         EventKind = "taskUpdated"
	EventReceiveNotification EventKind = "receiveNotification"
)

func (k EventKind) IsInbound() bool {
	switch k {
	case EventRegisterUser, EventJoinProject, EventLeaveProject, EventSendMessage, EventToggleReaction:
		return true
	default:
		return false
	}
}

// Envelope is the wire format of every realtime event: a tagged kind plus
// a kind-specific payload.
type Envelope struct {
	Event EventKind       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type RegisterUserPayload struct {
	UserID uuid.UUID `json:"userId"`
}

type JoinProjectPayload struct {
	ProjectID uuid.UUID `json:"projectId"`
}

type LeaveProjectPayload struct {
	ProjectID uuid.UUID `json:"projectId"`
}

type SendMessagePayload struct {
	ProjectID uuid.UUID `json:"projectId"`
	Content   string    `json:"content"`
}

type ToggleReactionPayload struct {
	ProjectID uuid.UUID `json:"projectId"`
	MessageID uuid.UUID `json:"messageId"`
	Emoji     string    `json:"emoji"`
}

type ChatErrorPayload struct {
	Message string `json:"message"`
}

// DecodeEnvelope parses raw bytes into an envelope and verifies the event
// kind is a known inbound one. Malformed input never panics the read loop.
func DecodeEnvelope(raw []byte) (*Envelope, error) {
	var envelope Envelope

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("malformed event envelope: %w", err)
	}

	if !envelope.Event.IsInbound() {
		return nil, fmt.Errorf("unknown inbound event kind: %q", envelope.Event)
	}

	return &envelope, nil
}

// EncodeEvent builds the wire form of an outbound event.
func EncodeEvent(kind EventKind, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}

	return json.Marshal(Envelope{Event: kind, Data: data})
}

// decodePayload unpacks the data field of an already validated envelope.
func decodePayload(envelope *Envelope, target any) error {
	if len(envelope.Data) == 0 {
		return fmt.Errorf("event %q is missing its payload", envelope.Event)
	}

	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("malformed %s payload: %w", envelope.Event, err)
	}

	return nil
}
