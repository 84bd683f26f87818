package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_DecodeEnvelope_KnownInboundEvent_ReturnsEnvelope(t *testing.T) {
	projectID := uuid.New()
	raw := []byte(`{"event":"joinProject","data":{"projectId":"` + projectID.String() + `"}}`)

	envelope, err := DecodeEnvelope(raw)

	assert.NoError(t, err)
	assert.Equal(t, EventJoinProject, envelope.Event)

	var payload JoinProjectPayload
	assert.NoError(t, json.Unmarshal(envelope.Data, &payload))
	assert.Equal(t, projectID, payload.ProjectID)
}

func Test_DecodeEnvelope_UnknownEventKind_ReturnsError(t *testing.T) {
	raw := []byte(`{"event":"dropAllTables","data":{}}`)

	envelope, err := DecodeEnvelope(raw)

	assert.Error(t, err)
	assert.Nil(t, envelope)
	assert.Contains(t, err.Error(), "unknown inbound event")
}

func Test_DecodeEnvelope_OutboundEventFromClient_Rejected(t *testing.T) {
	raw := []byte(`{"event":"receiveMessage","data":{}}`)

	envelope, err := DecodeEnvelope(raw)

	assert.Error(t, err)
	assert.Nil(t, envelope)
}

func Test_DecodeEnvelope_MalformedJSON_ReturnsErrorWithoutPanic(t *testing.T) {
	for _, raw := range [][]byte{
		[]byte(``),
		[]byte(`not json`),
		[]byte(`{"event":`),
		[]byte(`[]`),
	} {
		envelope, err := DecodeEnvelope(raw)

		assert.Error(t, err)
		assert.Nil(t, envelope)
	}
}

func Test_EncodeEvent_ProducesDecodableEnvelope(t *testing.T) {
	raw, err := EncodeEvent(EventChatError, ChatErrorPayload{Message: "nope"})

	assert.NoError(t, err)

	var envelope Envelope
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, EventChatError, envelope.Event)

	var payload ChatErrorPayload
	assert.NoError(t, json.Unmarshal(envelope.Data, &payload))
	assert.Equal(t, "nope", payload.Message)
}

func Test_IsInbound_OutboundKinds_ReturnFalse(t *testing.T) {
	outbound := []EventKind{
		EventReceiveMessage,
		EventChatError,
		EventReactionsUpdated,
		EventTaskUpdated,
		EventReceiveNotification,
	}

	for _, kind := range outbound {
		assert.False(t, kind.IsInbound(), "kind %s", kind)
	}
}
