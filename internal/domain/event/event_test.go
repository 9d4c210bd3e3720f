package event

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swapo-org/swapo-backend/internal/domain/valueobject"
)

func TestDecode_ReturnsValueTypes(t *testing.T) {
	original := TradeStatusChanged{TradeID: uuid.New(), Status: valueobject.TradeStatusInProgress}
	payload, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := Decode(original.EventName(), payload)
	require.NoError(t, err)

	got, ok := decoded.(TradeStatusChanged)
	require.True(t, ok, "expected value type, got %T", decoded)
	assert.Equal(t, original, got)
}

func TestDecode_UnknownName(t *testing.T) {
	_, err := Decode("order.created", []byte(`{}`))
	assert.Error(t, err)
}

func TestDecode_BadPayload(t *testing.T) {
	_, err := Decode(NameMessageSent, []byte(`{"message_id":"x"}`))
	assert.Error(t, err)
}
