package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_Fields(t *testing.T) {
	type itemData struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}

	data := itemData{ProductID: "prod-7", Quantity: 2}
	event, err := NewEvent("cart.item_added", "sess-42", "cart", "storefront-state", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID, "EventID should be a non-empty UUID")
	assert.Equal(t, "cart.item_added", event.EventType)
	assert.Equal(t, "sess-42", event.AggregateID)
	assert.Equal(t, "cart", event.AggregateType)
	assert.Equal(t, "storefront-state", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var roundTripped itemData
	require.NoError(t, json.Unmarshal(event.Data, &roundTripped))
	assert.Equal(t, data, roundTripped)
}

func TestNewEvent_InvalidData(t *testing.T) {
	// Channels are not serializable to JSON.
	_, err := NewEvent("cart.item_added", "sess-1", "cart", "storefront-state", make(chan int))
	require.Error(t, err)
}

func TestEvent_WithCorrelationID(t *testing.T) {
	event, err := NewEvent("cart.item_added", "sess-9", "cart", "storefront-state", map[string]string{"k": "v"})
	require.NoError(t, err)

	event.WithCorrelationID("corr-abc")

	raw, err := event.Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "corr-abc", decoded["correlation_id"])
}

func TestEvent_Marshal_OmitsEmptyCorrelationID(t *testing.T) {
	event, err := NewEvent("cart.item_added", "sess-9", "cart", "storefront-state", map[string]string{"k": "v"})
	require.NoError(t, err)

	raw, err := event.Marshal()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "correlation_id")
}
