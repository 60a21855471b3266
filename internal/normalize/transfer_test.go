package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransfers_EmptyAndUnrecognizedShapes(t *testing.T) {
	assert.Empty(t, Transfers(nil))
	assert.Empty(t, Transfers(decode(t, `{}`)))
	assert.Empty(t, Transfers(decode(t, `[]`)))
	assert.Empty(t, Transfers(decode(t, `{"data": {"unrelated": []}}`)))
	assert.NotNil(t, Transfers(nil))
}

func TestTransfers_ShapeMerging(t *testing.T) {
	// Every branch the backend has used for transfer lists.
	bare := Transfers(decode(t, `[{"id": "t-1"}]`))
	assert.Len(t, bare, 1)

	data := Transfers(decode(t, `{"data": [{"id": "t-2"}]}`))
	assert.Len(t, data, 1)

	named := Transfers(decode(t, `{"transfers": [{"id": "t-3"}]}`))
	assert.Len(t, named, 1)

	nested := Transfers(decode(t, `{"data": {"transfers": [{"id": "t-4"}]}}`))
	assert.Len(t, nested, 1)

	// Sibling branches merge instead of shadowing each other.
	merged := Transfers(decode(t, `{
		"transfers": [{"id": "t-5"}],
		"data": {"transfers": [{"id": "t-6"}]}
	}`))
	require.Len(t, merged, 2)
	assert.Equal(t, "t-6", merged[1].ID)
}

func TestTransfers_StatusClassification(t *testing.T) {
	payload := decode(t, `[
		{"id": "a", "status": "Completed"},
		{"id": "b", "status": "done"},
		{"id": "c", "status": "received"},
		{"id": "d", "status": "pending"},
		{"id": "e", "status": "in progress"},
		{"id": "f", "status": "in_progress"},
		{"id": "g", "status": "sent"},
		{"id": "h", "status": "cancelled"},
		{"id": "i", "status": "canceled"},
		{"id": "j", "status": "void"},
		{"id": "k", "status": "who knows"}
	]`)

	transfers := Transfers(payload)
	require.Len(t, transfers, 11)

	// Status strings are folded to lower case before classification.
	assert.Equal(t, "completed", transfers[0].Status)
	assert.True(t, transfers[0].IsCompleted)
	assert.True(t, transfers[1].IsCompleted)
	assert.True(t, transfers[2].IsCompleted)
	assert.True(t, transfers[3].IsPending)
	assert.True(t, transfers[4].IsPending)
	assert.True(t, transfers[5].IsPending)
	assert.True(t, transfers[6].IsPending)
	assert.True(t, transfers[7].IsCancelled)
	assert.True(t, transfers[8].IsCancelled)
	assert.True(t, transfers[9].IsCancelled)

	unknown := transfers[10]
	assert.False(t, unknown.IsCompleted)
	assert.False(t, unknown.IsPending)
	assert.False(t, unknown.IsCancelled)
}

func TestTransfers_ExplicitFlagsBeatStatus(t *testing.T) {
	payload := decode(t, `[
		{"id": "a", "status": "weird", "isCompleted": true},
		{"id": "b", "status": "weird", "pending": true},
		{"id": "c", "status": "completed", "isCancelled": true}
	]`)

	transfers := Transfers(payload)
	require.Len(t, transfers, 3)
	assert.True(t, transfers[0].IsCompleted)
	assert.True(t, transfers[1].IsPending)
	// A cancelled flag coexists with whatever the status string says.
	assert.True(t, transfers[2].IsCancelled)
	assert.True(t, transfers[2].IsCompleted)
}

func TestTransfers_TotalItems(t *testing.T) {
	payload := decode(t, `[
		{"id": "a", "totalItems": 9},
		{"id": "b", "itemCount": "4"},
		{"id": "c", "items": [{"quantity": 2}, {"qty": 3}, {"count": 1}]},
		{"id": "d", "details": [{}, {"quantity": 5}]},
		{"id": "e", "lines": [1, 2]},
		{"id": "f"}
	]`)

	transfers := Transfers(payload)
	require.Len(t, transfers, 6)
	assert.Equal(t, 9, transfers[0].TotalItems)
	assert.Equal(t, 4, transfers[1].TotalItems)
	assert.Equal(t, 6, transfers[2].TotalItems)
	// Lines without a readable quantity count as one item each.
	assert.Equal(t, 6, transfers[3].TotalItems)
	assert.Equal(t, 2, transfers[4].TotalItems)
	assert.Equal(t, 0, transfers[5].TotalItems)
}

func TestTransfers_Dates(t *testing.T) {
	payload := decode(t, `[{
		"id": "a",
		"created_at": "2024-01-15T09:00:00Z",
		"receivedAt": "2024-01-18T14:00:00Z",
		"scheduledFor": "2024-01-17"
	}]`)

	transfers := Transfers(payload)
	require.Len(t, transfers, 1)
	tr := transfers[0]
	require.NotNil(t, tr.CreatedAt)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), *tr.CreatedAt)
	require.NotNil(t, tr.ReceivedAt)
	require.NotNil(t, tr.ScheduledDate)
	assert.Equal(t, time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC), *tr.ScheduledDate)
}

func TestTransfers_WarehouseEndpoints(t *testing.T) {
	payload := decode(t, `[
		{"id": "a", "sourceWarehouseId": "w-1", "destinationWarehouseId": "w-2"},
		{"id": "b", "originWarehouse": {"id": "w-3"}, "to": "w-4"},
		{"id": "c", "from": 0, "targetWarehouseId": "w-6"}
	]`)

	transfers := Transfers(payload)
	require.Len(t, transfers, 3)
	assert.Equal(t, "w-1", transfers[0].SourceWarehouseID)
	assert.Equal(t, "w-2", transfers[0].DestinationWarehouseID)
	assert.Equal(t, "w-3", transfers[1].SourceWarehouseID)
	assert.Equal(t, "w-4", transfers[1].DestinationWarehouseID)
	// Warehouse 0 is a valid endpoint.
	assert.Equal(t, "0", transfers[2].SourceWarehouseID)
	assert.Equal(t, "w-6", transfers[2].DestinationWarehouseID)
}

func TestTransfers_DropWithoutID(t *testing.T) {
	payload := decode(t, `[
		{"status": "pending"},
		{"id": "t-1"},
		{"uuid": "t-2"},
		{"transferId": "t-3"}
	]`)

	transfers := Transfers(payload)
	require.Len(t, transfers, 3)
	assert.Equal(t, "t-1", transfers[0].ID)
	assert.Equal(t, "t-2", transfers[1].ID)
	assert.Equal(t, "t-3", transfers[2].ID)
}
