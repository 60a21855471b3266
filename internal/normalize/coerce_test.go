package normalize

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode mirrors the upstream path: payloads always arrive through
// encoding/json, so numbers are float64 and objects are map[string]any.
func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestString_Coercion(t *testing.T) {
	assert.Equal(t, "hello", String("hello"))
	assert.Equal(t, "", String(nil))
	assert.Equal(t, "", String(true))
	assert.Equal(t, "", String([]any{"x"}))
	assert.Equal(t, "", String(map[string]any{"x": 1}))

	// Numeric ids keep their printed form.
	assert.Equal(t, "42", String(float64(42)))
	assert.Equal(t, "3.5", String(3.5))
	assert.Equal(t, "0", String(float64(0)))
	assert.Equal(t, "", String(math.NaN()))
	assert.Equal(t, "", String(math.Inf(1)))
}

func TestNumber_Coercion(t *testing.T) {
	n, ok := Number(float64(7))
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)

	n, ok = Number(" 12.25 ")
	assert.True(t, ok)
	assert.Equal(t, 12.25, n)

	_, ok = Number("not a number")
	assert.False(t, ok)
	_, ok = Number("")
	assert.False(t, ok)
	_, ok = Number(nil)
	assert.False(t, ok)
	_, ok = Number(true)
	assert.False(t, ok)
	_, ok = Number(math.NaN())
	assert.False(t, ok)
}

func TestDate_Parsing(t *testing.T) {
	d, ok := Date("2024-03-05T10:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), d)

	// Millisecond timestamps as serialized by the backend.
	d, ok = Date("2024-03-05T10:30:00.250Z")
	assert.True(t, ok)
	assert.Equal(t, 250*int(time.Millisecond), d.Nanosecond())

	// Plain dates are accepted too.
	d, ok = Date("2024-03-05")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, ok = Date("yesterday")
	assert.False(t, ok)
	_, ok = Date("")
	assert.False(t, ok)
	_, ok = Date(float64(1709634600))
	assert.False(t, ok)
	_, ok = Date(nil)
	assert.False(t, ok)
}

func TestRecordAndArray_Guards(t *testing.T) {
	assert.NotNil(t, Record(map[string]any{"a": 1}))
	assert.Nil(t, Record([]any{}))
	assert.Nil(t, Record("x"))
	assert.Nil(t, Record(nil))

	assert.Len(t, Array([]any{1, 2}), 2)
	assert.Nil(t, Array(map[string]any{}))
	assert.Nil(t, Array("x"))
	assert.Nil(t, Array(nil))
}

func TestTruthy_Flags(t *testing.T) {
	rec := decode(t, `{
		"a": true, "b": 1, "c": "yes", "d": "true",
		"e": false, "f": 0, "g": "", "h": "false", "i": "no", "j": null
	}`).(map[string]any)

	assert.True(t, flagField(rec, "a"))
	assert.True(t, flagField(rec, "b"))
	assert.True(t, flagField(rec, "c"))
	assert.True(t, flagField(rec, "d"))
	assert.False(t, flagField(rec, "e"))
	assert.False(t, flagField(rec, "f"))
	assert.False(t, flagField(rec, "g"))
	assert.False(t, flagField(rec, "h"))
	assert.False(t, flagField(rec, "i"))
	assert.False(t, flagField(rec, "j"))
	assert.False(t, flagField(rec, "missing"))
	assert.True(t, flagField(rec, "e", "f", "a"))
}

func TestWarehouseIdentifier(t *testing.T) {
	assert.Equal(t, "w-1", WarehouseIdentifier("w-1"))
	assert.Equal(t, "w-1", WarehouseIdentifier("  w-1  "))
	assert.Equal(t, "17", WarehouseIdentifier(float64(17)))

	// Zero is a real identifier, not an absent one.
	assert.Equal(t, "0", WarehouseIdentifier(float64(0)))

	assert.Equal(t, "", WarehouseIdentifier("   "))
	assert.Equal(t, "", WarehouseIdentifier(""))
	assert.Equal(t, "", WarehouseIdentifier(nil))
	assert.Equal(t, "", WarehouseIdentifier(true))
	assert.Equal(t, "", WarehouseIdentifier([]any{"w-1"}))
}

func TestWarehouseID_CandidateOrder(t *testing.T) {
	// warehouseId outranks every alias that follows it.
	rec := decode(t, `{"branchId": "b-9", "almacenId": "a-3", "warehouseId": "w-1"}`).(map[string]any)
	assert.Equal(t, "w-1", WarehouseID(rec))

	// An unusable first candidate falls through to the next one.
	rec = decode(t, `{"warehouseId": "   ", "warehouse_id": "w-2"}`).(map[string]any)
	assert.Equal(t, "w-2", WarehouseID(rec))

	// Object candidates contribute id, then uuid, then code.
	rec = decode(t, `{"warehouse": {"uuid": "u-5"}}`).(map[string]any)
	assert.Equal(t, "u-5", WarehouseID(rec))
	rec = decode(t, `{"warehouse": {"code": "C7"}}`).(map[string]any)
	assert.Equal(t, "C7", WarehouseID(rec))

	// An object with no usable sub-field does not block later candidates.
	rec = decode(t, `{"warehouse": {"name": "Centro"}, "branchId": "b-2"}`).(map[string]any)
	assert.Equal(t, "b-2", WarehouseID(rec))

	assert.Equal(t, "", WarehouseID(nil))
	assert.Equal(t, "", WarehouseID(map[string]any{}))
}
