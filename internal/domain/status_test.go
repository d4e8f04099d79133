package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCode(t *testing.T) {
	tests := []struct {
		symbol string
		want   Status
	}{
		{"created", StatusCreated},
		{"completed", StatusCompleted},
		{"cancelled", StatusCancelled},
		{"unknown", StatusUnrecognized},
		{"CREATED", StatusUnrecognized},
		{"", StatusUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCode(tt.symbol))
		})
	}
}

func TestToSymbol(t *testing.T) {
	assert.Equal(t, "created", ToSymbol(1))
	assert.Equal(t, "completed", ToSymbol(2))
	assert.Equal(t, "cancelled", ToSymbol(3))
	assert.Equal(t, "unknown", ToSymbol(0))
	assert.Equal(t, "unknown", ToSymbol(StatusOther))
	assert.Equal(t, "unknown", ToSymbol(-1))
}

func TestSymbolFormIsStable(t *testing.T) {
	for _, c := range []Status{StatusCreated, StatusCompleted, StatusCancelled} {
		assert.Equal(t, ToSymbol(c), ToSymbol(ToCode(ToSymbol(c))), "code %d", c)
	}
}

func TestUnrecognizedRoundTripIsLossy(t *testing.T) {
	code := ToCode("unknown-value")
	assert.Equal(t, StatusUnrecognized, code)
	assert.Equal(t, Status(0), code)

	// "unknown-value" does not come back; the reverse fallback is "unknown".
	assert.Equal(t, "unknown", ToSymbol(code))
	assert.NotEqual(t, "unknown-value", ToSymbol(code))
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, s)

	s, err = ParseStatus(" Cancelled ")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, s)

	s, err = ParseStatus("4")
	require.NoError(t, err)
	assert.Equal(t, StatusOther, s)

	_, err = ParseStatus("shipped")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestStatusValid(t *testing.T) {
	assert.False(t, Status(0).Valid())
	assert.True(t, StatusCreated.Valid())
	assert.True(t, StatusOther.Valid())
	assert.False(t, Status(5).Valid())
}

func TestOrderWireFormat(t *testing.T) {
	o := Order{ID: 3, UserID: 7, CreateTime: 1700000000, Items: []int{1, 2}, Status: StatusCreated}
	b, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"user_id":7,"create_time":1700000000,"items":[1,2],"status":1}`, string(b))
}
