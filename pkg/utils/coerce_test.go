package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int
		ok    bool
	}{
		{"int", 7, 7, true},
		{"int64", int64(7), 7, true},
		{"float64 from json", float64(7), 7, true},
		{"json number", json.Number("7"), 7, true},
		{"numeric string", "7", 7, true},
		{"non-numeric string", "seven", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceInt(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecordDateLayouts(t *testing.T) {
	want := time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC)

	for _, text := range []string{
		"2024-12-25T10:00:00Z",
		"2024-12-25T10:00:00",
		"2024-12-25T10:00",
	} {
		got, err := ParseRecordDate(text)
		require.NoError(t, err, text)
		assert.True(t, got.Equal(want), "parsed %q to %v", text, got)
	}

	_, err := ParseRecordDate("25/12/2024")
	assert.Error(t, err)
}

func TestFormatRecordDateRoundTrips(t *testing.T) {
	date := time.Date(2026, 8, 23, 14, 30, 0, 0, time.UTC)

	parsed, err := ParseRecordDate(FormatRecordDate(date))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(date))
}
