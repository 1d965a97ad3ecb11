package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/store"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		n       int
		want    int
		wantErr bool
	}{
		{"1", 3, 0, false},
		{" 3 ", 3, 2, false},
		{"0", 3, 0, true},
		{"4", 3, 0, true},
		{"2x", 3, 0, true},
		{"", 3, 0, true},
		{"1", 0, 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.arg, tt.n)
		if tt.wantErr {
			assert.Error(t, err, "arg %q", tt.arg)
			continue
		}
		require.NoError(t, err, "arg %q", tt.arg)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveLogID(t *testing.T) {
	entries := []model.LogEntry{
		{ID: "abc123"},
		{ID: "abd456"},
		{ID: "ffff"},
	}

	id, err := resolveLogID(entries, "ffff")
	require.NoError(t, err)
	assert.Equal(t, "ffff", id)

	id, err = resolveLogID(entries, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = resolveLogID(entries, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveLogID(entries, "zz")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolveLogIDRejectsBlank(t *testing.T) {
	only := []model.LogEntry{{ID: "abc123"}}
	for _, prefix := range []string{"", "   "} {
		_, err := resolveLogID(only, prefix)
		assert.ErrorContains(t, err, "required", "prefix %q", prefix)
	}

	id, err := resolveLogID(only, " abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestCycleDaysFlagWins(t *testing.T) {
	assert.Equal(t, 7, cycleDays(7))
}
