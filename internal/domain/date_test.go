package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, got time.Time)
	}{
		{
			name:  "rfc3339",
			input: "2026-06-01T10:30:00Z",
			check: func(t *testing.T, got time.Time) {
				assert.True(t, got.Equal(time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)))
			},
		},
		{
			name:  "fractional seconds",
			input: "2026-06-01T10:30:00.123Z",
			check: func(t *testing.T, got time.Time) {
				assert.Equal(t, 123000000, got.Nanosecond())
			},
		},
		{
			name:  "local minutes",
			input: "2026-06-01T08:15",
			check: func(t *testing.T, got time.Time) {
				assert.Equal(t, 8, got.Hour())
				assert.Equal(t, 15, got.Minute())
			},
		},
		{
			name:  "date only is local midnight",
			input: "2026-06-01",
			check: func(t *testing.T, got time.Time) {
				assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local), got)
			},
		},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestIsDateOnly(t *testing.T) {
	assert.True(t, IsDateOnly("2026-06-01"))
	assert.False(t, IsDateOnly("2026-06-01T00:00:00Z"))
}

func TestFormatDeadline(t *testing.T) {
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"today", time.Date(2026, 6, 15, 23, 0, 0, 0, time.Local), "Today"},
		{"tomorrow", time.Date(2026, 6, 16, 0, 0, 0, 0, time.Local), "Tomorrow"},
		{"same year", time.Date(2026, 7, 4, 0, 0, 0, 0, time.Local), "Jul 4"},
		{"yesterday is plain date", time.Date(2026, 6, 14, 0, 0, 0, 0, time.Local), "Jun 14"},
		{"other year", time.Date(2027, 1, 3, 0, 0, 0, 0, time.Local), "Jan 3, 2027"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDeadline(tt.t, now); got != tt.want {
				t.Errorf("FormatDeadline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 6, 15, 18, 0, 0, 0, time.Local)

	assert.False(t, IsOverdue(time.Date(2026, 6, 15, 0, 0, 0, 0, time.Local), now), "earlier today")
	assert.False(t, IsOverdue(time.Date(2026, 6, 20, 0, 0, 0, 0, time.Local), now), "future")
	assert.True(t, IsOverdue(time.Date(2026, 6, 14, 23, 59, 0, 0, time.Local), now), "yesterday")
}

func TestFormatCompletion(t *testing.T) {
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"today", time.Date(2026, 6, 15, 1, 0, 0, 0, time.Local), "Completed today"},
		{"yesterday", time.Date(2026, 6, 14, 22, 0, 0, 0, time.Local), "Completed yesterday"},
		{"earlier", time.Date(2026, 5, 2, 8, 0, 0, 0, time.Local), "Completed on May 2"},
		{"last year", time.Date(2025, 12, 31, 8, 0, 0, 0, time.Local), "Completed on Dec 31, 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCompletion(tt.t, now); got != tt.want {
				t.Errorf("FormatCompletion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStartEndOfDay(t *testing.T) {
	ts := time.Date(2026, 6, 15, 13, 45, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), StartOfDay(ts))
	assert.Equal(t, time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), EndOfDay(ts))
	assert.Equal(t, "2026-06-15", FormatDateForInput(ts))
}
