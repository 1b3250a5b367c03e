package common

import (
	"testing"
	"time"
)

func TestTruncateToDateUTC(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "afternoon UTC truncates to midnight",
			input: time.Date(2025, 10, 17, 14, 23, 45, 0, time.UTC),
			want:  time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "midnight stays midnight",
			input: time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "non-UTC time converts before truncating",
			input: time.Date(2025, 10, 17, 23, 30, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			want:  time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToDateUTC(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("TruncateToDateUTC(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSameUTCDay(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "same day different hours",
			a:    time.Date(2025, 10, 17, 1, 0, 0, 0, time.UTC),
			b:    time.Date(2025, 10, 17, 23, 59, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "adjacent days",
			a:    time.Date(2025, 10, 17, 23, 59, 0, 0, time.UTC),
			b:    time.Date(2025, 10, 18, 0, 1, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameUTCDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameUTCDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPreviousUTCDay(t *testing.T) {
	tests := []struct {
		name string
		prev time.Time
		t    time.Time
		want bool
	}{
		{
			name: "yesterday extends streak",
			prev: time.Date(2025, 10, 16, 22, 0, 0, 0, time.UTC),
			t:    time.Date(2025, 10, 17, 6, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "same day does not count as previous",
			prev: time.Date(2025, 10, 17, 1, 0, 0, 0, time.UTC),
			t:    time.Date(2025, 10, 17, 23, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "two days ago breaks streak",
			prev: time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC),
			t:    time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPreviousUTCDay(tt.prev, tt.t); got != tt.want {
				t.Errorf("IsPreviousUTCDay() = %v, want %v", got, tt.want)
			}
		})
	}
}
