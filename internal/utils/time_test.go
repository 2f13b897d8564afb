package utils

import (
	"testing"
	"time"
)

func TestIsStale(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		epochTime int64
		maxAge    time.Duration
		want      bool
	}{
		{"never exported", 0, 24 * time.Hour, true},
		{"fresh", now.Add(-time.Hour).Unix(), 24 * time.Hour, false},
		{"old", now.Add(-48 * time.Hour).Unix(), 24 * time.Hour, true},
		{"just past the limit", now.Add(-25 * time.Hour).Unix(), 24 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStale(tt.epochTime, tt.maxAge); got != tt.want {
				t.Errorf("IsStale(%d, %v) = %v, want %v", tt.epochTime, tt.maxAge, got, tt.want)
			}
		})
	}
}
