package i18n

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	Init("en")

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{90 * time.Second, "1 min ago"},
		{5*time.Minute + 10*time.Second, "5 mins ago"},
		{61 * time.Minute, "1 hour ago"},
		{3*time.Hour + time.Minute, "3 hours ago"},
		{25 * time.Hour, "1 day ago"},
		{73 * time.Hour, "3 days ago"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := RelativeTime(time.Now().Add(-tt.ago)); got != tt.want {
				t.Errorf("RelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}
