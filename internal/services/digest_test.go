package services

import (
	"testing"
	"time"
)

func TestDigestService_IsBusinessDay(t *testing.T) {
	s := NewDigestService(nil)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"regular weekday", time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC), true}, // Wednesday
		{"saturday", time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC), false},
		{"independence day", time.Date(2025, 7, 4, 10, 0, 0, 0, time.UTC), false},
		{"christmas", time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsBusinessDay(tt.date); got != tt.want {
				t.Errorf("IsBusinessDay(%s) = %v, expected %v", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestDigestService_DeliverSkipsWeekend(t *testing.T) {
	s := NewDigestService(nil)
	s.now = func() time.Time {
		return time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC) // Saturday
	}

	// A nil DB would panic if delivery proceeded; skipping must return early.
	if err := s.Deliver(); err != nil {
		t.Errorf("Deliver() on a weekend should skip silently, got %v", err)
	}
}

func TestDigestService_SchedulerRejectsBadSpec(t *testing.T) {
	s := NewDigestService(nil)
	if err := s.StartScheduler("not a cron spec"); err == nil {
		s.StopScheduler()
		t.Fatal("StartScheduler() with an invalid spec must error")
	}
}
