package ledger

import (
	"testing"
	"time"
)

func TestSameDayFee(t *testing.T) {
	tests := []struct {
		name  string
		count int64
		want  string
	}{
		{"no prior operations", 0, "1"},
		{"one prior operation", 1, "1"},
		{"two prior operations", 2, "1"},
		{"third operation pays initial fee", 3, "1.02"},
		{"fourth operation pays final fee", 4, "1.05"},
		{"fee caps at final", 10, "1.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sameDayFee(tt.count)
			if got.String() != tt.want {
				t.Errorf("sameDayFee(%d) = %s, want %s", tt.count, got, tt.want)
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	in := time.Date(2024, 3, 12, 23, 59, 58, 123, time.UTC)
	want := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	if got := dateOf(in); !got.Equal(want) {
		t.Errorf("dateOf(%v) = %v, want %v", in, got, want)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 3, 12, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 3, 12, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)

	if !sameDay(morning, night) {
		t.Error("expected morning and night of the same date to match")
	}
	if sameDay(night, nextDay) {
		t.Error("expected adjacent days not to match")
	}
}
