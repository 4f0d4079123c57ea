package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		sec  int64
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{125, "2m 5s"},
		{3600, "1h 0m 0s"},
		{7384, "2h 3m 4s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.sec))
		})
	}
}

func TestFormatDurationHM(t *testing.T) {
	tests := []struct {
		sec  int64
		want string
	}{
		{0, "< 1m"},
		{59, "< 1m"},
		{60, "1m"},
		{3540, "59m"},
		{3600, "1h 0m"},
		{7380, "2h 3m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDurationHM(tt.sec))
		})
	}
}

func TestWeekdayLabel(t *testing.T) {
	// 2025-06-09 is a Monday.
	monday := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	want := []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}
	for i, label := range want {
		assert.Equal(t, label, WeekdayLabel(monday.AddDate(0, 0, i)))
	}
}
