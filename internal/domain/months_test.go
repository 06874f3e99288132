package domain

import (
	"testing"
	"time"
)

func TestMonthsBetween(t *testing.T) {
	start := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{
			name: "same month",
			t:    time.Date(2020, time.January, 28, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "next month earlier day still counts",
			t:    time.Date(2020, time.February, 1, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "one year later",
			t:    time.Date(2021, time.January, 15, 0, 0, 0, 0, time.UTC),
			want: 12,
		},
		{
			name: "no drift over decades",
			t:    time.Date(2045, time.January, 2, 0, 0, 0, 0, time.UTC),
			want: 300,
		},
		{
			name: "before start is negative",
			t:    time.Date(2019, time.November, 30, 0, 0, 0, 0, time.UTC),
			want: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsBetween(start, tt.t); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
