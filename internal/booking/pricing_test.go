package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 1.0, DurationHours("10:00", "11:00"))
	assert.Equal(t, 1.5, DurationHours("10:00", "11:30"))
	assert.Equal(t, 0.0, DurationHours("11:00", "10:00"), "inverted ranges price as zero")
	assert.Equal(t, 0.0, DurationHours("mal", "11:00"))
}

func TestSlotPrice_NightSurcharge(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
		want       float64
	}{
		{"fully daytime", "10:00", "11:00", 35000},
		{"ends exactly at 18:00", "17:00", "18:00", 35000},
		{"crosses into night", "17:30", "18:30", 35000 * 1.2},
		{"fully night", "19:00", "21:00", 2 * 35000 * 1.2},
		{"starts at 18:00", "18:00", "19:00", 35000 * 1.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, SlotPrice(tc.start, tc.end, 35000), 0.001)
		})
	}
}
