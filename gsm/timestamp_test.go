package gsm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeTimestamp(t *testing.T) {
	tt := []struct {
		desc     string
		value    time.Time
		expected Timestamp
	}{
		{
			desc:     "UTC",
			value:    time.Date(2026, time.October, 17, 13, 45, 30, 0, time.UTC),
			expected: Timestamp{0x62, 0x01, 0x71, 0x31, 0x54, 0x03, 0x00},
		},
		{
			desc:     "east of UTC",
			value:    time.Date(2026, time.October, 17, 13, 45, 30, 0, time.FixedZone("CEST", 2*60*60)),
			expected: Timestamp{0x62, 0x01, 0x71, 0x31, 0x54, 0x03, 0x80},
		},
		{
			desc:     "single digit quarters",
			value:    time.Date(2026, time.January, 2, 3, 4, 5, 0, time.FixedZone("CET", 60*60)),
			expected: Timestamp{0x62, 0x10, 0x20, 0x30, 0x40, 0x50, 0x40},
		},
		{
			desc:     "west of UTC",
			value:    time.Date(2026, time.October, 17, 8, 45, 30, 0, time.FixedZone("EST", -5*60*60)),
			expected: Timestamp{0x62, 0x01, 0x71, 0x80, 0x54, 0x03, 0x0A},
		},
		{
			desc:     "quarter hour zone",
			value:    time.Date(2026, time.December, 31, 23, 59, 59, 0, time.FixedZone("NPT", 5*60*60+45*60)),
			expected: Timestamp{0x62, 0x21, 0x13, 0x32, 0x95, 0x95, 0x32},
		},
		{
			desc:     "midnight",
			value:    time.Date(2000, time.March, 1, 0, 0, 0, 0, time.UTC),
			expected: Timestamp{0x00, 0x30, 0x10, 0x00, 0x00, 0x00, 0x00},
		},
		{
			desc:     "year before 0",
			value:    time.Date(-5, time.January, 2, 3, 4, 5, 0, time.UTC),
			expected: Timestamp{0x59, 0x10, 0x20, 0x30, 0x40, 0x50, 0x00},
		},
		{
			desc:     "leap day before 0",
			value:    time.Date(-4, time.February, 29, 12, 0, 0, 0, time.UTC),
			expected: Timestamp{0x69, 0x20, 0x92, 0x21, 0x00, 0x00, 0x00},
		},
		{
			desc:     "time zone out of range",
			value:    time.Date(2026, time.January, 2, 23, 4, 5, 0, time.FixedZone("X", 20*60*60)),
			expected: Timestamp{0x62, 0x10, 0x20, 0x30, 0x40, 0x50, 0x00},
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			actual := EncodeTimestamp(tc.value)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEncodeTimestamp_UsesLocationOfTime(t *testing.T) {
	instant := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	berlin := time.FixedZone("CEST", 2*60*60)

	utc := EncodeTimestamp(instant)
	local := EncodeTimestamp(instant.In(berlin))

	assert.Equal(t, byte(0x21), utc[3])
	assert.Equal(t, byte(0x41), local[3])
	assert.NotEqual(t, utc, local)
}
