package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTimes(t *testing.T) {
	times := DefaultTimes()

	assert.Equal(t, []string{
		"08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30",
		"16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
	}, times)
}

func TestDefaultTimes_IsFreshSlice(t *testing.T) {
	a := DefaultTimes()
	a[0] = "xx"

	assert.Equal(t, "08:00", DefaultTimes()[0])
}

func TestValidTime(t *testing.T) {
	cases := map[string]bool{
		"09:00": true,
		"18:30": true,
		"00:00": true,
		"9:00":  false,
		"24:00": false,
		"09:60": false,
		"":      false,
		"09h00": false,
	}

	for in, want := range cases {
		assert.Equal(t, want, ValidTime(in), "ValidTime(%q)", in)
	}
}
