package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	slot, err := ParseSlot("2025-03-01T11:00:00")
	require.NoError(t, err)

	appt := &Appointment{SlotTime: slot}
	assert.Equal(t, "2025-03-01T11:00:00", appt.Slot())
}

func TestParseSlot_RejectsOffsetAndLooseFormats(t *testing.T) {
	for _, input := range []string{
		"2025-03-01T11:00:00Z",
		"2025-03-01T11:00:00+02:00",
		"2025-03-01 11:00:00",
		"2025-03-01T11:00",
	} {
		_, err := ParseSlot(input)
		assert.Error(t, err, "input %q", input)
	}
}
