package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTimeSlotsExcludesLunch(t *testing.T) {
	slots := BuildTimeSlots("09:00", "17:00", "13:00-14:00", 8)
	require.NotEmpty(t, slots)
	assert.NotContains(t, slots, "13:00-14:00")
	assert.Equal(t, "09:00-10:00", slots[0])
	assert.Equal(t, "16:00-17:00", slots[len(slots)-1])
}

func TestBuildTimeSlotsRespectsCap(t *testing.T) {
	slots := BuildTimeSlots("08:00", "20:00", "13:00-14:00", 5)
	assert.Len(t, slots, 5)
	assert.NotContains(t, slots, "13:00-14:00")
}

func TestBuildTimeSlotsFallbackOnInvertedWindow(t *testing.T) {
	slots := BuildTimeSlots("17:00", "09:00", "13:00-14:00", 8)
	assert.Equal(t, defaultTimeSlots, slots)
}

func TestBuildTimeSlotsFallbackOnGarbage(t *testing.T) {
	slots := BuildTimeSlots("not-a-time", "17:00", "", 0)
	assert.Equal(t, defaultTimeSlots, slots)
}

func TestBuildTimeSlotsDefaultsWhenEmpty(t *testing.T) {
	slots := BuildTimeSlots("", "", "", 0)
	assert.Equal(t, defaultTimeSlots, slots)
}

func TestWorkingDaysDefault(t *testing.T) {
	assert.Equal(t, defaultWorkingDays, WorkingDays(nil))
	assert.Equal(t, []string{"Saturday"}, WorkingDays([]string{"Saturday"}))
}

func TestWorkingDaysCopiesInput(t *testing.T) {
	input := []string{"Monday", "Tuesday"}
	days := WorkingDays(input)
	days[0] = "Sunday"
	assert.Equal(t, "Monday", input[0])
}
