package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildTimeSlots derives the ordered hourly slot labels covering
// [start, end), skipping the lunch interval and truncating to maxPerDay.
// An unparseable or empty window falls back to the built-in default grid.
// Pure: same input always yields the same sequence.
func BuildTimeSlots(start, end, lunch string, maxPerDay int) []string {
	if start == "" {
		start = defaultStartTime
	}
	if end == "" {
		end = defaultEndTime
	}
	if lunch == "" {
		lunch = defaultLunchBreak
	}
	if maxPerDay <= 0 {
		maxPerDay = defaultMaxSlotsPerDay
	}

	startHour, okStart := parseHour(start)
	endHour, okEnd := parseHour(end)
	if !okStart || !okEnd {
		return defaultSlotsCopy()
	}

	var slots []string
	for hour := startHour; hour+1 <= endHour && len(slots) < maxPerDay; hour++ {
		label := fmt.Sprintf("%02d:00-%02d:00", hour, hour+1)
		if label == lunch {
			continue
		}
		slots = append(slots, label)
	}
	if len(slots) == 0 {
		return defaultSlotsCopy()
	}
	return slots
}

// WorkingDays returns the configured day set or the Monday-Friday default.
func WorkingDays(days []string) []string {
	if len(days) == 0 {
		return append([]string(nil), defaultWorkingDays...)
	}
	return append([]string(nil), days...)
}

func defaultSlotsCopy() []string {
	return append([]string(nil), defaultTimeSlots...)
}

func parseHour(raw string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}
