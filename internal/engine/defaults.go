package engine

// Built-in fallback pools. Read-only; safe to share across strategy runs.

var defaultWorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// Hourly teaching slots for the default 09:00-17:00 day, lunch excluded.
var defaultTimeSlots = []string{
	"09:00-10:00",
	"10:00-11:00",
	"11:00-12:00",
	"12:00-13:00",
	"14:00-15:00",
	"15:00-16:00",
	"16:00-17:00",
}

var defaultRooms = []string{
	"Room-101",
	"Room-102",
	"Room-103",
	"Room-104",
	"Room-105",
	"Lab-201",
	"Lab-202",
	"Lab-203",
	"Hall-A",
	"Hall-B",
}

var defaultInstructors = []string{
	"Dr. Sharma",
	"Prof. Iyer",
	"Dr. Mehta",
	"Prof. Das",
	"Dr. Kulkarni",
	"Prof. Nair",
	"Dr. Bose",
	"Prof. Reddy",
}

const (
	defaultStartTime      = "09:00"
	defaultEndTime        = "17:00"
	defaultLunchBreak     = "13:00-14:00"
	defaultMaxSlotsPerDay = 8
)
