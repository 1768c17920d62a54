package engine

import (
	"math/rand"
	"strings"

	"github.com/campusgrid/timetable-api/internal/models"
)

// Room label markers used to route session kinds onto matching rooms.
var (
	labMarkers       = []string{"lab"}
	practicalMarkers = []string{"lab", "hall", "practical"}
	theoryMarkers    = []string{"room", "class"}
)

// pickRoom selects a room for the session kind, preferring rooms whose
// label matches the kind's markers and falling back to the first room in
// the inventory when no label matches. The inventory must be non-empty.
func pickRoom(rng *rand.Rand, kind models.SessionKind, rooms []string) string {
	var preferred []string
	switch kind {
	case models.SessionKindLab:
		preferred = filterRooms(rooms, labMarkers, false)
	case models.SessionKindPractical:
		preferred = filterRooms(rooms, practicalMarkers, false)
	default:
		preferred = filterRooms(rooms, theoryMarkers, true)
	}
	if len(preferred) == 0 {
		return rooms[0]
	}
	return preferred[rng.Intn(len(preferred))]
}

// filterRooms keeps rooms whose lowercase label contains any marker. With
// allowUnmarked set, rooms carrying none of the specialized markers also
// qualify, so generic labels remain usable for theory sessions.
func filterRooms(rooms, markers []string, allowUnmarked bool) []string {
	var matched []string
	for _, room := range rooms {
		label := strings.ToLower(room)
		if containsAny(label, markers) {
			matched = append(matched, room)
			continue
		}
		if allowUnmarked && !containsAny(label, practicalMarkers) {
			matched = append(matched, room)
		}
	}
	return matched
}

func containsAny(label string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(label, marker) {
			return true
		}
	}
	return false
}
