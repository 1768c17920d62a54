package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusgrid/timetable-api/internal/models"
)

var roomInventory = []string{"Room-101", "Classroom-B", "Lab-201", "Hall-A", "Studio-3"}

func TestPickRoomForLab(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		room := pickRoom(rng, models.SessionKindLab, roomInventory)
		assert.Equal(t, "Lab-201", room)
	}
}

func TestPickRoomForPractical(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		room := pickRoom(rng, models.SessionKindPractical, roomInventory)
		assert.Contains(t, []string{"Lab-201", "Hall-A"}, room)
	}
}

func TestPickRoomForLectureAvoidsSpecializedRooms(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		room := pickRoom(rng, models.SessionKindLecture, roomInventory)
		assert.Contains(t, []string{"Room-101", "Classroom-B", "Studio-3"}, room)
	}
}

func TestPickRoomFallsBackToFirstRoom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	room := pickRoom(rng, models.SessionKindLab, []string{"Auditorium", "Studio"})
	assert.Equal(t, "Auditorium", room)
}

func TestPickRoomUnmarkedInventoryServesLectures(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	room := pickRoom(rng, models.SessionKindLecture, []string{"Studio-1", "Studio-2"})
	assert.Contains(t, []string{"Studio-1", "Studio-2"}, room)
}
