package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/timetable-api/internal/dto"
	"github.com/campusgrid/timetable-api/internal/models"
	appErrors "github.com/campusgrid/timetable-api/pkg/errors"
)

type storeStub struct {
	created   []*models.ApprovedSchedule
	createErr error
	listCalls int
	list      []models.ApprovedScheduleSummary
	listErr   error
	byID      map[string]*models.ApprovedSchedule
	findErr   error
}

func (s *storeStub) Create(_ context.Context, schedule *models.ApprovedSchedule) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, schedule)
	return nil
}

func (s *storeStub) List(_ context.Context) ([]models.ApprovedScheduleSummary, error) {
	s.listCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.list, nil
}

func (s *storeStub) FindByID(_ context.Context, id string) (*models.ApprovedSchedule, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if record, ok := s.byID[id]; ok {
		return record, nil
	}
	return nil, sql.ErrNoRows
}

type cacheStub struct {
	values  map[string][]byte
	sets    int
	deletes int
}

func newCacheStub() *cacheStub {
	return &cacheStub{values: make(map[string][]byte)}
}

func (c *cacheStub) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *cacheStub) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	c.sets++
	return nil
}

func (c *cacheStub) Delete(_ context.Context, key string) error {
	delete(c.values, key)
	c.deletes++
	return nil
}

func generateRequest() dto.GenerateTimetableRequest {
	return dto.GenerateTimetableRequest{
		Subjects: []dto.SubjectRequest{
			{ID: "CS101", Name: "Data Structures", SessionsPerWeek: 3, Priority: "high"},
			{ID: "CS102", Name: "Operating Systems Lab", SessionsPerWeek: 2, Kind: "lab"},
			{ID: "MA201", Name: "Linear Algebra", SessionsPerWeek: 2, Priority: "medium"},
		},
		Department: "Computer Science",
		Semester:   "Fall 2026",
	}
}

func newTestService(store *storeStub, cache *cacheStub) *TimetableService {
	var cacheIface listCache
	if cache != nil {
		cacheIface = cache
	}
	return NewTimetableService(store, cacheIface, nil, nil, nil, TimetableServiceConfig{Seed: 42})
}

func TestGenerateReturnsOneCandidatePerStrategy(t *testing.T) {
	svc := newTestService(&storeStub{}, nil)

	resp, err := svc.Generate(context.Background(), generateRequest())
	require.NoError(t, err)
	require.Len(t, resp.Candidates, 3)

	labels := []string{}
	seen := map[string]bool{}
	for _, candidate := range resp.Candidates {
		labels = append(labels, candidate.Strategy)
		assert.NotEmpty(t, candidate.CandidateID)
		assert.False(t, seen[candidate.CandidateID], "candidate ids must be unique")
		seen[candidate.CandidateID] = true
		assert.NotEmpty(t, candidate.Sessions)
	}
	assert.Equal(t, []string{"Optimal", "Balanced", "Flexible"}, labels)
}

func TestGenerateRejectsEmptySubjectList(t *testing.T) {
	svc := newTestService(&storeStub{}, nil)

	_, err := svc.Generate(context.Background(), dto.GenerateTimetableRequest{})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestApprovePersistsCandidateAndInvalidatesCache(t *testing.T) {
	store := &storeStub{}
	cache := newCacheStub()
	svc := newTestService(store, cache)

	resp, err := svc.Generate(context.Background(), generateRequest())
	require.NoError(t, err)
	candidate := resp.Candidates[0]

	id, err := svc.Approve(context.Background(), dto.ApproveTimetableRequest{
		CandidateID: candidate.CandidateID,
		Title:       "CS Fall Timetable",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, store.created, 1)
	record := store.created[0]
	assert.Equal(t, record.ID, id, "returned id must identify the stored record")
	assert.Equal(t, "CS Fall Timetable", record.Title)
	assert.Equal(t, "Optimal", record.Strategy)
	assert.Equal(t, "Computer Science", record.Department, "department falls back to the generation request")
	assert.Equal(t, "Fall 2026", record.Term)

	var sessions []models.ScheduledSession
	require.NoError(t, json.Unmarshal(record.Sessions, &sessions))
	assert.Equal(t, candidate.Sessions, sessions)

	assert.Equal(t, 1, cache.deletes)

	// A consumed candidate cannot be approved twice.
	_, err = svc.Approve(context.Background(), dto.ApproveTimetableRequest{
		CandidateID: candidate.CandidateID,
		Title:       "Duplicate",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestApproveUnknownCandidate(t *testing.T) {
	svc := newTestService(&storeStub{}, nil)

	_, err := svc.Approve(context.Background(), dto.ApproveTimetableRequest{
		CandidateID: "does-not-exist",
		Title:       "Anything",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestApproveExpiredCandidate(t *testing.T) {
	store := &storeStub{}
	svc := NewTimetableService(store, nil, nil, nil, nil, TimetableServiceConfig{
		Seed:         42,
		CandidateTTL: time.Nanosecond,
	})

	resp, err := svc.Generate(context.Background(), generateRequest())
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	_, err = svc.Approve(context.Background(), dto.ApproveTimetableRequest{
		CandidateID: resp.Candidates[0].CandidateID,
		Title:       "Too Late",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Empty(t, store.created)
}

func TestListServesFromCacheWhenWarm(t *testing.T) {
	store := &storeStub{}
	cache := newCacheStub()
	cached := []models.ApprovedScheduleSummary{{ID: "sched-1", Title: "Cached"}}
	raw, err := json.Marshal(cached)
	require.NoError(t, err)
	cache.values[approvedListCacheKey] = raw

	svc := newTestService(store, cache)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cached, list)
	assert.Zero(t, store.listCalls)
}

func TestListFallsBackToStoreAndPrimesCache(t *testing.T) {
	store := &storeStub{
		list: []models.ApprovedScheduleSummary{{ID: "sched-2", Title: "From DB"}},
	}
	cache := newCacheStub()
	svc := newTestService(store, cache)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.list, list)
	assert.Equal(t, 1, store.listCalls)
	assert.Equal(t, 1, cache.sets)
}

func TestGetMapsMissingRowsToNotFound(t *testing.T) {
	svc := newTestService(&storeStub{byID: map[string]*models.ApprovedSchedule{}}, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGetRequiresID(t *testing.T) {
	svc := newTestService(&storeStub{}, nil)

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSeededGenerationIsReproducible(t *testing.T) {
	first := newTestService(&storeStub{}, nil)
	second := newTestService(&storeStub{}, nil)

	respA, err := first.Generate(context.Background(), generateRequest())
	require.NoError(t, err)
	respB, err := second.Generate(context.Background(), generateRequest())
	require.NoError(t, err)

	require.Len(t, respB.Candidates, len(respA.Candidates))
	for i := range respA.Candidates {
		assert.Equal(t, respA.Candidates[i].Sessions, respB.Candidates[i].Sessions)
		assert.Equal(t, respA.Candidates[i].Metrics, respB.Candidates[i].Metrics)
	}
}
