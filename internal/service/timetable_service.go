package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/campusgrid/timetable-api/internal/dto"
	"github.com/campusgrid/timetable-api/internal/engine"
	"github.com/campusgrid/timetable-api/internal/models"
	appErrors "github.com/campusgrid/timetable-api/pkg/errors"
)

type approvedScheduleStore interface {
	Create(ctx context.Context, schedule *models.ApprovedSchedule) error
	List(ctx context.Context) ([]models.ApprovedScheduleSummary, error)
	FindByID(ctx context.Context, id string) (*models.ApprovedSchedule, error)
}

type listCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const approvedListCacheKey = "timetables:approved"

// TimetableService drives the generation engine and manages the
// candidate lifecycle from preview to approval.
type TimetableService struct {
	store      approvedScheduleStore
	cache      listCache
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    *MetricsService
	seed       int64
	listTTL    time.Duration
	candidates *candidateStore
}

// TimetableServiceConfig governs candidate retention and reproducibility.
type TimetableServiceConfig struct {
	CandidateTTL time.Duration
	ListCacheTTL time.Duration
	// Seed pins the engine's random source; zero means time-seeded.
	Seed int64
}

// NewTimetableService wires the service dependencies.
func NewTimetableService(
	store approvedScheduleStore,
	cache listCache,
	validate *validator.Validate,
	logger *zap.Logger,
	metrics *MetricsService,
	cfg TimetableServiceConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CandidateTTL <= 0 {
		cfg.CandidateTTL = 30 * time.Minute
	}
	if cfg.ListCacheTTL <= 0 {
		cfg.ListCacheTTL = 5 * time.Minute
	}
	return &TimetableService{
		store:      store,
		cache:      cache,
		validator:  validate,
		logger:     logger,
		metrics:    metrics,
		seed:       cfg.Seed,
		listTTL:    cfg.ListCacheTTL,
		candidates: newCandidateStore(cfg.CandidateTTL),
	}
}

// Generate runs the engine once per strategy and stashes each candidate
// for later approval. Shortfalls are surfaced on the response and logged,
// never treated as errors.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}

	cfg := buildEngineConfig(req)
	started := time.Now()
	generated, err := engine.New(s.newRand()).Generate(cfg)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPreconditionFailed.Code, appErrors.ErrPreconditionFailed.Status, "timetable generation failed")
	}

	views := make([]dto.CandidateView, 0, len(generated))
	for _, candidate := range generated {
		id := uuid.NewString()
		s.candidates.Save(storedCandidate{
			ID:         id,
			Candidate:  candidate,
			Department: req.Department,
			Term:       req.Semester,
			CreatedAt:  time.Now().UTC(),
		})
		for _, notice := range candidate.Shortfalls {
			s.logger.Warn("subject shortfall",
				zap.String("strategy", candidate.Strategy),
				zap.String("subject_id", notice.SubjectID),
				zap.Int("required", notice.Required),
				zap.Int("placed", notice.Placed),
			)
		}
		s.metrics.ObserveGeneration(candidate.Strategy, candidate.Metrics.Score, candidate.Metrics.Conflicts, len(candidate.Shortfalls), time.Since(started))
		views = append(views, dto.CandidateView{
			CandidateID: id,
			Strategy:    candidate.Strategy,
			Sessions:    candidate.Sessions,
			Metrics:     candidate.Metrics,
			Shortfalls:  candidate.Shortfalls,
		})
	}

	return &dto.GenerateTimetableResponse{Candidates: views}, nil
}

// Approve persists a previously generated candidate and returns its
// opaque storage id.
func (s *TimetableService) Approve(ctx context.Context, req dto.ApproveTimetableRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approve payload")
	}
	stored, ok := s.candidates.Get(req.CandidateID)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "candidate not found or expired")
	}
	if s.store == nil {
		return "", appErrors.Clone(appErrors.ErrPreconditionFailed, "schedule persistence is not configured")
	}

	sessions, err := json.Marshal(stored.Candidate.Sessions)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode sessions")
	}
	metrics, err := json.Marshal(stored.Candidate.Metrics)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode metrics")
	}

	department := req.Department
	if department == "" {
		department = stored.Department
	}
	term := req.Term
	if term == "" {
		term = stored.Term
	}

	record := &models.ApprovedSchedule{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Department: department,
		Term:       term,
		Strategy:   stored.Candidate.Strategy,
		Sessions:   types.JSONText(sessions),
		Metrics:    types.JSONText(metrics),
		ApprovedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, record); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist approved schedule")
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, approvedListCacheKey); err != nil {
			s.logger.Warn("failed to invalidate approved list cache", zap.Error(err))
		}
	}
	s.candidates.Delete(req.CandidateID)
	return record.ID, nil
}

// List returns summaries of stored schedules, served from cache when warm.
func (s *TimetableService) List(ctx context.Context) ([]models.ApprovedScheduleSummary, error) {
	if s.store == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "schedule persistence is not configured")
	}
	if s.cache != nil {
		var cached []models.ApprovedScheduleSummary
		if err := s.cache.Get(ctx, approvedListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list approved schedules")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, approvedListCacheKey, list, s.listTTL); err != nil {
			s.logger.Warn("failed to cache approved list", zap.Error(err))
		}
	}
	return list, nil
}

// Get returns one stored schedule by its opaque id.
func (s *TimetableService) Get(ctx context.Context, id string) (*models.ApprovedSchedule, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule id is required")
	}
	if s.store == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "schedule persistence is not configured")
	}
	record, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "approved schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load approved schedule")
	}
	return record, nil
}

func (s *TimetableService) newRand() *rand.Rand {
	if s.seed != 0 {
		return rand.New(rand.NewSource(s.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func buildEngineConfig(req dto.GenerateTimetableRequest) models.TimetableConfig {
	subjects := make([]models.Subject, 0, len(req.Subjects))
	for _, subject := range req.Subjects {
		kind := models.SessionKind(subject.Kind)
		if kind == "" {
			kind = models.SessionKindLecture
		}
		subjects = append(subjects, models.Subject{
			ID:              subject.ID,
			Name:            subject.Name,
			SessionsPerWeek: subject.SessionsPerWeek,
			DurationMinutes: subject.DurationMinutes,
			Kind:            kind,
			Instructor:      subject.Instructor,
			Priority:        models.SubjectPriority(subject.Priority),
		})
	}
	return models.TimetableConfig{
		Subjects:          subjects,
		Department:        req.Department,
		Semester:          req.Semester,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		LunchBreak:        req.LunchBreak,
		WorkingDays:       req.WorkingDays,
		Rooms:             req.Rooms,
		Instructors:       req.Instructors,
		MaxSessionsPerDay: req.MaxSessionsPerDay,
	}
}

// --- Candidate cache ---

type storedCandidate struct {
	ID         string
	Candidate  models.CandidateSchedule
	Department string
	Term       string
	CreatedAt  time.Time
}

type candidateStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]storedCandidate
}

func newCandidateStore(ttl time.Duration) *candidateStore {
	return &candidateStore{
		ttl:   ttl,
		items: make(map[string]storedCandidate),
	}
}

func (s *candidateStore) Save(candidate storedCandidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[candidate.ID] = candidate
}

func (s *candidateStore) Get(id string) (storedCandidate, bool) {
	s.mu.RLock()
	candidate, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return storedCandidate{}, false
	}
	if time.Since(candidate.CreatedAt) > s.ttl {
		s.Delete(id)
		return storedCandidate{}, false
	}
	return candidate, true
}

func (s *candidateStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
