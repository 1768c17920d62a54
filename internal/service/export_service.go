package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusgrid/timetable-api/internal/dto"
	"github.com/campusgrid/timetable-api/internal/models"
	appErrors "github.com/campusgrid/timetable-api/pkg/errors"
	"github.com/campusgrid/timetable-api/pkg/export"
	"github.com/campusgrid/timetable-api/pkg/jobs"
	"github.com/campusgrid/timetable-api/pkg/storage"
)

type approvedScheduleReader interface {
	FindByID(ctx context.Context, id string) (*models.ApprovedSchedule, error)
}

const (
	exportStatusPending = "PENDING"
	exportStatusDone    = "DONE"
	exportStatusFailed  = "FAILED"
)

var weekdayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// ExportService renders stored schedules as PDF or CSV documents, either
// synchronously or through the background export queue.
type ExportService struct {
	store   approvedScheduleReader
	pdf     *export.PDFExporter
	csv     *export.CSVExporter
	files   *storage.LocalStorage
	logger  *zap.Logger
	queue   *jobs.Queue
	mu      sync.RWMutex
	exports map[string]dto.ExportJobView
}

// NewExportService wires the export dependencies. Storage may be nil when
// asynchronous exports are disabled.
func NewExportService(store approvedScheduleReader, files *storage.LocalStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		store:   store,
		pdf:     export.NewPDFExporter(),
		csv:     export.NewCSVExporter(),
		files:   files,
		logger:  logger,
		exports: make(map[string]dto.ExportJobView),
	}
}

// Start launches the background export queue.
func (s *ExportService) Start(ctx context.Context, cfg jobs.QueueConfig) {
	if s.queue != nil {
		return
	}
	s.queue = jobs.NewQueue("pdf_exports", s.handleExportJob, cfg)
	s.queue.Start(ctx)
}

// Stop drains the export queue.
func (s *ExportService) Stop() {
	if s.queue != nil {
		s.queue.Stop()
	}
}

// RenderPDF produces the printable grid for a stored schedule.
func (s *ExportService) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.buildDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.Render(*doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule pdf")
	}
	return data, nil
}

// RenderCSV produces a flat tabular export of a stored schedule.
func (s *ExportService) RenderCSV(ctx context.Context, id string) ([]byte, error) {
	doc, err := s.buildDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.csv.Render(export.SessionsDataset(doc.Sessions))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule csv")
	}
	return data, nil
}

// EnqueueExport schedules a background PDF render into the storage dir.
func (s *ExportService) EnqueueExport(ctx context.Context, scheduleID string) (*dto.ExportJobView, error) {
	if s.queue == nil || s.files == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "exports are disabled")
	}
	if _, err := s.loadSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}

	view := dto.ExportJobView{
		JobID:      uuid.NewString(),
		ScheduleID: scheduleID,
		Status:     exportStatusPending,
	}
	s.mu.Lock()
	s.exports[view.JobID] = view
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: view.JobID, Type: "pdf_export", ScheduleID: scheduleID}); err != nil {
		s.mu.Lock()
		delete(s.exports, view.JobID)
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export")
	}
	return &view, nil
}

// JobStatus reports one export job.
func (s *ExportService) JobStatus(jobID string) (*dto.ExportJobView, error) {
	s.mu.RLock()
	view, ok := s.exports[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return &view, nil
}

func (s *ExportService) handleExportJob(ctx context.Context, job jobs.Job) error {
	data, err := s.RenderPDF(ctx, job.ScheduleID)
	if err != nil {
		s.finishJob(job.ID, exportStatusFailed, "", err.Error())
		return err
	}
	filename := fmt.Sprintf("timetable-%s.pdf", job.ID)
	if _, err := s.files.Save(filename, data); err != nil {
		s.finishJob(job.ID, exportStatusFailed, "", err.Error())
		return err
	}
	s.finishJob(job.ID, exportStatusDone, filename, "")
	s.logger.Info("schedule export rendered",
		zap.String("job_id", job.ID),
		zap.String("schedule_id", job.ScheduleID),
		zap.String("file", filename),
	)
	return nil
}

func (s *ExportService) finishJob(jobID, status, file, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.exports[jobID]
	if !ok {
		return
	}
	view.Status = status
	view.File = file
	view.Error = errMsg
	s.exports[jobID] = view
}

func (s *ExportService) loadSchedule(ctx context.Context, id string) (*models.ApprovedSchedule, error) {
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

func (s *ExportService) buildDocument(ctx context.Context, id string) (*export.TimetableDocument, error) {
	record, err := s.loadSchedule(ctx, id)
	if err != nil {
		return nil, err
	}

	var sessions []models.ScheduledSession
	if err := json.Unmarshal(record.Sessions, &sessions); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode stored sessions")
	}

	return &export.TimetableDocument{
		Title:      record.Title,
		Department: record.Department,
		Term:       record.Term,
		Days:       documentDays(sessions),
		Slots:      documentSlots(sessions),
		Sessions:   sessions,
	}, nil
}

// documentDays lists the days present in the schedule, in week order.
func documentDays(sessions []models.ScheduledSession) []string {
	seen := make(map[string]bool)
	var days []string
	for _, session := range sessions {
		if !seen[session.Day] {
			seen[session.Day] = true
			days = append(days, session.Day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return weekdayOrder[days[i]] < weekdayOrder[days[j]]
	})
	return days
}

// documentSlots lists the time slots present, ordered by start time. Slot
// labels are zero-padded so lexicographic order matches clock order.
func documentSlots(sessions []models.ScheduledSession) []string {
	seen := make(map[string]bool)
	var slots []string
	for _, session := range sessions {
		if !seen[session.TimeSlot] {
			seen[session.TimeSlot] = true
			slots = append(slots, session.TimeSlot)
		}
	}
	sort.Strings(slots)
	return slots
}
