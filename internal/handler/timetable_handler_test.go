package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/campusgrid/timetable-api/internal/dto"
	"github.com/campusgrid/timetable-api/internal/models"
	appErrors "github.com/campusgrid/timetable-api/pkg/errors"
)

type generatorMock struct {
	generateErr error
	approveErr  error
	getErr      error
}

func (m *generatorMock) Generate(_ context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if m.generateErr != nil {
		return nil, m.generateErr
	}
	return &dto.GenerateTimetableResponse{
		Candidates: []dto.CandidateView{
			{CandidateID: "cand-1", Strategy: "Optimal"},
			{CandidateID: "cand-2", Strategy: "Balanced"},
			{CandidateID: "cand-3", Strategy: "Flexible"},
		},
	}, nil
}

func (m *generatorMock) Approve(_ context.Context, req dto.ApproveTimetableRequest) (string, error) {
	if m.approveErr != nil {
		return "", m.approveErr
	}
	return "sched-1", nil
}

func (m *generatorMock) List(_ context.Context) ([]models.ApprovedScheduleSummary, error) {
	return []models.ApprovedScheduleSummary{{ID: "sched-1", Title: "CS Fall Timetable"}}, nil
}

func (m *generatorMock) Get(_ context.Context, id string) (*models.ApprovedSchedule, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return &models.ApprovedSchedule{ID: id, Title: "CS Fall Timetable"}, nil
}

type exporterMock struct {
	enqueueErr error
	statusErr  error
}

func (m *exporterMock) RenderPDF(_ context.Context, id string) ([]byte, error) {
	return []byte("%PDF-1.4 test"), nil
}

func (m *exporterMock) RenderCSV(_ context.Context, id string) ([]byte, error) {
	return []byte("Day,Time,Subject\n"), nil
}

func (m *exporterMock) EnqueueExport(_ context.Context, scheduleID string) (*dto.ExportJobView, error) {
	if m.enqueueErr != nil {
		return nil, m.enqueueErr
	}
	return &dto.ExportJobView{JobID: "job-1", ScheduleID: scheduleID, Status: "PENDING"}, nil
}

func (m *exporterMock) JobStatus(jobID string) (*dto.ExportJobView, error) {
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return &dto.ExportJobView{JobID: jobID, Status: "DONE", File: "timetable-job-1.pdf"}, nil
}

func buildRouter(gen *generatorMock, exp *exporterMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewTimetableHandler(gen, exp).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const generatePayload = `{
	"subjects": [
		{"id": "CS101", "name": "Data Structures", "sessionsPerWeek": 3, "priority": "high"}
	],
	"department": "Computer Science",
	"semester": "Fall 2026"
}`

func TestTimetableRoutes(t *testing.T) {
	router := buildRouter(&generatorMock{}, &exporterMock{})

	t.Run("generate success", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/generate", bytes.NewBufferString(generatePayload))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"candidateId":"cand-1"`)
		require.Contains(t, resp.Body.String(), `"strategy":"Flexible"`)
	})

	t.Run("generate malformed body", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/generate", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("approve success", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/approve", bytes.NewBufferString(`{"candidateId":"cand-1","title":"CS Fall Timetable"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusCreated, resp.Code)
		require.Contains(t, resp.Body.String(), `"scheduleId":"sched-1"`)
	})

	t.Run("list approved", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/timetables/approved", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), "CS Fall Timetable")
	})

	t.Run("get approved", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/timetables/approved/sched-1", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"id":"sched-1"`)
	})

	t.Run("download pdf", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/timetables/approved/sched-1/pdf", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
		require.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")))
	})

	t.Run("download csv", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/timetables/approved/sched-1/csv", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
	})

	t.Run("enqueue export", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/approved/sched-1/exports", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusAccepted, resp.Code)
		require.Contains(t, resp.Body.String(), `"jobId":"job-1"`)
	})

	t.Run("export status", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/timetables/exports/job-1", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"status":"DONE"`)
	})
}

func TestTimetableRouteErrors(t *testing.T) {
	t.Run("generate service failure", func(t *testing.T) {
		router := buildRouter(&generatorMock{generateErr: appErrors.Clone(appErrors.ErrPreconditionFailed, "generation failed")}, &exporterMock{})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/generate", bytes.NewBufferString(generatePayload))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusPreconditionFailed, resp.Code)
	})

	t.Run("approve expired candidate", func(t *testing.T) {
		router := buildRouter(&generatorMock{approveErr: appErrors.Clone(appErrors.ErrNotFound, "candidate not found or expired")}, &exporterMock{})
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/timetables/approve", bytes.NewBufferString(`{"candidateId":"gone","title":"Late"}`))
		req.Header.Set("Content-Type", "application/json")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("export status unknown job", func(t *testing.T) {
		router := buildRouter(&generatorMock{}, &exporterMock{statusErr: appErrors.Clone(appErrors.ErrNotFound, "export job not found")})
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/timetables/exports/nope", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})
}
