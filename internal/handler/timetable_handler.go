package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/timetable-api/internal/dto"
	"github.com/campusgrid/timetable-api/internal/models"
	appErrors "github.com/campusgrid/timetable-api/pkg/errors"
	"github.com/campusgrid/timetable-api/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Approve(ctx context.Context, req dto.ApproveTimetableRequest) (string, error)
	List(ctx context.Context) ([]models.ApprovedScheduleSummary, error)
	Get(ctx context.Context, id string) (*models.ApprovedSchedule, error)
}

type scheduleExporter interface {
	RenderPDF(ctx context.Context, id string) ([]byte, error)
	RenderCSV(ctx context.Context, id string) ([]byte, error)
	EnqueueExport(ctx context.Context, scheduleID string) (*dto.ExportJobView, error)
	JobStatus(jobID string) (*dto.ExportJobView, error)
}

// TimetableHandler exposes the generation and approval endpoints.
type TimetableHandler struct {
	service timetableGenerator
	exports scheduleExporter
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc timetableGenerator, exports scheduleExporter) *TimetableHandler {
	return &TimetableHandler{service: svc, exports: exports}
}

// RegisterRoutes mounts the timetable endpoints on the router group.
func (h *TimetableHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/timetables/generate", h.Generate)
	r.POST("/timetables/approve", h.Approve)
	r.GET("/timetables/approved", h.List)
	r.GET("/timetables/approved/:id", h.Get)
	r.GET("/timetables/approved/:id/pdf", h.DownloadPDF)
	r.GET("/timetables/approved/:id/csv", h.DownloadCSV)
	r.POST("/timetables/approved/:id/exports", h.EnqueueExport)
	r.GET("/timetables/exports/:jobId", h.ExportStatus)
}

// Generate godoc
// @Summary Generate timetable candidates
// @Description Builds one candidate per strategy (Optimal, Balanced, Flexible) from the subject list. Candidates are held in memory until approved or expired.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Router /timetables/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Approve godoc
// @Summary Approve a generated candidate
// @Description Persists a previously generated candidate under a title. The candidate id comes from the generate response.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.ApproveTimetableRequest true "Approve payload"
// @Success 201 {object} response.Envelope
// @Router /timetables/approve [post]
func (h *TimetableHandler) Approve(c *gin.Context) {
	var req dto.ApproveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approve payload"))
		return
	}
	id, err := h.service.Approve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"scheduleId": id})
}

// List godoc
// @Summary List approved timetables
// @Tags Timetables
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetables/approved [get]
func (h *TimetableHandler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// Get godoc
// @Summary Get one approved timetable
// @Tags Timetables
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/approved/{id} [get]
func (h *TimetableHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// DownloadPDF godoc
// @Summary Download an approved timetable as PDF
// @Tags Exports
// @Produce application/pdf
// @Param id path string true "Schedule ID"
// @Success 200 {file} binary
// @Router /timetables/approved/{id}/pdf [get]
func (h *TimetableHandler) DownloadPDF(c *gin.Context) {
	data, err := h.exports.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="timetable.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// DownloadCSV godoc
// @Summary Download an approved timetable as CSV
// @Tags Exports
// @Produce text/csv
// @Param id path string true "Schedule ID"
// @Success 200 {file} binary
// @Router /timetables/approved/{id}/csv [get]
func (h *TimetableHandler) DownloadCSV(c *gin.Context) {
	data, err := h.exports.RenderCSV(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="timetable.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// EnqueueExport godoc
// @Summary Queue a background PDF export
// @Description Renders the schedule asynchronously into the exports directory. Poll the job endpoint for completion.
// @Tags Exports
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 202 {object} response.Envelope
// @Router /timetables/approved/{id}/exports [post]
func (h *TimetableHandler) EnqueueExport(c *gin.Context) {
	view, err := h.exports.EnqueueExport(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, view)
}

// ExportStatus godoc
// @Summary Get export job status
// @Tags Exports
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /timetables/exports/{jobId} [get]
func (h *TimetableHandler) ExportStatus(c *gin.Context) {
	view, err := h.exports.JobStatus(c.Param("jobId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
