package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/auth"
	"github.com/jacobbria/AZ-webApp/internal/dtos"
	"github.com/jacobbria/AZ-webApp/internal/services"
)

// JobHandler serves the JSON job endpoints.
type JobHandler struct {
	ParserService   *services.ParserService
	JobService      *services.JobService
	AnalysisService *services.AnalysisService
}

func NewJobHandler(p *services.ParserService, j *services.JobService, a *services.AnalysisService) *JobHandler {
	return &JobHandler{
		ParserService:   p,
		JobService:      j,
		AnalysisService: a,
	}
}

// ParseJob is the POST /jobs/parse endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(apperrors.CodeEmptyInput, "Invalid JSON format"))
		return
	}

	job, err := h.ParserService.ParseJobPosting(c.Request.Context(), req.JobText)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// SaveJob is the POST /jobs/save endpoint
func (h *JobHandler) SaveJob(c *gin.Context) {
	var req dtos.JobSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(apperrors.CodeMissingField, "Invalid JSON format"))
		return
	}

	session := auth.FromContext(c)
	id, err := h.JobService.Save(c.Request.Context(), &req, session.OwnerID())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.JobSaveResponse{
		Success: true,
		Message: "Job saved successfully",
		JobID:   id,
	})
}

// Analyze is the POST /api/analyze endpoint
func (h *JobHandler) Analyze(c *gin.Context) {
	var req dtos.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation(apperrors.CodeEmptyQuery, "Query cannot be empty"))
		return
	}

	resp, err := h.AnalysisService.Analyze(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// respondError writes the public form of err and attaches err to the
// context so the request logger records the full detail.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	body := dtos.ErrorResponse{
		Success: false,
		Error:   apperrors.PublicMessage(err),
	}
	if appErr, ok := apperrors.As(err); ok {
		body.Code = string(appErr.Code)
	}
	c.JSON(apperrors.HTTPStatus(err), body)
}
