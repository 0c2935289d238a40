package dtos

import (
	"github.com/jacobbria/AZ-webApp/internal/models"
)

// JobParseRequest is the body of POST /jobs/parse.
type JobParseRequest struct {
	JobText string `json:"job_text"`
}

// JobSaveRequest is the body of POST /jobs/save. Required fields are checked
// after trimming by the job service, not by binding tags, so whitespace-only
// values are rejected with a field-specific message.
type JobSaveRequest struct {
	Title       string          `json:"title"`
	Company     string          `json:"company"`
	Location    string          `json:"location"`
	Pay         any             `json:"pay"`
	PostingDate string          `json:"posting_date"`
	Description string          `json:"description"`
	Skills      models.Keywords `json:"skills"`
}

type AnalyzeRequest struct {
	Query string `json:"query"`
}

type AnalyzeResponse struct {
	Success      bool                `json:"success"`
	Analysis     string              `json:"analysis"`
	JobCount     int                 `json:"job_count"`
	FilteredJobs []models.Job        `json:"filtered_jobs"`
	Filters      models.ParsedFilter `json:"filters"`
}

type JobSaveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JobID   uint   `json:"job_id"`
}

type AuthStatusResponse struct {
	Authenticated bool    `json:"authenticated"`
	UserName      *string `json:"user_name"`
	UserID        *string `json:"user_id"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}
