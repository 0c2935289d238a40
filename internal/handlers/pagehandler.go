package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/auth"
	"github.com/jacobbria/AZ-webApp/internal/services"
)

// PageHandler renders the HTML pages.
type PageHandler struct {
	JobService *services.JobService
}

func NewPageHandler(j *services.JobService) *PageHandler {
	return &PageHandler{JobService: j}
}

func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = auth.FromContext(c)
	c.HTML(status, name, data)
}

func renderError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := apperrors.HTTPStatus(err)
	message := apperrors.PublicMessage(err)
	if status >= http.StatusInternalServerError {
		message = "Server error"
	}
	render(c, status, "error.html", gin.H{"Title": "Error", "Message": message})
}

func (h *PageHandler) Index(c *gin.Context) {
	render(c, http.StatusOK, "index.html", nil)
}

// Demo lists every job, seed postings included.
func (h *PageHandler) Demo(c *gin.Context) {
	jobs, err := h.JobService.ListAll(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "analysis_page.html", gin.H{"Title": "Demo", "Jobs": jobs, "IsDemo": true})
}

func (h *PageHandler) Data(c *gin.Context) {
	jobs, err := h.JobService.ListAll(c.Request.Context())
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "analysis_page.html", gin.H{"Title": "Data", "Jobs": jobs, "IsDemo": false})
}

func (h *PageHandler) AddJob(c *gin.Context) {
	render(c, http.StatusOK, "add_job.html", gin.H{"Title": "Add Job"})
}

func (h *PageHandler) ReviewJob(c *gin.Context) {
	render(c, http.StatusOK, "review_job.html", gin.H{"Title": "Review Job"})
}

func (h *PageHandler) MyJobs(c *gin.Context) {
	session := auth.FromContext(c)
	jobs, err := h.JobService.ListByOwner(c.Request.Context(), session.UserID)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "my_jobs.html", gin.H{"Title": "My Jobs", "Jobs": jobs})
}

func (h *PageHandler) JobDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		renderError(c, apperrors.NotFound("Job not found"))
		return
	}

	job, err := h.JobService.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "job_detail.html", gin.H{"Title": job.Title, "Job": job})
}

func (h *PageHandler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "error.html", gin.H{"Title": "Not Found", "Message": "Page not found"})
}
