package services

import (
	"context"

	"github.com/jacobbria/AZ-webApp/internal/dtos"
	"github.com/jacobbria/AZ-webApp/internal/models"
	"github.com/jacobbria/AZ-webApp/internal/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DegradedAnalysis is returned in place of a summary when the model call fails.
const DegradedAnalysis = "Error analyzing data: the analysis service is currently unavailable. The matching jobs are listed below."

type JobLister interface {
	ListAll(ctx context.Context) ([]models.Job, error)
}

// AnalysisService runs the query pipeline: interpret, load, filter, summarize.
type AnalysisService struct {
	Query   *QueryService
	Jobs    JobLister
	Summary *SummaryService
	logger  *zap.Logger
	tracer  trace.Tracer
}

func NewAnalysisService(query *QueryService, jobs JobLister, summary *SummaryService, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		Query:   query,
		Jobs:    jobs,
		Summary: summary,
		logger:  logger,
		tracer:  telemetry.GetTracer("jobboard/services/analysis"),
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, query string) (*dtos.AnalyzeResponse, error) {
	ctx, span := s.tracer.Start(ctx, "jobs.Analyze")
	defer span.End()

	filter, err := s.Query.ParseQuery(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	jobs, err := s.Jobs.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	filtered := FilterJobs(jobs, *filter, s.logger)
	span.SetAttributes(telemetry.Int("jobs.total", len(jobs)), telemetry.Int("jobs.filtered", len(filtered)))

	analysis, err := s.Summary.Summarize(ctx, filtered, query, *filter)
	if err != nil {
		s.logger.Error("Error analyzing jobs", zap.String("query", query), zap.Error(err))
		span.RecordError(err)
		analysis = DegradedAnalysis
	}

	return &dtos.AnalyzeResponse{
		Success:      true,
		Analysis:     analysis,
		JobCount:     len(filtered),
		FilteredJobs: filtered,
		Filters:      *filter,
	}, nil
}
