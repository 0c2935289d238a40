package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/models"
	"go.uber.org/zap"
)

const SummaryPrompt = `Analyze these job postings and answer the user's specific question.

User Question: %q

Job Postings Data:
%s

Provide a BRIEF summary (2-3 sentences max) that directly answers their question. Focus on:
- Key findings
- Patterns observed
- Essential insights

Be concise and get straight to the point. No lengthy explanations.`

type SummaryService struct {
	LLM    TextGenerator
	logger *zap.Logger
}

func NewSummaryService(llm TextGenerator, logger *zap.Logger) *SummaryService {
	return &SummaryService{LLM: llm, logger: logger}
}

// Summarize answers query over jobs. With no jobs it returns a fixed message
// naming the title and location criteria without calling the model.
func (s *SummaryService) Summarize(ctx context.Context, jobs []models.Job, query string, f models.ParsedFilter) (string, error) {
	if len(jobs) == 0 {
		return NoMatchesMessage(f), nil
	}

	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return "", apperrors.External(apperrors.CodeSummaryFailed, "Failed to prepare job data", err)
	}

	resp, err := s.LLM.Generate(ctx, fmt.Sprintf(SummaryPrompt, query, data))
	if err != nil {
		code := apperrors.CodeSummaryFailed
		if apperrors.IsCode(err, apperrors.CodeTimeout) {
			code = apperrors.CodeTimeout
		}
		return "", apperrors.External(code, "Error analyzing data", err)
	}

	s.logger.Info("Job analysis summary completed", zap.String("query", query), zap.Int("jobs", len(jobs)))
	return StripCodeFence(resp), nil
}

func NoMatchesMessage(f models.ParsedFilter) string {
	var criteria []string
	for _, c := range []string{f.TitleValue(), f.LocationValue()} {
		if c != "" {
			criteria = append(criteria, c)
		}
	}
	if len(criteria) == 0 {
		return "No jobs found matching your criteria: your search"
	}
	return "No jobs found matching your criteria: " + strings.Join(criteria, ", ")
}
