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

const QueryPrompt = `Analyze this job search query and extract relevant filters.

User Query: %q

Return a JSON object with:
- job_title: The job title or role they're looking for (string or null)
- location: The location they're interested in (string or null)
- skills: Array of specific skills they mentioned
- seniority: Level (junior, mid, senior) or null
- intent: What analysis they want (e.g., "find top skills", "compare jobs", "salary analysis")
- salary_range: Any salary mentions (string or null)

Return ONLY valid JSON, no markdown formatting, no code blocks, no extra text.`

// QueryService turns a natural-language search into a ParsedFilter.
type QueryService struct {
	LLM    TextGenerator
	logger *zap.Logger
}

func NewQueryService(llm TextGenerator, logger *zap.Logger) *QueryService {
	return &QueryService{LLM: llm, logger: logger}
}

func (s *QueryService) ParseQuery(ctx context.Context, query string) (*models.ParsedFilter, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Validation(apperrors.CodeEmptyQuery, "Query cannot be empty")
	}

	resp, err := s.LLM.Generate(ctx, fmt.Sprintf(QueryPrompt, query))
	if err != nil {
		return nil, err
	}

	raw := StripCodeFence(resp)
	var filter models.ParsedFilter
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		s.logger.Error("Failed to parse model response as JSON",
			zap.Error(err), zap.String("response_head", head(raw, 200)))
		return nil, apperrors.External(apperrors.CodeParsingFailed, "Failed to parse query", err)
	}

	s.logger.Info("Query parsed",
		zap.String("query", query),
		zap.Stringp("job_title", filter.JobTitle),
		zap.Stringp("location", filter.Location),
		zap.Strings("skills", filter.Skills),
		zap.Stringp("intent", filter.Intent))
	return &filter, nil
}
