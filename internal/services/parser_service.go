package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/models"
	"github.com/jacobbria/AZ-webApp/internal/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MinJobTextLength guards the text-generation call against trivial input.
const MinJobTextLength = 50

const JobParserPrompt = `You are an expert job posting analyzer. Your task is to extract and normalize structured information from job posting text.

Extract the following fields from the job posting:
1. title - The job title/position name
2. company - The company name
3. location - Format location using these rules:
   - If fully remote: return exactly "Remote"
   - If hybrid with location: return "City, St - Hybrid" (e.g., "San Francisco, CA - Hybrid")
   - If on-site: return "City, St" (e.g., "San Francisco, CA")
4. pay - Return a single number as the LOWER end of the salary range (as a number, not string).
   Examples: if "$100,000-$150,000" return 100000, if "$60k-$80k" return 60000, if "Competitive" return null
5. description - A concise 2-3 sentence summary of the role and key responsibilities
6. skills - A comma-separated list of the most important technical skills and keywords required (e.g., "Python, AWS, Docker, Kubernetes")

Return ONLY a valid JSON object with these exact keys. If a field is not found, use null.
Example response format:
{
    "title": "Senior Software Engineer",
    "company": "Tech Company Inc.",
    "location": "San Francisco, CA - Hybrid",
    "pay": 150000,
    "description": "Lead the development of cloud infrastructure. Build scalable systems using Python and AWS.",
    "skills": "Python, AWS, Docker, Kubernetes, Cloud Architecture"
}`

// ParserService normalizes free-text job postings into ParsedJob records.
type ParserService struct {
	LLM    TextGenerator
	logger *zap.Logger
	tracer trace.Tracer
}

func NewParserService(llm TextGenerator, logger *zap.Logger) *ParserService {
	return &ParserService{
		LLM:    llm,
		logger: logger,
		tracer: telemetry.GetTracer("jobboard/services/parser"),
	}
}

// ParseJobPosting rejects empty or short input before any external call,
// then asks the model for a structured record and validates it.
func (s *ParserService) ParseJobPosting(ctx context.Context, text string) (*models.ParsedJob, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.Validation(apperrors.CodeEmptyInput, "No job text provided")
	}
	if len([]rune(text)) < MinJobTextLength {
		return nil, apperrors.Validation(apperrors.CodeTooShort,
			fmt.Sprintf("Job text is too short (minimum %d characters)", MinJobTextLength))
	}

	ctx, span := s.tracer.Start(ctx, "jobs.Parse")
	defer span.End()

	cleaned := CleanJobText(text)
	s.logger.Debug("Parsing job posting", zap.Int("chars", len(cleaned)))

	prompt := JobParserPrompt + "\n\nJob Posting:\n" + cleaned
	resp, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	job, err := decodeParsedJob(StripCodeFence(resp))
	if err != nil {
		s.logger.Error("Failed to parse model response as JSON",
			zap.Error(err), zap.String("response_head", head(resp, 200)))
		return nil, apperrors.External(apperrors.CodeParsingFailed, "Failed to parse job posting", err)
	}

	if err := ValidateParsedJob(job); err != nil {
		s.logger.Warn("Parsed job failed validation", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Parsed job posting",
		zap.Stringp("title", job.Title),
		zap.Stringp("company", job.Company),
		zap.Stringp("location", job.Location),
		zap.Int64p("pay", job.Pay))
	return job, nil
}

// ValidateParsedJob requires title, company, location and description.
func ValidateParsedJob(job *models.ParsedJob) error {
	var missing []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", job.Title},
		{"company", job.Company},
		{"location", job.Location},
		{"description", job.Description},
	} {
		if f.value == nil || strings.TrimSpace(*f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return apperrors.Validation(apperrors.CodeValidationFailed,
			"Could not extract required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

func decodeParsedJob(raw string) (*models.ParsedJob, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	return &models.ParsedJob{
		Title:       textField(fields["title"]),
		Company:     textField(fields["company"]),
		Location:    textField(fields["location"]),
		Pay:         payField(fields["pay"]),
		Description: textField(fields["description"]),
		Skills:      textField(fields["skills"]),
	}, nil
}

func textField(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = strings.TrimSpace(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if p := textField(item); p != nil {
				parts = append(parts, *p)
			}
		}
		s = strings.Join(parts, ", ")
	default:
		s = fmt.Sprint(t)
	}
	if s == "" {
		return nil
	}
	return &s
}

// payField keeps only a lower-bound number. Strings like "$60k" or
// "100,000 - 150,000" are reduced to their first figure.
func payField(v any) *int64 {
	switch t := v.(type) {
	case float64:
		n := int64(math.Round(t))
		return &n
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
		if i := strings.IndexAny(s, "-–"); i > 0 {
			s = s[:i]
		}
		mult := 1.0
		if strings.HasSuffix(s, "k") {
			mult = 1000
			s = strings.TrimSuffix(s, "k")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		n := int64(math.Round(f * mult))
		return &n
	}
	return nil
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
