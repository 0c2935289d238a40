package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/jacobbria/AZ-webApp/internal/apperrors"
	"github.com/jacobbria/AZ-webApp/internal/telemetry"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// FallbackModel is used when model discovery fails.
const FallbackModel = "gemini-2.0-flash"

// TextGenerator sends one prompt to a text-generation service and returns
// the raw response text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type LLMConfig struct {
	APIKey            string
	Model             string
	Timeout           time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	RequestsPerSecond float64
}

type LLMService struct {
	// Nil when no API key was configured.
	Client llms.Model

	cfg     LLMConfig
	limiter *rate.Limiter
	logger  *zap.Logger
	tracer  trace.Tracer
}

// NewLLMService connects to Gemini. Without an API key it returns a service
// whose calls fail with NOT_CONFIGURED instead of stopping the process.
func NewLLMService(ctx context.Context, cfg LLMConfig, logger *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		logger.Warn("Gemini API key not set; text generation disabled")
		return NewLLMServiceFromModel(nil, cfg, logger), nil
	}

	model := ResolveModel(ctx, cfg.APIKey, cfg.Model, logger)
	cfg.Model = model

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, apperrors.External(apperrors.CodeNotConfigured, "Failed to create Gemini client", err)
	}

	logger.Info("Gemini client ready", zap.String("model", model))
	return NewLLMServiceFromModel(llm, cfg, logger), nil
}

func NewLLMServiceFromModel(model llms.Model, cfg LLMConfig, logger *zap.Logger) *LLMService {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &LLMService{
		Client:  model,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		tracer:  telemetry.GetTracer("jobboard/services/llm"),
	}
}

// ResolveModel returns preferred when set, otherwise the first listed model
// that supports generateContent, otherwise FallbackModel.
func ResolveModel(ctx context.Context, apiKey, preferred string, logger *zap.Logger) string {
	if preferred != "" {
		return preferred
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("Error initializing Gemini model listing", zap.Error(err), zap.String("fallback", FallbackModel))
		return FallbackModel
	}
	defer client.Close()

	it := client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			logger.Error("Error listing Gemini models", zap.Error(err), zap.String("fallback", FallbackModel))
			return FallbackModel
		}
		if supportsGenerateContent(m.SupportedGenerationMethods) {
			return strings.TrimPrefix(m.Name, "models/")
		}
	}

	logger.Warn("No generative models found with generateContent support", zap.String("fallback", FallbackModel))
	return FallbackModel
}

func supportsGenerateContent(methods []string) bool {
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}

// Generate runs prompt through the model under one request-scoped timeout,
// retrying failed attempts with a doubling delay.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.Client == nil {
		return "", apperrors.External(apperrors.CodeNotConfigured, "Text generation service not configured", nil)
	}

	ctx, span := s.tracer.Start(ctx, "llm.Generate")
	defer span.End()
	span.SetAttributes(telemetry.String("llm.model", s.cfg.Model), telemetry.Int("llm.prompt_chars", len(prompt)))

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	var resp string
	err := retry(ctx, s.cfg.MaxRetries+1, s.cfg.RetryDelay, s.logger, isTransient, func() error {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctx.Err() == nil {
				// The limiter refuses waits that would outlast the deadline.
				return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
			}
			return err
		}
		var e error
		resp, e = llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
		return e
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", apperrors.External(apperrors.CodeTimeout, "The text generation service timed out", err)
		}
		return "", apperrors.External(apperrors.CodeUpstream, "The text generation service failed", err)
	}

	s.logger.Debug("LLM response received", zap.Int("chars", len(resp)))
	return strings.TrimSpace(resp), nil
}

// retry executes f up to attempts times with exponential backoff. It stops
// early once ctx is done or when retryable reports the error as permanent.
func retry(ctx context.Context, attempts int, sleep time.Duration, logger *zap.Logger, retryable func(error) bool, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if ctx.Err() != nil || i == attempts-1 || !retryable(err) {
			break
		}

		logger.Warn("Text generation attempt failed; retrying",
			zap.Error(err), zap.Int("attempt", i+1), zap.Duration("delay", sleep))
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return err
}

// isTransient reports whether a failed generation is worth another attempt.
// Context errors, client errors other than 429 and rejected keys are final.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	msg := err.Error()
	for _, permanent := range []string{"API_KEY_INVALID", "API key not valid", "PERMISSION_DENIED", "blocked"} {
		if strings.Contains(msg, permanent) {
			return false
		}
	}
	return true
}

var fenceLangRe = regexp.MustCompile(`^[A-Za-z0-9_+-]*$`)

// StripCodeFence removes a surrounding ``` block, including an optional
// language tag on the opening line.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")

	if i := strings.IndexByte(s, '\n'); i >= 0 {
		if fenceLangRe.MatchString(strings.TrimSpace(s[:i])) {
			s = s[i+1:]
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
