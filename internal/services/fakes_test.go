package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jacobbria/AZ-webApp/internal/database"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// fakeGenerator returns queued responses in order and counts calls.
type fakeGenerator struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("fakeGenerator: no response queued")
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// fakeModel implements llms.Model for LLMService tests.
type fakeModel struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, call int) (string, error)
}

func (m *fakeModel) GenerateContent(ctx context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.mu.Unlock()

	text, err := m.fn(ctx, call)
	if err != nil {
		return nil, err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: text}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func newTestJobService(t *testing.T) *JobService {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewJobService(db, nil, zap.NewNop())
}

func strPtr(s string) *string { return &s }
