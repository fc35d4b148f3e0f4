package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/davidbz/pdfnotes/internal/observability"
)

// SummarizerService turns a page of PDF text into markdown notes.
type SummarizerService struct {
	completer Completer
	settings  ModelSettings
}

// NewSummarizerService creates a new summarizer service (DI constructor).
// A nil completer yields a service that reports itself unavailable.
func NewSummarizerService(completer Completer, settings ModelSettings) *SummarizerService {
	return &SummarizerService{
		completer: completer,
		settings:  settings,
	}
}

// Available reports whether a completer was initialized.
func (s *SummarizerService) Available() bool {
	return s.completer != nil
}

// Model returns the configured model name.
func (s *SummarizerService) Model() string {
	return s.settings.Model
}

// Summarize calls the completer once and maps the outcome to a response
// envelope. Upstream failures are reported in the envelope, not as errors;
// the only error returned is ErrServiceUnavailable (or a nil request).
func (s *SummarizerService) Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error) {
	if !s.Available() {
		return nil, ErrServiceUnavailable
	}

	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	ctx = observability.WithProvider(ctx, s.completer.Name())
	ctx = observability.WithModel(ctx, s.settings.Model)
	logger := observability.FromContext(ctx)

	completionReq := s.buildCompletionRequest(req)

	started := time.Now()
	result, err := s.completer.Complete(ctx, completionReq)
	if err != nil {
		logger.Error("summarization failed",
			observability.Error(err),
			observability.Duration("elapsed", time.Since(started)))
		return NewFailureResponse(failurePrefix + err.Error()), nil
	}

	summary := ""
	if result != nil {
		summary = strings.TrimSpace(result.Content)
	}

	if summary == "" {
		logger.Warn("empty response from AI model",
			observability.Duration("elapsed", time.Since(started)))
		return NewFailureResponse(EmptyResponseMessage), nil
	}

	logger.Info("summary generated",
		observability.Int("summary_length", len(summary)),
		observability.Int("completion_tokens", result.Usage.CompletionTokens),
		observability.Duration("elapsed", time.Since(started)))

	return NewSuccessResponse(summary), nil
}

func (s *SummarizerService) buildCompletionRequest(req *SummarizeRequest) *CompletionRequest {
	return &CompletionRequest{
		Model: s.settings.Model,
		Messages: []Message{
			{Role: RoleSystem, Content: SystemPrompt},
			{Role: RoleUser, Content: BuildPrompt(req.Text, req.PDFName, req.PageNumber)},
		},
		Temperature: s.settings.Temperature,
		MaxTokens:   s.settings.MaxTokens,
	}
}
