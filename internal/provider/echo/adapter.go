// Package echo provides an offline completer that turns the page text back
// into a bulleted note. It implements domain.Completer without making external
// API calls, giving deterministic output for local development and tests.
package echo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davidbz/pdfnotes/internal/domain"
	"github.com/davidbz/pdfnotes/internal/observability"
)

const (
	providerName = "echo"
	notesHeader  = "## Key Concepts"
)

// Provider implements the domain.Completer interface for offline use.
type Provider struct {
	name string
}

// NewProvider creates a new echo provider.
// No configuration is required as this provider operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{
		name: providerName,
	}
}

// Complete echoes the delimited page text of the last user message as notes.
func (p *Provider) Complete(ctx context.Context, req *domain.CompletionRequest) (*domain.CompletionResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := observability.FromContext(ctx)
	logger.Debug("echoing request")

	payload := extractPayload(lastUserMessage(req.Messages))
	content := buildNotes(payload)

	promptTokens := countTokens(payload)
	completionTokens := countTokens(content)

	logger.Debug("echo completed",
		observability.Int("prompt_tokens", promptTokens),
		observability.Int("completion_tokens", completionTokens),
	)

	return &domain.CompletionResult{
		ID:      fmt.Sprintf("echo-%d", time.Now().UnixNano()),
		Model:   req.Model,
		Content: content,
		Usage: domain.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

func lastUserMessage(messages []domain.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == domain.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// extractPayload returns the text between the first pair of delimiter lines,
// or the whole prompt when it carries no delimiters.
func extractPayload(prompt string) string {
	open := domain.PromptDelimiter + "\n"
	closing := "\n" + domain.PromptDelimiter

	start := strings.Index(prompt, open)
	if start < 0 {
		return prompt
	}
	rest := prompt[start+len(open):]

	end := strings.LastIndex(rest, closing)
	if end < 0 {
		return rest
	}
	return rest[:end]
}

// buildNotes renders each non-blank line as a bullet under the notes header.
// Blank input yields empty content.
func buildNotes(payload string) string {
	var builder strings.Builder
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if builder.Len() == 0 {
			builder.WriteString(notesHeader)
			builder.WriteString("\n")
		}
		builder.WriteString("- ")
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Fields(content))
}
