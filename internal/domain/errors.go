package domain

import "errors"

// ErrServiceUnavailable indicates that no completer was initialized at startup.
var ErrServiceUnavailable = errors.New("AI service not available")

// Failure messages carried in the response envelope.
const (
	EmptyResponseMessage = "AI model returned empty response"
	failurePrefix        = "Summarization failed: "
)
