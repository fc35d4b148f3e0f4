package http //nolint:testpackage // Exercises unexported request schema alongside handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/pdfnotes/internal/config"
	"github.com/davidbz/pdfnotes/internal/domain"
	"github.com/davidbz/pdfnotes/internal/mocks"
)

const testModel = "google/gemini-flash-1.5-8b"

func newTestHandler(completer domain.Completer) *Handler {
	summarizer := domain.NewSummarizerService(completer, domain.ModelSettings{
		Model:       testModel,
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	return NewHandler(summarizer)
}

func newMockCompleter(t *testing.T) *mocks.MockCompleter {
	t.Helper()

	completer := mocks.NewMockCompleter(t)
	completer.EXPECT().Name().Return("openrouter").Maybe()
	return completer
}

func postSummarize(handler *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.HandleSummarize(w, req)
	return w
}

func userPrompt(req *domain.CompletionRequest) string {
	for _, msg := range req.Messages {
		if msg.Role == domain.RoleUser {
			return msg.Content
		}
	}
	return ""
}

func TestHandleSummarize_Success(t *testing.T) {
	completer := newMockCompleter(t)
	handler := newTestHandler(completer)

	completer.EXPECT().
		Complete(mock.Anything, mock.MatchedBy(func(req *domain.CompletionRequest) bool {
			return req.Model == testModel &&
				strings.HasPrefix(userPrompt(req), "Source: PDF page\n") &&
				strings.Contains(userPrompt(req), "---\nPhotosynthesis converts light into energy.\n---")
		})).
		Return(&domain.CompletionResult{
			ID:      "gen-1",
			Model:   testModel,
			Content: "## Key Concepts\n- Light energy conversion",
		}, nil).
		Once()

	w := postSummarize(handler, `{"text":"Photosynthesis converts light into energy."}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t,
		`{"summary":"## Key Concepts\n- Light energy conversion","success":true,"error":null}`,
		w.Body.String())
}

func TestHandleSummarize_UpstreamFailure(t *testing.T) {
	completer := newMockCompleter(t)
	handler := newTestHandler(completer)

	completer.EXPECT().
		Complete(mock.Anything, mock.MatchedBy(func(req *domain.CompletionRequest) bool {
			return strings.HasPrefix(userPrompt(req), "Document: notes.pdf\nPage: 3\n")
		})).
		Return(nil, errors.New("timed out")).
		Once()

	w := postSummarize(handler, `{"text":"x","pdf_name":"notes.pdf","page_number":3}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t,
		`{"summary":null,"success":false,"error":"Summarization failed: timed out"}`,
		w.Body.String())
}

func TestHandleSummarize_EmptyContent(t *testing.T) {
	completer := newMockCompleter(t)
	handler := newTestHandler(completer)

	completer.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(&domain.CompletionResult{ID: "gen-2", Content: ""}, nil).
		Once()

	w := postSummarize(handler, `{"text":"some page text","page_number":1}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t,
		`{"summary":null,"success":false,"error":"AI model returned empty response"}`,
		w.Body.String())
}

func TestHandleSummarize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLoc  []any
		wantType string
	}{
		{
			name:     "empty text",
			body:     `{"text":""}`,
			wantLoc:  []any{"body", "text"},
			wantType: "string_too_short",
		},
		{
			name:     "missing text",
			body:     `{"pdf_name":"notes.pdf"}`,
			wantLoc:  []any{"body", "text"},
			wantType: "missing",
		},
		{
			name:     "null text",
			body:     `{"text":null}`,
			wantLoc:  []any{"body", "text"},
			wantType: "missing",
		},
		{
			name:     "zero page number",
			body:     `{"text":"x","page_number":0}`,
			wantLoc:  []any{"body", "page_number"},
			wantType: "greater_than_equal",
		},
		{
			name:     "negative page number",
			body:     `{"text":"x","page_number":-4}`,
			wantLoc:  []any{"body", "page_number"},
			wantType: "greater_than_equal",
		},
		{
			name:     "page number of wrong type",
			body:     `{"text":"x","page_number":"three"}`,
			wantLoc:  []any{"body", "page_number"},
			wantType: "int_type",
		},
		{
			name:     "text of wrong type",
			body:     `{"text":42}`,
			wantLoc:  []any{"body", "text"},
			wantType: "string_type",
		},
		{
			name:     "body is not an object",
			body:     `["x"]`,
			wantLoc:  []any{"body"},
			wantType: "model_attributes_type",
		},
		{
			name:     "empty body",
			body:     ``,
			wantLoc:  []any{"body"},
			wantType: "missing",
		},
		{
			name:     "truncated json",
			body:     `{"text":"x"`,
			wantLoc:  []any{"body"},
			wantType: "json_invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No Complete expectation: reaching the completer fails the test.
			completer := newMockCompleter(t)
			handler := newTestHandler(completer)

			w := postSummarize(handler, tt.body)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var resp validationErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			require.Len(t, resp.Detail, 1)
			require.Equal(t, tt.wantLoc, resp.Detail[0].Loc)
			require.Equal(t, tt.wantType, resp.Detail[0].Type)
			require.NotEmpty(t, resp.Detail[0].Msg)
		})
	}
}

func TestHandleSummarize_MultipleViolations(t *testing.T) {
	handler := newTestHandler(newMockCompleter(t))

	w := postSummarize(handler, `{"text":"","page_number":0}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp validationErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Detail, 2)
}

func TestHandleSummarize_ServiceUnavailable(t *testing.T) {
	bodies := []string{
		`{"text":"valid text","page_number":2}`,
		`{"text":""}`,
		`not json at all`,
	}

	for _, body := range bodies {
		handler := newTestHandler(nil)

		w := postSummarize(handler, body)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.JSONEq(t, `{"detail":"AI service not available"}`, w.Body.String())
	}
}

func TestHandleSummarize_BodyTooLarge(t *testing.T) {
	handler := newTestHandler(newMockCompleter(t))

	body := `{"text":"` + strings.Repeat("a", maxRequestBodyBytes+1) + `"}`
	w := postSummarize(handler, body)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHandleHealth(t *testing.T) {
	for _, completer := range []domain.Completer{nil, newMockCompleter(t)} {
		handler := newTestHandler(completer)

		w := httptest.NewRecorder()
		handler.HandleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Equal(t, "healthy", resp.Status)
		require.Equal(t, testModel, resp.Model)
		require.Equal(t, "0.1.0", resp.Version)
	}
}

func TestServerRoutes(t *testing.T) {
	completer := newMockCompleter(t)
	completer.EXPECT().
		Complete(mock.Anything, mock.Anything).
		Return(&domain.CompletionResult{Content: "## Key Concepts\n- routed"}, nil).
		Once()

	server := NewServer(&config.ServerConfig{Host: "127.0.0.1", Port: 8000}, newTestHandler(completer), nil)
	routes := server.Routes()

	require.Equal(t, "127.0.0.1:8000", server.Addr())

	t.Run("should route summarize", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/summarize", bytes.NewBufferString(`{"text":"x"}`))
		routes.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"summary":"## Key Concepts\n- routed","success":true,"error":null}`, w.Body.String())
	})

	t.Run("should route health", func(t *testing.T) {
		w := httptest.NewRecorder()
		routes.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should reject wrong method", func(t *testing.T) {
		w := httptest.NewRecorder()
		routes.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/summarize", nil))

		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
