package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/davidbz/pdfnotes/internal/domain"
	"github.com/davidbz/pdfnotes/internal/observability"
)

const (
	// ServiceVersion is reported by the health endpoint.
	ServiceVersion = "0.1.0"

	maxRequestBodyBytes = 10 << 20
	unknownValue        = "unknown"
)

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Version string `json:"version"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Handler handles HTTP requests.
type Handler struct {
	summarizer *domain.SummarizerService
	validator  *RequestValidator
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(summarizer *domain.SummarizerService) *Handler {
	return &Handler{
		summarizer: summarizer,
		validator:  NewRequestValidator(),
	}
}

// HandleSummarize processes summarization requests.
func (h *Handler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	// Availability is checked before the body is even read.
	if !h.summarizer.Available() {
		logger.Error("completion client not initialized")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Detail: domain.ErrServiceUnavailable.Error()})
		return
	}

	req, details, err := h.validator.DecodeSummarizeRequest(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, r, http.StatusRequestEntityTooLarge, errorResponse{Detail: "request body too large"})
			return
		}
		logger.Warn("failed to read request body", observability.Error(err))
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}
	if details != nil {
		logger.Info("request validation failed", observability.Int("violations", len(details)))
		writeJSON(w, r, http.StatusUnprocessableEntity, validationErrorResponse{Detail: details})
		return
	}

	if req.PDFName != nil {
		ctx = observability.WithDocument(ctx, *req.PDFName)
	}
	logger = observability.FromContext(ctx)

	logger.Info("processing summarization request",
		observability.String("pdf", valueOrUnknown(req.PDFName)),
		observability.String("page", pageOrUnknown(req.PageNumber)),
		observability.Int("text_length", len(req.Text)),
	)

	response, err := h.summarizer.Summarize(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) {
			writeJSON(w, r, http.StatusInternalServerError, errorResponse{Detail: err.Error()})
			return
		}
		logger.Error("summarization aborted", observability.Error(err))
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Detail: "Internal Server Error"})
		return
	}

	writeJSON(w, r, http.StatusOK, response)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Model:   h.summarizer.Model(),
		Version: ServiceVersion,
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Already written status, can't change it, just log.
		observability.FromContext(r.Context()).Error("failed to encode response", observability.Error(err))
	}
}

func valueOrUnknown(value *string) string {
	if value == nil || *value == "" {
		return unknownValue
	}
	return *value
}

func pageOrUnknown(page *int) string {
	if page == nil {
		return unknownValue
	}
	return strconv.Itoa(*page)
}
