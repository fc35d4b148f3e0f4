package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/davidbz/pdfnotes/internal/domain"
)

// summarizeRequestBody is the wire schema of POST /api/summarize.
type summarizeRequestBody struct {
	Text       *string `json:"text"        validate:"required,min=1"`
	PDFName    *string `json:"pdf_name"`
	PageNumber *int    `json:"page_number" validate:"omitempty,gte=1"`
}

func (b *summarizeRequestBody) toDomain() *domain.SummarizeRequest {
	return &domain.SummarizeRequest{
		Text:       *b.Text,
		PDFName:    b.PDFName,
		PageNumber: b.PageNumber,
	}
}

// ValidationDetail describes one schema violation.
type ValidationDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

type validationErrorResponse struct {
	Detail []ValidationDetail `json:"detail"`
}

// RequestValidator decodes and validates request bodies.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a validator that reports fields by their JSON names.
func NewRequestValidator() *RequestValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &RequestValidator{validate: validate}
}

// DecodeSummarizeRequest parses and validates a summarize request body.
// It returns a request, or a non-empty list of schema violations, or an error
// when the body could not be read at all.
func (v *RequestValidator) DecodeSummarizeRequest(
	body io.Reader,
) (*domain.SummarizeRequest, []ValidationDetail, error) {
	var payload summarizeRequestBody
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		detail, ok := decodeErrorDetail(err)
		if !ok {
			return nil, nil, fmt.Errorf("failed to read request body: %w", err)
		}
		return nil, []ValidationDetail{detail}, nil
	}

	if err := v.validate.Struct(&payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, []ValidationDetail{{Loc: []any{"body"}, Msg: err.Error(), Type: "value_error"}}, nil
		}

		details := make([]ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, fieldErrorDetail(fe))
		}
		return nil, details, nil
	}

	return payload.toDomain(), nil, nil
}

// decodeErrorDetail maps JSON decoding failures to violations. It reports
// false for errors that are not about the payload itself (read failures).
func decodeErrorDetail(err error) (ValidationDetail, bool) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, io.EOF):
		return ValidationDetail{Loc: []any{"body"}, Msg: "Field required", Type: "missing"}, true
	case errors.Is(err, io.ErrUnexpectedEOF):
		return ValidationDetail{Loc: []any{"body"}, Msg: "JSON decode error", Type: "json_invalid"}, true
	case errors.As(err, &syntaxErr):
		return ValidationDetail{Loc: []any{"body", syntaxErr.Offset}, Msg: "JSON decode error", Type: "json_invalid"}, true
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return ValidationDetail{
				Loc:  []any{"body"},
				Msg:  "Input should be a valid dictionary or object",
				Type: "model_attributes_type",
			}, true
		}
		return typeErrorDetail(typeErr), true
	default:
		return ValidationDetail{}, false
	}
}

func typeErrorDetail(err *json.UnmarshalTypeError) ValidationDetail {
	loc := []any{"body", err.Field}

	switch err.Type.Kind() { //nolint:exhaustive // only kinds present in the schema
	case reflect.String:
		return ValidationDetail{Loc: loc, Msg: "Input should be a valid string", Type: "string_type"}
	case reflect.Int:
		return ValidationDetail{Loc: loc, Msg: "Input should be a valid integer", Type: "int_type"}
	default:
		return ValidationDetail{Loc: loc, Msg: fmt.Sprintf("Input should be a valid %s", err.Type), Type: "type_error"}
	}
}

func fieldErrorDetail(fe validator.FieldError) ValidationDetail {
	loc := []any{"body", fe.Field()}

	switch fe.Tag() {
	case "required":
		return ValidationDetail{Loc: loc, Msg: "Field required", Type: "missing"}
	case "min":
		return ValidationDetail{
			Loc:  loc,
			Msg:  fmt.Sprintf("String should have at least %s character", fe.Param()),
			Type: "string_too_short",
		}
	case "gte":
		return ValidationDetail{
			Loc:  loc,
			Msg:  fmt.Sprintf("Input should be greater than or equal to %s", fe.Param()),
			Type: "greater_than_equal",
		}
	default:
		return ValidationDetail{Loc: loc, Msg: fe.Error(), Type: fe.Tag()}
	}
}
