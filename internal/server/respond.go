package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/Caoophuongg/quickcv/internal/generate"
	"github.com/Caoophuongg/quickcv/internal/rendering"
	"github.com/Caoophuongg/quickcv/internal/schemas"
	"github.com/Caoophuongg/quickcv/internal/validation"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps an error to its HTTP status and writes the JSON error body.
// Validation failures additionally carry the per-field violation list.
// Upstream failures from the AI provider or the PDF exporter are logged in
// full but reported to the client with a fixed message, since their causes
// carry provider and filesystem detail.
func writeError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}

	var genErr *generate.GenerationError
	if errors.As(err, &genErr) {
		log.Printf("Generation failed: %v", err)
		body.Error = "content generation failed, please try again"
	}
	var exportErr *rendering.ExportError
	if errors.As(err, &exportErr) {
		log.Printf("PDF export failed: %v", err)
		body.Error = "PDF export failed, please try again"
	}

	var fieldErrs validation.FieldErrors
	if errors.As(err, &fieldErrs) {
		body.Error = "validation failed"
		body.Fields = fieldErrs
	}
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		body.Error = "validation failed"
		for _, fe := range schemaErr.Errors {
			body.Fields = append(body.Fields, validation.FieldError{Field: fe.Field, Message: fe.Message})
		}
	}

	writeJSON(w, HTTPStatus(err), body)
}

// decodeJSON decodes a request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return validation.FieldErrors{{Field: "body", Message: "must be valid JSON"}}
	}
	return nil
}

// readBody reads the whole request body up to maxBytes.
func readBody(r *http.Request, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		return nil, validation.FieldErrors{{Field: "body", Message: "could not be read"}}
	}
	if int64(len(data)) > maxBytes {
		return nil, validation.FieldErrors{{Field: "body", Message: "exceeds the size limit"}}
	}
	return data, nil
}
