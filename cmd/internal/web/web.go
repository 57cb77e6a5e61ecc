// Package web holds the HTTP boundary helpers shared by all handler packages:
// JSON encoding/decoding and the single place where fault kinds are rendered
// into responses.
package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"quill/cmd/internal/fault"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes a single JSON value from the request body into dst.
// Unknown fields, oversized bodies, and trailing data are all malformed-input
// faults whose detail is safe to echo.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	const op = "web.DecodeJSON"

	if r.Body == nil {
		return fault.New(op, fault.ErrMalformed, "empty request body")
	}
	defer func() { _ = r.Body.Close() }()

	body := http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fault.New(op, fault.ErrMalformed, "invalid request body: "+err.Error())
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fault.New(op, fault.ErrMalformed, "extra data after JSON object")
	}
	return nil
}

// Fixed user-facing messages. Credential failures share one message so that
// wrong passwords, undecryptable tokens, and ownership mismatches cannot be
// told apart by error shape.
const (
	msgUnauthorized = "invalid credential or no permission"
	msgInternal     = "internal server error"
	msgDatabase     = "cannot process query"
	msgNotFound     = "not found"
)

// RenderError maps a fault kind to its one (status, message) pair and writes
// the response. Structured detail is logged here and nowhere else; dependency
// and hashing failures never leak their detail to the caller.
//
// The mapping is total over the closed kind set in cmd/internal/fault. An
// error outside the set is an internal bug: it is logged loudly and rendered
// as a 500, never passed through as a success.
func RenderError(w http.ResponseWriter, log *slog.Logger, err error) {
	if log == nil {
		log = slog.Default()
	}

	switch {
	case errors.Is(err, fault.ErrUnauthorized), errors.Is(err, fault.ErrWrongCredential):
		log.Warn("http.error.unauthorized", "err", err)
		writeError(w, http.StatusUnauthorized, "unauthorized", msgUnauthorized)

	case errors.Is(err, fault.ErrClient), errors.Is(err, fault.ErrServer), errors.Is(err, fault.ErrTransport):
		var re fault.RemoteError
		if errors.As(err, &re) {
			log.Error("http.error.dependency", "err", err, "status", re.Status, "message", re.Message)
		} else {
			log.Error("http.error.dependency", "err", err)
		}
		writeError(w, http.StatusInternalServerError, "internal", msgInternal)

	case errors.Is(err, fault.ErrHashing):
		log.Error("http.error.hashing", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", msgInternal)

	case errors.Is(err, fault.ErrMalformed):
		detail := fault.Detail(err)
		if detail == "" {
			detail = "malformed input"
		}
		log.Warn("http.error.malformed", "detail", detail)
		writeError(w, http.StatusUnprocessableEntity, "malformed_input", detail)

	case errors.Is(err, fault.ErrDatabase):
		log.Error("http.error.database", "err", err)
		writeError(w, http.StatusUnprocessableEntity, "database_query", msgDatabase)

	case errors.Is(err, fault.ErrNotFound):
		log.Warn("http.error.not_found", "err", err)
		writeError(w, http.StatusNotFound, "not_found", msgNotFound)

	default:
		// Outside the closed set: a bug, not a pass-through.
		log.Error("http.error.unmapped_kind", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", msgInternal)
	}
}

// RenderNotFound renders the unmatched-route response.
func RenderNotFound(w http.ResponseWriter, log *slog.Logger, path string) {
	RenderError(w, log, fault.New("web.route", fault.ErrNotFound, path))
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, errorResponse{Error: apiError{Code: code, Message: msg}})
}
