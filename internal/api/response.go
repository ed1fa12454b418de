// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/commune-social/commune/internal/apperr"
	"github.com/commune-social/commune/internal/logging"
)

// successEnvelope is the body of every 2xx response.
type successEnvelope struct {
	Status string `json:"status"`
	Length *int   `json:"length,omitempty"`
	Data   any    `json:"data"`
}

// errorEnvelope is the body of every non-2xx response.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message any    `json:"message"`
	Code    int    `json:"code"`
	Data    any    `json:"data"`
}

// writeJSON encodes v to the response. Encoding failures are logged,
// the status line has already been sent by then.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeData renders a success envelope around data.
func writeData(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, successEnvelope{Status: apperr.StatusSuccess, Data: data})
}

// writeListData renders a success envelope carrying a top-level length,
// used by the user listing endpoint.
func writeListData(w http.ResponseWriter, statusCode int, length int, data any) {
	writeJSON(w, statusCode, successEnvelope{Status: apperr.StatusSuccess, Length: &length, Data: data})
}

// writeMessage renders the common {"message": ...} success payload.
func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeData(w, statusCode, map[string]string{"message": message})
}

// writeError maps an operation error to the envelope. Tagged AppErrors
// keep their message, status code, and status text; anything else is an
// unexpected failure rendered as a 500 and logged with its cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Code, errorEnvelope{
			Status:  appErr.Status,
			Message: appErr.Message,
			Code:    appErr.Code,
			Data:    nil,
		})
		return
	}

	logging.Ctx(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Unhandled error")
	writeJSON(w, http.StatusInternalServerError, errorEnvelope{
		Status:  apperr.StatusError,
		Message: "An internal server error occurred",
		Code:    http.StatusInternalServerError,
		Data:    nil,
	})
}

// writeAppError renders a tagged failure built at the HTTP layer, such
// as token and role-gate rejections.
func writeAppError(w http.ResponseWriter, appErr *apperr.AppError) {
	writeJSON(w, appErr.Code, errorEnvelope{
		Status:  appErr.Status,
		Message: appErr.Message,
		Code:    appErr.Code,
		Data:    nil,
	})
}

// writeValidationMessages renders field validation failures. The message
// carries the full list so clients can show every problem at once.
func writeValidationMessages(w http.ResponseWriter, messages []string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{
		Status:  apperr.StatusError,
		Message: messages,
		Code:    http.StatusBadRequest,
		Data:    nil,
	})
}

// notFoundHandler answers requests that match no route.
func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}{
		Status:  apperr.StatusError,
		Message: "Route not found.",
	})
}
