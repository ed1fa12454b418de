// Commune - Social Network Backend
// Copyright 2026 The Commune Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commune-social/commune

// Package apperr defines the tagged error type returned by every service
// operation. An AppError carries the client-facing message, the HTTP status
// code, and the envelope status text, so handlers can render the response
// envelope without inspecting error strings.
package apperr

import "net/http"

// Envelope status texts. Success responses use StatusSuccess; expected
// domain failures use StatusFail; everything else uses StatusError.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFail    = "fail"
)

// AppError is an expected operation failure with a client-facing message.
type AppError struct {
	Message string
	Code    int
	Status  string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return e.Message
}

// New constructs an AppError with an explicit status text.
func New(message string, code int, status string) *AppError {
	return &AppError{Message: message, Code: code, Status: status}
}

// BadRequest returns a 400 error-status failure.
func BadRequest(message string) *AppError {
	return New(message, http.StatusBadRequest, StatusError)
}

// BadRequestFail returns a 400 fail-status failure, used where the
// operation was well-formed but domain rules reject it.
func BadRequestFail(message string) *AppError {
	return New(message, http.StatusBadRequest, StatusFail)
}

// Unauthorized returns a 401 fail-status failure.
func Unauthorized(message string) *AppError {
	return New(message, http.StatusUnauthorized, StatusFail)
}

// Forbidden returns a 403 fail-status failure.
func Forbidden(message string) *AppError {
	return New(message, http.StatusForbidden, StatusFail)
}

// NotFound returns a 404 error-status failure.
func NotFound(message string) *AppError {
	return New(message, http.StatusNotFound, StatusError)
}

// Conflict returns a 409 error-status failure.
func Conflict(message string) *AppError {
	return New(message, http.StatusConflict, StatusError)
}
