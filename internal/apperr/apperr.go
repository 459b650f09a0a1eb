// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the error codes surfaced to API callers and maps
// them to HTTP status codes. Domain packages return *Error values; handlers
// translate them with HTTPStatus.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a short machine-readable error identifier.
type Code string

const (
	InvalidColor        Code = "invalid_color"
	MissingField        Code = "missing_field"
	UnsupportedFormat   Code = "unsupported_format"
	NotFound            Code = "not_found"
	RasterizationFailed Code = "rasterization_failed"
	InvalidLayout       Code = "invalid_layout"
	InvalidRequest      Code = "invalid_request"
	PayloadTooLarge     Code = "payload_too_large"
	RateLimited         Code = "rate_limited"
	Internal            Code = "internal"
)

// Error is an application error with a code and a caller-facing message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an Error that keeps err as its cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or Internal when err carries none.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return Internal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// HTTPStatus maps a code to the response status used by the API.
func HTTPStatus(code Code) int {
	switch code {
	case InvalidColor, MissingField, UnsupportedFormat, RasterizationFailed, InvalidLayout, InvalidRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case PayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
