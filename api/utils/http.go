// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// JSONContentType is the content type of every API response body.
const JSONContentType = "application/json; charset=utf-8"

// statusError carries the http status a handler error maps to.
type statusError struct {
	error
	status int
}

func (e *statusError) Unwrap() error { return e.error }

// BadRequest marks cause as a client error.
func BadRequest(cause error) error {
	return &statusError{cause, http.StatusBadRequest}
}

// Forbidden marks cause as a request exceeding server limits.
func Forbidden(cause error) error {
	return &statusError{cause, http.StatusForbidden}
}

// StatusOf returns the http status err maps to. Unmarked errors are internal.
func StatusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.status
	}
	return http.StatusInternalServerError
}

// HandlerFunc is an http handler that reports failures as errors.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc responds errors returned by f as plain text with their status.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			http.Error(w, err.Error(), StatusOf(err))
		}
	}
}

// ParseJSON decodes a single JSON value from r, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// WriteJSON responds obj encoded as JSON.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}
