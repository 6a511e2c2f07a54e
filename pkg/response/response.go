// Package response writes JSON responses.
//
// Successful data responses are written raw with JSON so the wire shapes
// match what clients already consume (e.g. {"token": "..."} or a bare
// array). Errors use a small envelope with a machine-readable message.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON response.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 JSON response.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Status: status, Message: message})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"status":  http.StatusUnprocessableEntity,
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Unauthorized sends a 401 with an optional reason.
func Unauthorized(w http.ResponseWriter, message ...string) {
	msg := "unauthorized access"
	if len(message) > 0 {
		msg = message[0]
	}
	Error(w, http.StatusUnauthorized, msg)
}

// Forbidden sends a 403 with an optional reason.
func Forbidden(w http.ResponseWriter, message ...string) {
	msg := "forbidden access"
	if len(message) > 0 {
		msg = message[0]
	}
	Error(w, http.StatusForbidden, msg)
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "not found")
}
