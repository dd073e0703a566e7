// Garderobe - Wardrobe Cataloguing and Outfit Recommendation
// Copyright 2026 Garderobe Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe/garderobe

// Package models holds the shared API response envelope. Every endpoint
// wraps its payload in APIResponse so clients get one consistent shape.
package models

import "time"

// APIResponse is the envelope for all API responses.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	// ElapsedMS is the server-side processing time in milliseconds.
	ElapsedMS int64 `json:"elapsed_ms,omitempty"`
}

// APIError is a structured error payload.
//
// Common codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - NOT_FOUND: resource does not exist
//   - DUPLICATE_ITEM: upload duplicates an existing entry
//   - INFEASIBLE: no outfit can satisfy the request constraints
//   - STORAGE_ERROR: persistence failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Success wraps a payload in a success envelope.
func Success(data interface{}) *APIResponse {
	return &APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
	}
}

// Failure wraps an error in an error envelope.
func Failure(code, message string) *APIResponse {
	return &APIResponse{
		Status:   "error",
		Metadata: Metadata{Timestamp: time.Now().UTC()},
		Error:    &APIError{Code: code, Message: message},
	}
}
