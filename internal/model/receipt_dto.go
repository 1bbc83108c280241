// Package model holds the request and response shapes of the HTTP API.
package model

import "github.com/splycehq/splyce-backend/internal/domain"

// ErrorDetail provides field-level information about an error.
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ParseReceiptRequest is the JSON body for a receipt scan. Base64 is
// the photo encoded as base64, with or without a data URL prefix.
// Clients may instead send the photo as a multipart "file" part.
type ParseReceiptRequest struct {
	Base64 string `json:"base64"`
}

// ParseReceiptResponse is the normalized receipt returned from a scan.
// The receipt fields are flattened into the top-level object.
type ParseReceiptResponse struct {
	IsReceipt bool `json:"isReceipt"`
	domain.NormalizedReceipt
}
