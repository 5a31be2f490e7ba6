package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRejected matches every *RejectedError via errors.Is.
var ErrRejected = errors.New("hoverfly rejected the request")

// RejectedError is returned when a mutating call gets a non-200 response.
type RejectedError struct {
	// Operation names the call, e.g. "mode" or "simulation upload".
	Operation  string
	StatusCode int
	// Payload is the JSON body that was sent, if any.
	Payload []byte
	// ServerError is the "error" field of the response, or the raw body
	// when the response is not a JSON error document.
	ServerError string
}

func (e *RejectedError) Error() string {
	payload := string(e.Payload)
	if payload == "" {
		payload = "null"
	}
	return fmt.Sprintf("hoverfly %s rejected. Payload: %s Response: %s", e.Operation, payload, e.ServerError)
}

// Is reports ErrRejected as a match.
func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// DecodeError is returned when a response body is not the expected JSON.
type DecodeError struct {
	Operation  string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response (status %d): %v: %s", e.Operation, e.StatusCode, e.Err, truncate(e.Body, 512))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type errorResponse struct {
	Error string `json:"error"`
}

func serverError(body []byte) string {
	if msg, ok := errorDocument(body); ok {
		return msg
	}
	return string(bytes.TrimSpace(body))
}

// errorDocument reports whether body is an {"error": "..."} document.
func errorDocument(body []byte) (string, bool) {
	var resp errorResponse
	if json.Unmarshal(body, &resp) != nil || resp.Error == "" {
		return "", false
	}
	return resp.Error, true
}

// hasObject reports whether body is a JSON object whose key holds an object.
func hasObject(body []byte, key string) bool {
	var doc map[string]json.RawMessage
	if json.Unmarshal(body, &doc) != nil {
		return false
	}
	raw := bytes.TrimSpace(doc[key])
	return len(raw) > 0 && raw[0] == '{'
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
