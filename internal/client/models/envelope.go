package models

import "encoding/json"

// Envelope is the response shape of every backend endpoint.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
	Count   *int   `json:"count,omitempty"`
}

// RawEnvelope is used by endpoints whose data the client does not inspect.
type RawEnvelope = Envelope[json.RawMessage]
