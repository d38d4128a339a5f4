package ai

import "errors"

// ErrBackendUnreachable indicates a transport failure, a non-2xx status,
// or an undecodable reply from the inference endpoint.
var ErrBackendUnreachable = errors.New("ai backend unreachable")

// ErrMissingField indicates the backend replied but the envelope has no
// "response" field to read the answer from.
var ErrMissingField = errors.New("ai reply missing response field")

// ErrMalformedPayload indicates the "response" field was present but did
// not contain valid JSON.
var ErrMalformedPayload = errors.New("ai response payload malformed")
