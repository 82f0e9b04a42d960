// Package types holds the wire envelopes shared by every quoteline endpoint.
package types

// SuccessEnvelope wraps every successful response body, so clients
// unmarshal `data` without caring which resource they asked for.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public face of a coded error. Details carries
// field-level validation messages when the error allows them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every failed response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
