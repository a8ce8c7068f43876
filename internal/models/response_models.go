package models

// ErrorResponse is the error envelope shared by handlers and middleware.
// Payment callback and poll routes report the text under message, every
// other route under error.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}
