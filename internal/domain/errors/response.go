package errors

// ErrorInfo contains detailed error information.
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "USERNAME_TAKEN"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Detailed error information (optional)
}

// Response defines the envelope the error middleware renders for failures.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
}
