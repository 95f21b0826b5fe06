package models

// Credentials carries a username/password pair for the login endpoint.
// The backend expects OAuth2 form-encoded fields, not JSON.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the login endpoint's response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// RegisterRequest creates a new teacher account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// ErrorResponse is the backend's standard error envelope. FastAPI-style
// backends put the human readable message under "detail"; some handlers
// use "message" or "error" instead.
type ErrorResponse struct {
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FirstMessage returns the first non-empty message field.
func (e *ErrorResponse) FirstMessage() string {
	for _, candidate := range []string{e.Detail, e.Message, e.Error} {
		if len(candidate) > 0 {
			return candidate
		}
	}
	return ""
}
