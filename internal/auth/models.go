// internal/auth/models.go

package auth

// Context keys for values set by the middleware
type contextKey string

const (
	ContextUserID   contextKey = "userID"
	ContextEmail    contextKey = "email"
	ContextUsername contextKey = "username"
)
