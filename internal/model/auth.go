// internal/model/auth.go
package model

type contextKey string

// UserIDKey carries the authenticated user's id in the request context.
const UserIDKey contextKey = "userID"
