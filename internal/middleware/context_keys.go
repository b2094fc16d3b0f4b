package middleware

// ContextKey is a private key type for request-context values.
type ContextKey string

// UserIDCtxKey carries the authenticated user's id through the request
// context.
const UserIDCtxKey = ContextKey("user_id")
