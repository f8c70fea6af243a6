package constants

// Session / context keys
const (
	SessionCookieName = "project_session"
	ContextKeyUserID  = "user_id"
	ContextKeyProject = "project"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination bounds
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DefaultOrderStart is the first order value assigned during a column
// reorder when the caller does not specify one.
const DefaultOrderStart = 1
