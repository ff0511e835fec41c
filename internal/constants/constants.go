package constants

// Session / context keys
const (
	ContextKeyUserID = "user_id"
	SessionName      = "artwork_session"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const MinPasswordLength = 8
