package domain

// ContextKey is the type for values stored in request contexts
type ContextKey string

const (
	KeyAdminSubject ContextKey = "AdminSubject"
	KeyRequestID    ContextKey = "RequestID"
)
