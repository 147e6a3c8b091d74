package domain

// SessionStore persists the session credential between runs.
// The credential is opaque to callers (the service's fallback cookie).
type SessionStore interface {
	LoadSession() (string, bool)
	SaveSession(credential string) error
	ClearSession() error
}

// HistoryStore keeps recently submitted search queries, newest first
type HistoryStore interface {
	RecentQueries(limit int) []string
	AddQuery(query string) error
}
