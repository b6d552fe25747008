package models

// Session is the client's belief about the current visitor. It is created
// by a session check on startup and destroyed by logout or server-side
// expiry, which is only noticed on the next check.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
}
