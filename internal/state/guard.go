package state

// Decision is the route guard's verdict for a protected view.
type Decision int

const (
	// Allow renders the protected view.
	Allow Decision = iota
	// Wait shows a placeholder while the session check is in flight.
	Wait
	// RedirectLogin sends the visitor to the login view.
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Wait:
		return "wait"
	default:
		return "redirect-login"
	}
}

// Guard is a pure decision over the session: no side effects of its own.
func Guard(checking, authenticated bool) Decision {
	if checking {
		return Wait
	}
	if authenticated {
		return Allow
	}
	return RedirectLogin
}
