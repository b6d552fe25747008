package state

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/models"
)

// Session tracks whether the client holds a valid authenticated session.
// It is an explicit application-level object created at startup and
// passed to the views that need it; there is no ambient global.
type Session struct {
	mu       sync.Mutex
	api      *api.Client
	log      logrus.FieldLogger
	checking bool
	current  models.Session
}

func NewSession(client *api.Client, log logrus.FieldLogger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{api: client, log: log, checking: true}
}

// Check asks the backend whether the stored cookie is still valid. A
// failed check simply leaves the client logged out; there is no retry.
func (s *Session) Check(ctx context.Context) {
	session := s.api.CheckSession(ctx)

	s.mu.Lock()
	s.current = session
	s.checking = false
	s.mu.Unlock()

	if !session.Authenticated {
		s.log.Debug("session check reported logged out")
	}
}

// Login authenticates and records the session on success. The
// unverified-email error propagates untouched so callers can redirect to
// the verification flow; everything else is returned as-is too.
func (s *Session) Login(ctx context.Context, email, password string) error {
	role, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		s.current = models.Session{}
		s.checking = false
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.current = models.Session{Authenticated: true, Role: role}
	s.checking = false
	s.mu.Unlock()
	return nil
}

// Logout tells the backend to destroy the session, then clears local
// state. Local state clears even when the call fails: the cookie may
// already be dead and a stale "logged in" belief is worse.
func (s *Session) Logout(ctx context.Context) error {
	err := s.api.Logout(ctx)

	s.mu.Lock()
	s.current = models.Session{}
	s.mu.Unlock()

	return err
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Authenticated
}

func (s *Session) Role() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Role
}

// Checking reports whether the initial session check is still in flight.
func (s *Session) Checking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checking
}

// Snapshot returns the current session value.
func (s *Session) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
