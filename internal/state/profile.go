package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/paanihub/paanictl/internal/api"
	"github.com/paanihub/paanictl/internal/models"
)

// Profile holds the authenticated account's profile record and the
// mutators the views use. The backend owns the record; this is a snapshot
// refreshed once per authentication transition.
type Profile struct {
	mu         sync.Mutex
	api        *api.Client
	log        logrus.FieldLogger
	current    *models.Profile
	wasAuthed  bool
	fetchError error
}

func NewProfile(client *api.Client, log logrus.FieldLogger) *Profile {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Profile{api: client, log: log}
}

// Sync fetches the profile when the session transitions to authenticated
// and drops it when the session goes away. Repeated calls with an
// unchanged session are no-ops.
func (p *Profile) Sync(ctx context.Context, authenticated bool) error {
	p.mu.Lock()
	transitionedIn := authenticated && !p.wasAuthed
	transitionedOut := !authenticated && p.wasAuthed
	p.wasAuthed = authenticated
	p.mu.Unlock()

	if transitionedOut {
		p.mu.Lock()
		p.current = nil
		p.mu.Unlock()
		return nil
	}
	if !transitionedIn {
		return nil
	}

	profile, err := p.api.FetchProfile(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.fetchError = err
		return fmt.Errorf("failed to fetch profile: %w", err)
	}
	p.current = profile
	p.fetchError = nil
	return nil
}

// Current returns a copy of the profile, or nil when no profile is
// loaded.
func (p *Profile) Current() *models.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	copied := *p.current
	return &copied
}

// Update merges a partial edit into the local snapshot only. Persistence
// happens separately through the update-profile form submission, so this
// exists for optimistic view state.
func (p *Profile) Update(update models.ProfileUpdate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return
	}
	p.current.Apply(update)
}

// SwitchRole persists the role change first and mutates local state only
// after the backend confirms. On failure the previous role stays in place
// and the error is surfaced to the caller instead of being swallowed.
func (p *Profile) SwitchRole(ctx context.Context, role string) error {
	if role != models.RoleUser && role != models.RoleDriver {
		return fmt.Errorf("unknown role %q", role)
	}

	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return fmt.Errorf("no profile loaded")
	}
	prior := p.current.Role
	p.mu.Unlock()

	if prior == role {
		return nil
	}

	if err := p.api.UpdateRole(ctx, role); err != nil {
		p.log.WithError(err).WithField("role", role).Warn("role switch rejected by backend")
		return fmt.Errorf("failed to switch role to %s: %w", role, err)
	}

	p.mu.Lock()
	if p.current != nil {
		p.current.Role = role
	}
	p.mu.Unlock()
	return nil
}

// Complete reports whether every required field for the current role is
// filled. Recomputed on every call from current state; no caching.
func (p *Profile) Complete() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.Complete()
}
