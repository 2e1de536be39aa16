package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// IdentityPhase is the tri-state of the identity gate.
type IdentityPhase int

const (
	IdentityLoading IdentityPhase = iota
	IdentityAbsent
	IdentityPresent
)

func (p IdentityPhase) String() string {
	switch p {
	case IdentityLoading:
		return "loading"
	case IdentityAbsent:
		return "absent"
	case IdentityPresent:
		return "present"
	default:
		return "unknown"
	}
}

// IdentityState is what the gate exposes to its consumers.
type IdentityState struct {
	Phase IdentityPhase
	User  *entity.UserIdentity // non-nil only when Phase is IdentityPresent
}

// Loading reports whether the identity is not resolved yet.
func (s IdentityState) Loading() bool {
	return s.Phase == IdentityLoading
}

// ErrIdentityLoading is returned by RequireUser before the first resolution.
var ErrIdentityLoading = domain.NewPreconditionError("identity is still loading, please wait")

// ErrNotSignedIn is returned by RequireUser when nobody is signed in.
var ErrNotSignedIn = domain.NewPreconditionError("not signed in, run 'lexctl login' first")

// IdentityGate resolves the current user and gates every authenticated request.
type IdentityGate struct {
	provider domain.IdentityProvider
	logger   *slog.Logger

	mu          sync.Mutex
	state       IdentityState
	subscribers map[int]func(IdentityState)
	nextSubID   int
}

// NewIdentityGate creates a gate in the loading phase.
func NewIdentityGate(provider domain.IdentityProvider, logger *slog.Logger) *IdentityGate {
	return &IdentityGate{
		provider:    provider,
		logger:      logger,
		state:       IdentityState{Phase: IdentityLoading},
		subscribers: make(map[int]func(IdentityState)),
	}
}

// Resolve asks the provider for the current user. A provider failure leaves
// the gate absent and is returned to the caller.
func (g *IdentityGate) Resolve(ctx context.Context) error {
	user, err := g.provider.CurrentUser(ctx)
	if err != nil {
		g.logger.Warn("identity resolution failed", "error", err)
		g.set(nil)
		return err
	}
	g.set(user)
	return nil
}

// SignIn makes user the current identity.
func (g *IdentityGate) SignIn(user *entity.UserIdentity) {
	g.set(user)
}

// SignOut clears the current identity. Subscribers have been notified when
// SignOut returns.
func (g *IdentityGate) SignOut() {
	g.set(nil)
}

// State returns the current identity state.
func (g *IdentityGate) State() IdentityState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return copyState(g.state)
}

// RequireUser returns the signed-in user or a precondition error.
func (g *IdentityGate) RequireUser() (*entity.UserIdentity, error) {
	st := g.State()
	switch st.Phase {
	case IdentityLoading:
		return nil, ErrIdentityLoading
	case IdentityAbsent:
		return nil, ErrNotSignedIn
	}
	return st.User, nil
}

// Subscribe registers fn for identity transitions. fn runs synchronously on
// the goroutine that caused the transition. The returned func unsubscribes.
func (g *IdentityGate) Subscribe(fn func(IdentityState)) func() {
	g.mu.Lock()
	id := g.nextSubID
	g.nextSubID++
	g.subscribers[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.subscribers, id)
		g.mu.Unlock()
	}
}

func (g *IdentityGate) set(user *entity.UserIdentity) {
	next := IdentityState{Phase: IdentityAbsent}
	if user != nil && user.ID != "" {
		u := *user
		next = IdentityState{Phase: IdentityPresent, User: &u}
	}

	g.mu.Lock()
	changed := !sameIdentity(g.state, next)
	g.state = next
	subs := make([]func(IdentityState), 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		subs = append(subs, fn)
	}
	g.mu.Unlock()

	if !changed {
		return
	}

	g.logger.Debug("identity changed", "phase", next.Phase.String())

	// Notify outside the lock; subscribers may call back into the gate.
	for _, fn := range subs {
		fn(copyState(next))
	}
}

func sameIdentity(a, b IdentityState) bool {
	if a.Phase != b.Phase {
		return false
	}
	if a.User == nil || b.User == nil {
		return a.User == b.User
	}
	return a.User.ID == b.User.ID
}

func copyState(s IdentityState) IdentityState {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
