package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// RecentLimit is how many documents the dashboard view shows.
const RecentLimit = 5

// Snapshot is the registry state handed to a view. When Err is set,
// Documents is empty and Stale (if any) holds the last successful listing,
// which the view must label as such.
type Snapshot struct {
	Documents []entity.DocumentRecord
	FetchedAt time.Time
	Loaded    bool // at least one refresh has completed, successfully or not
	Err       error
	Stale     *StaleSnapshot
}

// StaleSnapshot is a previous successful listing kept for display after a failure.
type StaleSnapshot struct {
	Documents []entity.DocumentRecord
	FetchedAt time.Time
}

// DocumentRegistry caches the signed-in user's document list. The list is
// only ever replaced by a refetch, never merged locally.
type DocumentRegistry struct {
	gate   *IdentityGate
	lister domain.DocumentLister
	logger *slog.Logger
	now    func() time.Time

	mu       sync.Mutex
	seq      uint64 // bumped on every refresh start and on sign-out
	snapshot Snapshot
	lastGood *StaleSnapshot
}

// NewDocumentRegistry creates a registry bound to the gate. The registry
// drops its cached list when the gate signs out.
func NewDocumentRegistry(gate *IdentityGate, lister domain.DocumentLister, logger *slog.Logger) *DocumentRegistry {
	r := &DocumentRegistry{
		gate:   gate,
		lister: lister,
		logger: logger,
		now:    time.Now,
	}
	gate.Subscribe(func(st IdentityState) {
		r.clear()
	})
	return r
}

// Refresh refetches the document list. Responses from refreshes that were
// superseded by a later refresh or by an identity change are dropped.
func (r *DocumentRegistry) Refresh(ctx context.Context) error {
	user, err := r.gate.RequireUser()
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.seq++
	seq := r.seq
	r.mu.Unlock()

	docs, err := r.lister.ListDocuments(ctx, user.ID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if seq != r.seq {
		r.logger.Debug("dropping superseded document listing", "user_id", user.ID)
		return nil
	}

	if err != nil {
		r.logger.Warn("document listing failed", "user_id", user.ID, "error", err)
		r.snapshot = Snapshot{
			Loaded: true,
			Err:    err,
			Stale:  copyStale(r.lastGood),
		}
		return err
	}

	fetched := r.now()
	r.snapshot = Snapshot{
		Documents: copyRecords(docs),
		FetchedAt: fetched,
		Loaded:    true,
	}
	r.lastGood = &StaleSnapshot{Documents: copyRecords(docs), FetchedAt: fetched}

	r.logger.Debug("document listing refreshed", "user_id", user.ID, "count", len(docs))
	return nil
}

// Snapshot returns the current registry state.
func (r *DocumentRegistry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.snapshot
	s.Documents = copyRecords(s.Documents)
	s.Stale = copyStale(s.Stale)
	return s
}

// Documents returns the full current listing in server order.
func (r *DocumentRegistry) Documents() []entity.DocumentRecord {
	return r.Snapshot().Documents
}

// Recent returns at most n documents from the head of the listing.
func (r *DocumentRegistry) Recent(n int) []entity.DocumentRecord {
	docs := r.Documents()
	if n >= 0 && len(docs) > n {
		docs = docs[:n]
	}
	return docs
}

// Descriptor finds a listed document and returns the descriptor to open its chat.
func (r *DocumentRegistry) Descriptor(sessionID string) (entity.SessionDescriptor, bool) {
	for _, d := range r.Documents() {
		if d.SessionID == sessionID {
			return d.Descriptor(), true
		}
	}
	return entity.SessionDescriptor{}, false
}

func (r *DocumentRegistry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.snapshot = Snapshot{}
	r.lastGood = nil
}

func copyRecords(in []entity.DocumentRecord) []entity.DocumentRecord {
	if in == nil {
		return nil
	}
	out := make([]entity.DocumentRecord, len(in))
	copy(out, in)
	return out
}

func copyStale(s *StaleSnapshot) *StaleSnapshot {
	if s == nil {
		return nil
	}
	return &StaleSnapshot{Documents: copyRecords(s.Documents), FetchedAt: s.FetchedAt}
}
