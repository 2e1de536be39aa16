package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
	"github.com/legalease/lexctl/internal/domain/mocks"
)

func records(n int) []entity.DocumentRecord {
	out := make([]entity.DocumentRecord, n)
	for i := range out {
		out[i] = entity.DocumentRecord{
			SessionID: fmt.Sprintf("s-%d", i),
			Title:     fmt.Sprintf("doc-%d.pdf", i),
			Time:      "3/14/2025, 09:26:53 AM",
		}
	}
	return out
}

func TestDocumentRegistry_RefreshKeepsServerOrder(t *testing.T) {
	var gotUser string
	backend := &mocks.MockBackend{
		ListDocumentsFunc: func(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
			gotUser = userID
			return records(7), nil
		},
	}
	r := NewDocumentRegistry(signedInGate(&entity.UserIdentity{ID: "u-1"}), backend, testLogger())

	require.NoError(t, r.Refresh(context.Background()))
	assert.Equal(t, "u-1", gotUser)

	docs := r.Documents()
	require.Len(t, docs, 7)
	assert.Equal(t, "s-0", docs[0].SessionID)
	assert.Equal(t, "s-6", docs[6].SessionID)

	recent := r.Recent(RecentLimit)
	require.Len(t, recent, 5)
	assert.Equal(t, docs[:5], recent)

	snap := r.Snapshot()
	assert.True(t, snap.Loaded)
	assert.NoError(t, snap.Err)
	assert.Nil(t, snap.Stale)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestDocumentRegistry_FailureIsDistinguishableFromSuccess(t *testing.T) {
	fail := false
	backend := &mocks.MockBackend{
		ListDocumentsFunc: func(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
			if fail {
				return nil, domain.NewTransportError("Failed to load documents. Please try again.", nil)
			}
			return records(2), nil
		},
	}
	r := NewDocumentRegistry(signedInGate(&entity.UserIdentity{ID: "u-1"}), backend, testLogger())
	fixed := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	require.NoError(t, r.Refresh(context.Background()))

	fail = true
	err := r.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsTransport(err))

	snap := r.Snapshot()
	assert.Empty(t, snap.Documents)
	assert.Equal(t, err, snap.Err)
	require.NotNil(t, snap.Stale)
	assert.Len(t, snap.Stale.Documents, 2)
	assert.Equal(t, fixed, snap.Stale.FetchedAt)
}

func TestDocumentRegistry_FailureWithoutPreviousSnapshot(t *testing.T) {
	backend := &mocks.MockBackend{
		ListDocumentsFunc: func(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
			return nil, domain.NewServerReportedError(500, "database unavailable")
		},
	}
	r := NewDocumentRegistry(signedInGate(&entity.UserIdentity{ID: "u-1"}), backend, testLogger())

	require.Error(t, r.Refresh(context.Background()))
	snap := r.Snapshot()
	assert.True(t, snap.Loaded)
	assert.Nil(t, snap.Stale)
	assert.Equal(t, "database unavailable", domain.UserMessage(snap.Err, ""))
}

func TestDocumentRegistry_RequiresSignedInUser(t *testing.T) {
	called := false
	backend := &mocks.MockBackend{
		ListDocumentsFunc: func(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
			called = true
			return nil, nil
		},
	}

	loading := NewIdentityGate(&mocks.MockIdentityProvider{}, testLogger())
	err := NewDocumentRegistry(loading, backend, testLogger()).Refresh(context.Background())
	assert.ErrorIs(t, err, ErrIdentityLoading)

	err = NewDocumentRegistry(signedInGate(nil), backend, testLogger()).Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNotSignedIn)

	assert.False(t, called)
}

func TestDocumentRegistry_SupersededRefreshIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0
	backend := &mocks.MockBackend{
		ListDocumentsFunc: func(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
			calls++
			if calls == 1 {
				close(started)
				<-release
				return records(1), nil
			}
			return records(3), nil
		},
	}
	r := NewDocumentRegistry(signedInGate(&entity.UserIdentity{ID: "u-1"}), backend, testLogger())

	done := make(chan error)
	go func() { done <- r.Refresh(context.Background()) }()
	<-started

	require.NoError(t, r.Refresh(context.Background()))
	close(release)
	require.NoError(t, <-done)

	assert.Len(t, r.Documents(), 3)
}

func TestDocumentRegistry_ClearedOnSignOut(t *testing.T) {
	gate := signedInGate(&entity.UserIdentity{ID: "u-1"})
	backend := &mocks.MockBackend{
		ListDocumentsFunc: func(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
			return records(2), nil
		},
	}
	r := NewDocumentRegistry(gate, backend, testLogger())
	require.NoError(t, r.Refresh(context.Background()))
	require.Len(t, r.Documents(), 2)

	gate.SignOut()

	snap := r.Snapshot()
	assert.Empty(t, snap.Documents)
	assert.False(t, snap.Loaded)
	assert.Nil(t, snap.Stale)
}

func TestDocumentRegistry_Descriptor(t *testing.T) {
	backend := &mocks.MockBackend{
		ListDocumentsFunc: func(ctx context.Context, userID string) ([]entity.DocumentRecord, error) {
			return records(3), nil
		},
	}
	r := NewDocumentRegistry(signedInGate(&entity.UserIdentity{ID: "u-1"}), backend, testLogger())
	require.NoError(t, r.Refresh(context.Background()))

	d, ok := r.Descriptor("s-1")
	require.True(t, ok)
	assert.Equal(t, entity.SessionDescriptor{SessionID: "s-1", Title: "doc-1.pdf"}, d)

	_, ok = r.Descriptor("missing")
	assert.False(t, ok)
}
