package session

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/legalease/lexctl/internal/domain/entity"
	"github.com/legalease/lexctl/internal/domain/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signedInGate returns a gate already resolved to user.
func signedInGate(user *entity.UserIdentity) *IdentityGate {
	g := NewIdentityGate(&mocks.MockIdentityProvider{}, testLogger())
	if user != nil {
		g.SignIn(user)
	} else {
		g.SignOut()
	}
	return g
}

func testFile(name string) entity.UploadFile {
	return entity.UploadFile{
		Name:        name,
		ContentType: "application/pdf",
		Size:        4,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader("%PDF")), nil
		},
	}
}

// countingRefresher records how often Refresh was called.
type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) error {
	r.calls++
	return r.err
}
