package domain

import (
	"context"

	"github.com/legalease/lexctl/internal/domain/entity"
)

// IdentityProvider resolves the currently signed-in user. A nil identity with
// a nil error means nobody is signed in.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*entity.UserIdentity, error)
}
