package mocks

import (
	"context"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// MockIdentityProvider is a mock implementation of domain.IdentityProvider
type MockIdentityProvider struct {
	CurrentUserFunc func(ctx context.Context) (*entity.UserIdentity, error)
}

var _ domain.IdentityProvider = (*MockIdentityProvider)(nil)

// CurrentUser mocks the CurrentUser method
func (m *MockIdentityProvider) CurrentUser(ctx context.Context) (*entity.UserIdentity, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return nil, nil
}
