package config

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// userNamespace scopes user ids derived from an email address.
var userNamespace = uuid.MustParse("8f4a1c52-3d0e-5b7a-9e61-2c4d8b0f7a13")

// DeriveUserID returns the stable user id for an email address.
func DeriveUserID(email string) string {
	return uuid.NewSHA1(userNamespace, []byte(strings.ToLower(strings.TrimSpace(email)))).String()
}

// FileIdentityProvider reports the user recorded by `lexctl login`.
type FileIdentityProvider struct{}

var _ domain.IdentityProvider = FileIdentityProvider{}

// CurrentUser returns the signed-in user, or nil when nobody is signed in.
func (FileIdentityProvider) CurrentUser(ctx context.Context) (*entity.UserIdentity, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if !cfg.IsAuthenticated() {
		return nil, nil
	}
	return &entity.UserIdentity{ID: cfg.UserID, Email: cfg.Email}, nil
}
