package entity

import "strings"

// UserIdentity is the signed-in principal issued by the identity provider.
// The client only observes it.
type UserIdentity struct {
	ID    string
	Email string
}

// DisplayName returns the local part of the email, or the ID when no email is known.
func (u *UserIdentity) DisplayName() string {
	if u == nil {
		return ""
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}
