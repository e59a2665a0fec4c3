package session

import (
	"context"

	"github.com/vaughan-dsouza/fitness/internal/models"
)

// Identity is the caller of one request: a loaded user or anonymous.
type Identity struct {
	User *models.User
}

// Anonymous is the identity of a caller without a valid session.
var Anonymous = Identity{}

func (i Identity) IsAuthenticated() bool {
	return i.User != nil
}

func (i Identity) UserID() int64 {
	if i.User == nil {
		return 0
	}
	return i.User.ID
}

// Owns reports whether the identity is the owner userID.
func (i Identity) Owns(userID int64) bool {
	return i.IsAuthenticated() && i.User.ID == userID
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request identity, Anonymous if none was attached.
func FromContext(ctx context.Context) Identity {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok {
		return Anonymous
	}
	return id
}
