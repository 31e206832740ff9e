package contract

import (
	"context"

	"cooking-assistant-be/pkg/store"
)

// SessionRepository stores conversational sessions by opaque session key.
type SessionRepository interface {
	// Get reports found=false, with a nil error, for unknown or expired keys.
	Get(ctx context.Context, key string) (*store.Session, bool, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, key string) error
}
