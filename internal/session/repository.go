package session

import "context"

// Repository is the durable key/value store backing the session. Only two
// keys are ever written: the bearer token and the serialized user identity.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetAll writes every pair atomically.
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
