package dao

import (
	"context"
)

// Service is a generic keyed record store. Implementations must be safe for
// concurrent use; every call is atomic at the single-record level.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
