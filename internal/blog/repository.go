package blog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the post store. Two implementations exist: Postgres for
// production and an in-memory one used by tests.
type Repository interface {
	Insert(ctx context.Context, p NewPost) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	Update(ctx context.Context, id uuid.UUID, c Changes) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	List(ctx context.Context, q Query) ([]*Post, error)
	Count(ctx context.Context, q Query) (int64, error)
}
