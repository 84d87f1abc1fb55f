package blog

import (
	"context"
	"log/slog"

	"github.com/fachig/blog-api/internal/events"
	"github.com/google/uuid"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type Service struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

func (s *Service) CreatePost(ctx context.Context, p NewPost) (*Post, error) {
	post, err := s.repo.Insert(ctx, p)
	if err != nil {
		return nil, err
	}

	// Event delivery is best effort; a broker outage must not fail the write.
	e := events.NewPostCreated(post.ID, post.Title, post.Author, post.Tags)
	if err := s.publisher.PublishPostCreated(ctx, e); err != nil {
		s.logger.Error("publish post.created failed", "post_id", post.ID, "error", err)
	}
	return post, nil
}

func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPosts normalizes pagination before querying: bad page/limit values fall
// back to defaults instead of erroring.
func (s *Service) ListPosts(ctx context.Context, q Query) (*ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}

	items, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Post{}
	}

	return &ListResult{
		Items: items,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}

func (s *Service) UpdatePost(ctx context.Context, id uuid.UUID, c Changes) (*Post, error) {
	return s.repo.Update(ctx, id, c)
}

func (s *Service) DeletePost(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	return s.repo.Delete(ctx, id)
}
