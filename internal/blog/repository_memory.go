package blog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Repository = (*memoryRepository)(nil)

// memoryRepository keeps posts in insertion order behind a mutex. It mirrors
// the Postgres backend's semantics and backs the test suite.
type memoryRepository struct {
	mu    sync.RWMutex
	posts []*Post
	now   func() time.Time
}

func NewMemoryRepository() Repository {
	return &memoryRepository{now: time.Now}
}

func (r *memoryRepository) Insert(_ context.Context, p NewPost) (*Post, error) {
	now := r.now().UTC()
	post := &Post{
		ID:            uuid.New(),
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		PublishedAt:   now,
		UpdatedAt:     now,
		Tags:          append([]string{}, p.Tags...),
		Featured:      p.Featured,
		ReadingTime:   ReadingTime(p.Content),
		FeaturedImage: p.FeaturedImage,
		ImageAlt:      p.ImageAlt,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, post)
	return clonePost(post), nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if p.ID == id {
			return clonePost(p), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) Update(_ context.Context, id uuid.UUID, c Changes) (*Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID != id {
			continue
		}
		if c.Title != nil {
			p.Title = *c.Title
		}
		if c.Content != nil {
			p.Content = *c.Content
			p.ReadingTime = ReadingTime(*c.Content)
		}
		if c.Excerpt != nil {
			p.Excerpt = *c.Excerpt
		}
		if c.Author != nil {
			p.Author = *c.Author
		}
		if c.Tags != nil {
			p.Tags = append([]string{}, (*c.Tags)...)
		}
		if c.Featured != nil {
			p.Featured = *c.Featured
		}
		if c.FeaturedImage != nil {
			p.FeaturedImage = c.FeaturedImage
		}
		if c.ImageAlt != nil {
			p.ImageAlt = c.ImageAlt
		}
		p.UpdatedAt = r.now().UTC()
		return clonePost(p), nil
	}
	return nil, ErrNotFound
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return id, nil
		}
	}
	return uuid.Nil, ErrNotFound
}

func (r *memoryRepository) List(_ context.Context, q Query) ([]*Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := r.filter(q)

	// Stable sort keeps insertion order for equal timestamps.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PublishedAt.After(matched[j].PublishedAt)
	})

	offset := q.Offset()
	if offset >= len(matched) {
		return []*Post{}, nil
	}
	end := offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}

	page := make([]*Post, 0, end-offset)
	for _, p := range matched[offset:end] {
		page = append(page, clonePost(p))
	}
	return page, nil
}

func (r *memoryRepository) Count(_ context.Context, q Query) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filter(q))), nil
}

func (r *memoryRepository) filter(q Query) []*Post {
	var matched []*Post
	for _, p := range r.posts {
		if matchesQuery(p, q) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesQuery(p *Post, q Query) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Content), needle) &&
			!strings.Contains(strings.ToLower(p.Excerpt), needle) {
			return false
		}
	}
	if q.Tag != "" {
		found := false
		for _, tag := range p.Tags {
			if strings.EqualFold(tag, q.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Featured != nil && p.Featured != *q.Featured {
		return false
	}
	return true
}

func clonePost(p *Post) *Post {
	out := *p
	out.Tags = append([]string{}, p.Tags...)
	return &out
}
