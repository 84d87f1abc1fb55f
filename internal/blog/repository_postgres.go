package blog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

const postColumns = `id, title, content, excerpt, author, published_at, updated_at,
	tags, featured, reading_time, featured_image, image_alt`

var _ Repository = (*postgresRepository)(nil)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, p NewPost) (*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	post := &Post{
		ID:            uuid.New(),
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		Author:        p.Author,
		PublishedAt:   now,
		UpdatedAt:     now,
		Tags:          p.Tags,
		Featured:      p.Featured,
		ReadingTime:   ReadingTime(p.Content),
		FeaturedImage: p.FeaturedImage,
		ImageAlt:      p.ImageAlt,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO blog_posts (
			id, title, content, excerpt, author, published_at, updated_at,
			tags, featured, reading_time, featured_image, image_alt
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		post.ID, post.Title, post.Content, post.Excerpt, post.Author,
		post.PublishedAt, post.UpdatedAt, pq.Array(post.Tags), post.Featured,
		post.ReadingTime, nullString(post.FeaturedImage), nullString(post.ImageAlt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return post, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, c Changes) (*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := updateSet{}
	set.add("title", c.Title)
	if c.Content != nil {
		set.add("content", c.Content)
		rt := ReadingTime(*c.Content)
		set.addValue("reading_time", rt)
	}
	set.add("excerpt", c.Excerpt)
	set.add("author", c.Author)
	if c.Tags != nil {
		set.addValue("tags", pq.Array(*c.Tags))
	}
	if c.Featured != nil {
		set.addValue("featured", *c.Featured)
	}
	if c.FeaturedImage != nil {
		set.addValue("featured_image", *c.FeaturedImage)
	}
	if c.ImageAlt != nil {
		set.addValue("image_alt", *c.ImageAlt)
	}
	set.addValue("updated_at", time.Now().UTC())

	query := fmt.Sprintf(`UPDATE blog_posts SET %s WHERE id = $%d RETURNING `+postColumns,
		set.clause(), len(set.args)+1)
	row := r.db.QueryRowContext(ctx, query, append(set.args, id)...)
	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var deleted uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM blog_posts WHERE id = $1 RETURNING id`, id).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("delete post: %w", err)
	}
	return deleted, nil
}

func (r *postgresRepository) List(ctx context.Context, q Query) ([]*Post, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	where, args := buildWhere(q)
	query := fmt.Sprintf(
		`SELECT `+postColumns+` FROM blog_posts %s ORDER BY published_at DESC, seq ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *postgresRepository) Count(ctx context.Context, q Query) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	where, args := buildWhere(q)
	var total int64
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM blog_posts %s`, where), args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

// buildWhere maps the closed set of filters onto parameterized predicates.
// User input only ever travels through query args.
func buildWhere(q Query) (string, []any) {
	var conds []string
	var args []any

	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR content ILIKE $%d OR excerpt ILIKE $%d)", n, n, n))
	}
	if q.Tag != "" {
		args = append(args, q.Tag)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(tags) AS t WHERE lower(t) = lower($%d))", len(args)))
	}
	if q.Featured != nil {
		args = append(args, *q.Featured)
		conds = append(conds, fmt.Sprintf("featured = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

type updateSet struct {
	cols []string
	args []any
}

func (s *updateSet) add(col string, v *string) {
	if v != nil {
		s.addValue(col, *v)
	}
}

func (s *updateSet) addValue(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *updateSet) clause() string {
	return strings.Join(s.cols, ", ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	var tags pq.StringArray
	var featuredImage, imageAlt sql.NullString

	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Author,
		&p.PublishedAt, &p.UpdatedAt, &tags, &p.Featured, &p.ReadingTime,
		&featuredImage, &imageAlt)
	if err != nil {
		return nil, err
	}

	p.Tags = tags
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if featuredImage.Valid {
		p.FeaturedImage = &featuredImage.String
	}
	if imageAlt.Valid {
		p.ImageAlt = &imageAlt.String
	}
	return &p, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
