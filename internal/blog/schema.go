package blog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// EnsureSchema creates the blog_posts table on first run and seeds it with the
// starter FACHIG content when empty. Safe to call on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS blog_posts (
			id UUID PRIMARY KEY,
			seq BIGSERIAL,
			title VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			excerpt VARCHAR(500) NOT NULL,
			author VARCHAR(100) NOT NULL,
			published_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			tags TEXT[] NOT NULL DEFAULT '{}',
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			reading_time INTEGER NOT NULL DEFAULT 1,
			featured_image TEXT,
			image_alt VARCHAR(255)
		)`)
	if err != nil {
		return fmt.Errorf("create blog_posts: %w", err)
	}

	for _, stmt := range []string{
		`CREATE INDEX IF NOT EXISTS idx_blog_posts_published_at ON blog_posts (published_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_blog_posts_featured ON blog_posts (featured)`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	var count int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blog_posts`).Scan(&count); err != nil {
		return fmt.Errorf("count blog_posts: %w", err)
	}
	if count > 0 {
		return nil
	}
	return seedPosts(ctx, db)
}

func seedPosts(ctx context.Context, db *sql.DB) error {
	for _, p := range starterPosts() {
		_, err := db.ExecContext(ctx, `
			INSERT INTO blog_posts (
				id, title, content, excerpt, author, tags, featured,
				reading_time, featured_image, image_alt
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			uuid.New(), p.Title, p.Content, p.Excerpt, p.Author,
			pq.Array(p.Tags), p.Featured, ReadingTime(p.Content),
			nullString(p.FeaturedImage), nullString(p.ImageAlt),
		)
		if err != nil {
			return fmt.Errorf("seed post %q: %w", p.Title, err)
		}
	}
	return nil
}

func starterPosts() []NewPost {
	welcomeImage := "https://images.unsplash.com/photo-1500651230702-0e2d8a49d4ad?w=800&h=400&fit=crop&crop=center"
	welcomeAlt := "Diverse group of farmers working together in sustainable agricultural fields"
	biodiversityImage := "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=800&h=400&fit=crop&crop=center"
	biodiversityAlt := "Diverse vegetable garden showing companion planting with various crops growing together"

	return []NewPost{
		{
			Title: "Welcome to FACHIG: Cultivating Sustainable Futures",
			Content: `# Welcome to FACHIG: Cultivating Sustainable Futures

Welcome to The Farmers Association of Community Self-Help Investment Groups (FACHIG) blog! We are a values-driven organization dedicated to creating a sustainable, equitable future through community empowerment and environmental stewardship.

## Our Mission

FACHIG focuses on four key pillars that guide our work:

- **Entrepreneurial Agriculture**: Supporting farmers in developing sustainable, profitable farming enterprises
- **Agroecology**: Promoting farming practices that work in harmony with natural ecosystems
- **Biodiversity Conservation**: Protecting and restoring the rich variety of life in our agricultural landscapes
- **Ecological Restoration**: Healing damaged ecosystems and returning them to health

## Community-Driven Change

We believe that lasting change comes from within communities. Our approach empowers local farmers and community groups to build self-reliance, share knowledge, restore ecosystems, and create prosperity that benefits everyone.

Together, we're restoring harmony between humanity and the environment. Welcome to the FACHIG community!`,
			Excerpt: "Welcome to FACHIG! Discover our mission of sustainable agriculture, community empowerment, and environmental restoration through entrepreneurial farming and agroecology.",
			Author:  "FACHIG Team",
			Tags:    []string{"welcome", "sustainability", "agroecology", "community"},
			Featured:      true,
			FeaturedImage: &welcomeImage,
			ImageAlt:      &welcomeAlt,
		},
		{
			Title: "Building Biodiversity: Companion Planting for Resilient Farms",
			Content: `# Building Biodiversity: Companion Planting for Resilient Farms

Biodiversity is the foundation of healthy, resilient agricultural systems. Through companion planting and agroecological practices, farmers can create thriving ecosystems that support both productivity and environmental health.

## What is Companion Planting?

Companion planting involves growing different crops together to create beneficial relationships. Different root systems improve soil structure, natural pest deterrents reduce the need for chemicals, plants share and exchange nutrients, and strategic planting reduces water needs.

## Successful Companion Combinations

### The Three Sisters (Corn, Beans, Squash)

Corn provides support for beans to climb, beans fix nitrogen in the soil for corn and squash, and squash leaves shade the soil, retaining moisture and preventing weeds.

### Tomatoes and Basil

Basil improves tomato flavor and repels harmful insects, while tomatoes provide shade for basil during hot weather.

## Getting Started

Start small with one companion planting combination. Observe the results and gradually expand. Every farm is unique, so what works for one may need adaptation for another.`,
			Excerpt: "Discover how companion planting builds biodiversity, improves soil health, and creates resilient farms. Learn proven techniques from FACHIG's network of sustainable farmers.",
			Author:  "Maria Santos",
			Tags:    []string{"biodiversity", "companion-planting", "agroecology", "farming-tips"},
			FeaturedImage: &biodiversityImage,
			ImageAlt:      &biodiversityAlt,
		},
	}
}
