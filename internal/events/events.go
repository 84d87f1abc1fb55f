package events

import (
	"time"

	"github.com/google/uuid"
)

const TypePostCreated = "post.created"

type PostCreatedPayload struct {
	PostID uuid.UUID `json:"post_id"`
	Title  string    `json:"title"`
	Author string    `json:"author"`
	Tags   []string  `json:"tags"`
}

type PostCreated struct {
	Type      string             `json:"type"`
	Timestamp time.Time          `json:"timestamp"`
	Payload   PostCreatedPayload `json:"payload"`
}

func NewPostCreated(postID uuid.UUID, title, author string, tags []string) PostCreated {
	return PostCreated{
		Type:      TypePostCreated,
		Timestamp: time.Now().UTC(),
		Payload: PostCreatedPayload{
			PostID: postID,
			Title:  title,
			Author: author,
			Tags:   tags,
		},
	}
}
