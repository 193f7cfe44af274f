package post

import (
	"context"
	"time"

	"postsapi/internal/core/post"
)

// PostRepository is the port for storing and retrieving posts.
// Every failure is a *post.RepoError.
type PostRepository interface {
	Create(ctx context.Context, newPost post.NewPost) (*post.Post, error)
	List(ctx context.Context) ([]post.Post, error)
	FindByID(ctx context.Context, id int64) (*post.Post, error)
}

// EventPublisher announces post lifecycle events to other processes.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, event PostCreatedEvent) error
}

const EventPostCreated = "post.created"

// PostCreatedEvent is the message sent after a post is durably stored.
type PostCreatedEvent struct {
	Type       string    `json:"type"`
	Post       post.Post `json:"post"`
	OccurredAt time.Time `json:"occurred_at"`
}
