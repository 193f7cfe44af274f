package postapp

import (
	"context"
	"time"

	postEntity "postsapi/internal/core/post"
	postPort "postsapi/internal/ports/post"

	"go.uber.org/zap"
)

type PostService struct {
	PostRepository postPort.PostRepository
	Events         postPort.EventPublisher // optional
	Logger         *zap.Logger
	now            func() time.Time
}

func NewPostService(postRepo postPort.PostRepository, events postPort.EventPublisher, logger *zap.Logger) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{
		PostRepository: postRepo,
		Events:         events,
		Logger:         logger,
		now:            time.Now,
	}
}

// CreatePost stores a new post and announces it. A failed announcement is
// logged only: the post is already durable at that point.
func (s *PostService) CreatePost(ctx context.Context, newPost postEntity.NewPost) (*postEntity.Post, error) {
	created, err := s.PostRepository.Create(ctx, newPost)
	if err != nil {
		s.logFailure("create post", err)
		return nil, err
	}
	s.Logger.Info("Created post", zap.Int64("id", created.ID))

	if s.Events != nil {
		event := postPort.PostCreatedEvent{
			Type:       postPort.EventPostCreated,
			Post:       *created,
			OccurredAt: s.now().UTC(),
		}
		if err := s.Events.PublishPostCreated(ctx, event); err != nil {
			s.Logger.Warn("Could not publish post event", zap.Int64("id", created.ID), zap.Error(err))
		}
	}
	return created, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]postEntity.Post, error) {
	posts, err := s.PostRepository.List(ctx)
	if err != nil {
		s.logFailure("list posts", err)
		return nil, err
	}
	return posts, nil
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		s.logFailure("get post", err)
		return nil, err
	}
	s.Logger.Debug("Fetched post", zap.Int64("id", p.ID), zap.String("title", p.Title))
	return p, nil
}

func (s *PostService) logFailure(op string, err error) {
	kind, _ := postEntity.KindOf(err)
	if kind == postEntity.KindConnectionFailed || kind == 0 {
		s.Logger.Error("Post repository failure", zap.String("op", op), zap.Error(err))
		return
	}
	s.Logger.Debug("Post request rejected", zap.String("op", op), zap.Stringer("kind", kind), zap.Error(err))
}
