package redis

import (
	"context"
	"encoding/json"
	"fmt"

	postPort "postsapi/internal/ports/post"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PostEventsRedis publishes post events on a Redis pub/sub channel.
type PostEventsRedis struct {
	Client  *redis.Client
	Channel string
	Logger  *zap.Logger
}

func NewPostEventsRedis(client *redis.Client, channel string, logger *zap.Logger) *PostEventsRedis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostEventsRedis{
		Client:  client,
		Channel: channel,
		Logger:  logger,
	}
}

func (r *PostEventsRedis) PublishPostCreated(ctx context.Context, event postPort.PostCreatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event.Type, err)
	}

	receivers, err := r.Client.Publish(ctx, r.Channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publishing %s event: %w", event.Type, err)
	}

	r.Logger.Debug("Published post event",
		zap.String("channel", r.Channel),
		zap.String("type", event.Type),
		zap.Int64("postID", event.Post.ID),
		zap.Int64("receivers", receivers),
	)
	return nil
}
