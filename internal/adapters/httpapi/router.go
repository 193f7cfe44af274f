package httpapi

import (
	"context"
	"net/http"

	"postsapi/internal/adapters/httpapi/middleware"
	"postsapi/internal/core/post"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// PostUseCase is the inbound port the controllers depend on.
type PostUseCase interface {
	CreatePost(ctx context.Context, newPost post.NewPost) (*post.Post, error)
	ListPosts(ctx context.Context) ([]post.Post, error)
	GetPost(ctx context.Context, id int64) (*post.Post, error)
}

// SetupRoutes only wires routing; use cases are injected from outside.
func SetupRoutes(postUC PostUseCase, logger *zap.Logger, reg *prometheus.Registry) http.Handler {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		gin.Recovery(),
		middleware.NewHTTPMetrics(reg).Handler(),
	)

	pc := NewPostController(postUC)
	gc := NewGreetingController()

	r.GET("/", gc.Hello)

	r.POST("/posts", pc.CreatePost)
	r.GET("/posts", pc.ListPosts)
	r.GET("/posts/:id", pc.GetPost)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	return middleware.TrimTrailingSlash(r)
}
