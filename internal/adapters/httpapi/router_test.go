package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postsapi/internal/adapters/httpapi/middleware"
	"postsapi/internal/core/post"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPostUseCase struct {
	post    *post.Post
	posts   []post.Post
	err     error
	gotNew  post.NewPost
	gotID   int64
	created bool
}

func (s *stubPostUseCase) CreatePost(_ context.Context, np post.NewPost) (*post.Post, error) {
	s.created = true
	s.gotNew = np
	return s.post, s.err
}

func (s *stubPostUseCase) ListPosts(context.Context) ([]post.Post, error) {
	return s.posts, s.err
}

func (s *stubPostUseCase) GetPost(_ context.Context, id int64) (*post.Post, error) {
	s.gotID = id
	return s.post, s.err
}

func newTestRouter(uc PostUseCase) http.Handler {
	gin.SetMode(gin.TestMode)
	return SetupRoutes(uc, zap.NewNop(), prometheus.NewRegistry())
}

func performRequest(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var got errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got.Error
}

func TestPostController_CreatePost(t *testing.T) {
	t.Run("Should return the created post", func(t *testing.T) {
		uc := &stubPostUseCase{post: &post.Post{ID: 1, Title: "Hello", Body: "World"}}
		rec := performRequest(newTestRouter(uc), http.MethodPost, "/posts", `{"title":"Hello","body":"World"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":1,"title":"Hello","body":"World"}`, rec.Body.String())
		assert.Equal(t, post.NewPost{Title: "Hello", Body: "World"}, uc.gotNew)
	})
	t.Run("Should ignore a client supplied id", func(t *testing.T) {
		uc := &stubPostUseCase{post: &post.Post{ID: 3, Title: "t"}}
		rec := performRequest(newTestRouter(uc), http.MethodPost, "/posts", `{"id":99,"title":"t","body":""}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":3,"title":"t","body":""}`, rec.Body.String())
	})
	t.Run("Should reject a missing title before reaching the store", func(t *testing.T) {
		uc := &stubPostUseCase{}
		rec := performRequest(newTestRouter(uc), http.MethodPost, "/posts", `{"title":"","body":"x"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "title is required", decodeError(t, rec))
		assert.False(t, uc.created)
	})
	t.Run("Should require the body key but accept an empty body", func(t *testing.T) {
		uc := &stubPostUseCase{}
		rec := performRequest(newTestRouter(uc), http.MethodPost, "/posts", `{"title":"t"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "body is required", decodeError(t, rec))
		assert.False(t, uc.created)

		uc = &stubPostUseCase{post: &post.Post{ID: 1, Title: "t"}}
		rec = performRequest(newTestRouter(uc), http.MethodPost, "/posts", `{"title":"t","body":""}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, post.NewPost{Title: "t", Body: ""}, uc.gotNew)
	})
	t.Run("Should accept a trailing slash on create", func(t *testing.T) {
		uc := &stubPostUseCase{post: &post.Post{ID: 1, Title: "t", Body: "b"}}
		rec := performRequest(newTestRouter(uc), http.MethodPost, "/posts/", `{"title":"t","body":"b"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, uc.created)
	})
	t.Run("Should reject malformed JSON", func(t *testing.T) {
		uc := &stubPostUseCase{}
		rec := performRequest(newTestRouter(uc), http.MethodPost, "/posts", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, messageInvalidInput, decodeError(t, rec))
	})
	t.Run("Should pass the Invalid message through", func(t *testing.T) {
		uc := &stubPostUseCase{err: post.Invalid("invalid post: violates title_not_empty", errors.New("pq: secret detail"))}
		rec := performRequest(newTestRouter(uc), http.MethodPost, "/posts", `{"title":"x","body":"y"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid post: violates title_not_empty", decodeError(t, rec))
	})
	t.Run("Should hide store details on ConnectionFailed", func(t *testing.T) {
		uc := &stubPostUseCase{err: post.ConnectionFailed(errors.New("dial tcp db.internal:5432: refused"))}
		rec := performRequest(newTestRouter(uc), http.MethodPost, "/posts", `{"title":"x","body":"y"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, messageInternalError, decodeError(t, rec))
		assert.NotContains(t, rec.Body.String(), "db.internal")
	})
}

func TestPostController_ListPosts(t *testing.T) {
	t.Run("Should return all posts", func(t *testing.T) {
		uc := &stubPostUseCase{posts: []post.Post{{ID: 1, Title: "a"}, {ID: 2, Title: "b", Body: "c"}}}
		rec := performRequest(newTestRouter(uc), http.MethodGet, "/posts", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":1,"title":"a","body":""},{"id":2,"title":"b","body":"c"}]`, rec.Body.String())
	})
	t.Run("Should return an empty array, not null", func(t *testing.T) {
		rec := performRequest(newTestRouter(&stubPostUseCase{}), http.MethodGet, "/posts", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
	t.Run("Should map ConnectionFailed to 500", func(t *testing.T) {
		uc := &stubPostUseCase{err: post.ConnectionFailed(errors.New("eof"))}
		rec := performRequest(newTestRouter(uc), http.MethodGet, "/posts", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestPostController_GetPost(t *testing.T) {
	t.Run("Should return the post", func(t *testing.T) {
		uc := &stubPostUseCase{post: &post.Post{ID: 5, Title: "five", Body: "b"}}
		rec := performRequest(newTestRouter(uc), http.MethodGet, "/posts/5", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":5,"title":"five","body":"b"}`, rec.Body.String())
		assert.Equal(t, int64(5), uc.gotID)
	})
	t.Run("Should map NotFound to 404", func(t *testing.T) {
		uc := &stubPostUseCase{err: post.NotFound(9999)}
		rec := performRequest(newTestRouter(uc), http.MethodGet, "/posts/9999", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, messageNotFound, decodeError(t, rec))
	})
	t.Run("Should answer 404 for ids that are not integers", func(t *testing.T) {
		for _, target := range []string{"/posts/abc", "/posts/99999999999999999999", "/posts/1.5"} {
			uc := &stubPostUseCase{post: &post.Post{ID: 1}}
			rec := performRequest(newTestRouter(uc), http.MethodGet, target, "")

			assert.Equal(t, http.StatusNotFound, rec.Code, target)
			assert.Equal(t, messageNotFound, decodeError(t, rec), target)
			assert.Zero(t, uc.gotID, target)
		}
	})
	t.Run("Should serve a path with a trailing slash directly", func(t *testing.T) {
		uc := &stubPostUseCase{post: &post.Post{ID: 1, Title: "one"}}
		rec := performRequest(newTestRouter(uc), http.MethodGet, "/posts/1/", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(1), uc.gotID)
	})
	t.Run("Should treat unknown errors as internal", func(t *testing.T) {
		uc := &stubPostUseCase{err: errors.New("boom")}
		rec := performRequest(newTestRouter(uc), http.MethodGet, "/posts/1", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, messageInternalError, decodeError(t, rec))
	})
}

func TestGreetingController_Hello(t *testing.T) {
	r := newTestRouter(&stubPostUseCase{})

	t.Run("Should greet by name and age", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/?name=Ada&age=36", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"greet":"Hello, Ada! You are 36 years old."}`, rec.Body.String())
	})
	t.Run("Should greet an empty name", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/?name=&age=3", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"greet":"Hello, ! You are 3 years old."}`, rec.Body.String())
	})
	t.Run("Should require the name parameter", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/?age=3", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name is required", decodeError(t, rec))
	})
	t.Run("Should accept age zero", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/?name=Baby&age=0", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "You are 0 years old.")
	})
	t.Run("Should require both parameters", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/?name=Ada", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "age is required", decodeError(t, rec))
	})
	t.Run("Should reject a negative age", func(t *testing.T) {
		rec := performRequest(r, http.MethodGet, "/?name=Ada&age=-1", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, messageInvalidInput, decodeError(t, rec))
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("Should assign a request id when none is sent", func(t *testing.T) {
		rec := performRequest(newTestRouter(&stubPostUseCase{}), http.MethodGet, "/posts", "")

		assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)
	})
	t.Run("Should echo the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		newTestRouter(&stubPostUseCase{}).ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
	})
	t.Run("Should expose request metrics", func(t *testing.T) {
		r := newTestRouter(&stubPostUseCase{err: post.NotFound(1)})
		performRequest(r, http.MethodGet, "/posts/1", "")

		rec := performRequest(r, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.Contains(body, `posts_http_requests_total{method="GET",path="/posts/:id",status_code="404"} 1`), body)
	})
}
