package database

import (
	"context"
	"time"

	"postsapi/internal/core/post"

	"gorm.io/gorm"
)

// postRow is the store representation of a post.
type postRow struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Title string `gorm:"type:text;not null"`
	Body  string `gorm:"type:text;not null"`
}

func (postRow) TableName() string { return "posts" }

func (r postRow) toPost() post.Post {
	return post.Post{ID: r.ID, Title: r.Title, Body: r.Body}
}

// PostRepositoryDatabase implements PostRepository on a shared gorm pool.
// It holds no per-call state: each operation borrows a pooled connection for
// its own duration.
type PostRepositoryDatabase struct {
	db             *gorm.DB
	acquireTimeout time.Duration
}

// NewPostRepositoryDatabase wraps db. acquireTimeout bounds each operation
// (including the wait for a free connection); zero leaves ctx as is.
func NewPostRepositoryDatabase(db *gorm.DB, acquireTimeout time.Duration) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db, acquireTimeout: acquireTimeout}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, newPost post.NewPost) (*post.Post, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	row := postRow{Title: newPost.Title, Body: newPost.Body}
	if err := repo.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, classify(err)
	}
	p := row.toPost()
	return &p, nil
}

func (repo *PostRepositoryDatabase) List(ctx context.Context) ([]post.Post, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var rows []postRow
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, classify(err)
	}
	posts := make([]post.Post, 0, len(rows))
	for _, r := range rows {
		posts = append(posts, r.toPost())
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id int64) (*post.Post, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var row postRow
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if isNotFound(err) {
			return nil, post.NotFound(id)
		}
		return nil, classify(err)
	}
	p := row.toPost()
	return &p, nil
}

func (repo *PostRepositoryDatabase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if repo.acquireTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, repo.acquireTimeout)
}
