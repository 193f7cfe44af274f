package httpapi

import (
	"net/http"
	"strconv"

	"postsapi/internal/core/post"

	"github.com/gin-gonic/gin"
)

type PostController struct{ pc PostUseCase }

// createPostRequest requires both keys; body may be an empty string.
type createPostRequest struct {
	Title string  `json:"title" binding:"required"`
	Body  *string `json:"body" binding:"required"`
}

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: bindingMessage(err)})
		return
	}
	res, err := ctl.pc.CreatePost(c.Request.Context(), post.NewPost{Title: req.Title, Body: *req.Body})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) ListPosts(c *gin.Context) {
	res, err := ctl.pc.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if res == nil {
		res = []post.Post{}
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	// An id that is not an integer cannot name a post.
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: messageNotFound})
		return
	}
	res, err := ctl.pc.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
