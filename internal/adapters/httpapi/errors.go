package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"postsapi/internal/core/post"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	messageInvalidInput  = "invalid input"
	messageNotFound      = "not found"
	messageInternalError = "internal server error"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError is the only place a repository error becomes an HTTP status.
// Store details never reach the client except the message of an Invalid error.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var re *post.RepoError
	if !errors.As(err, &re) {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: messageInternalError})
		return
	}
	switch re.Kind {
	case post.KindNotFound:
		c.JSON(http.StatusNotFound, errorResponse{Error: messageNotFound})
	case post.KindInvalid:
		c.JSON(http.StatusBadRequest, errorResponse{Error: re.Message})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: messageInternalError})
	}
}

// bindingMessage turns a gin binding failure into a client message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return messageInvalidInput
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
