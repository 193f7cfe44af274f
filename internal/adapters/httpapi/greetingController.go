package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type GreetingController struct{}

func NewGreetingController() *GreetingController { return &GreetingController{} }

type helloQuery struct {
	Name *string `form:"name" binding:"required"`
	Age  *uint32 `form:"age" binding:"required"`
}

type helloResponse struct {
	Greet string `json:"greet"`
}

func (ctl *GreetingController) Hello(c *gin.Context) {
	var q helloQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: bindingMessage(err)})
		return
	}
	c.JSON(http.StatusOK, helloResponse{
		Greet: fmt.Sprintf("Hello, %s! You are %d years old.", *q.Name, *q.Age),
	})
}
