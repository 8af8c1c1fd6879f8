package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the flat error envelope every endpoint returns.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// AbortWithError records the underlying error on the context for logging and
// responds with only the public message.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	resp := Response{Status: status, Error: msg}
	if err != nil {
		_ = c.Error(&gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}
