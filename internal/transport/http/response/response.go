package response

import "github.com/gin-gonic/gin"

const (
	MsgInternal     = "Internal server Error"
	MsgTimeout      = "timeout"
	MsgBodyTooLarge = "request body too large"
)

// Message is the body of every error and of data-less successes.
type Message struct {
	Message string `json:"message"`
}

func Msg(s string) Message { return Message{Message: s} }

// Abort writes {message} and stops the chain.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Msg(msg))
}
