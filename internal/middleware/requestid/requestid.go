package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	Header     = "X-Request-ID"
	contextKey = "requestID"
	maxLength  = 128
)

// RequestID keeps a sane client supplied X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" || len(id) > maxLength {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Header(Header, id)
		c.Next()
	}
}

func Get(c *gin.Context) string {
	return c.GetString(contextKey)
}
