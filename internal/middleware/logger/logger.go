package logger

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rawen554/qrcodegen/internal/middleware/requestid"
	"go.uber.org/zap"
)

// Logger logs every request; the request body is logged at debug level.
func Logger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uri := c.Request.RequestURI
		method := c.Request.Method

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(c.Request.Body)
			var rest io.Reader = bytes.NewReader(body)
			if err != nil {
				logger.Errorf("error reading request body: %v", err)
				rest = io.MultiReader(rest, failingReader{err: err})
			}
			c.Request.Body = io.NopCloser(rest)
		}

		t := time.Now()
		c.Next()
		duration := time.Since(t)

		logger.Infoln(
			"RequestID", requestid.Get(c),
			"URI", uri,
			"Method", method,
			"Duration", duration,
			"Status", c.Writer.Status(),
			"Size", c.Writer.Size(),
		)
		logger.Debugln("Data", string(body))
	}
}

// failingReader hands the original read error on to the handler.
type failingReader struct {
	err error
}

func (r failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
