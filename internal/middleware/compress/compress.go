package compress

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type compressWriter struct {
	gin.ResponseWriter
	zw *gzip.Writer
}

func newCompressWriter(w gin.ResponseWriter) *compressWriter {
	return &compressWriter{
		ResponseWriter: w,
	}
}

// Write starts the gzip stream on the first body byte so that
// bodyless responses are sent untouched.
func (c *compressWriter) Write(p []byte) (int, error) {
	if c.zw == nil {
		c.Header().Del("Content-Length")
		c.Header().Set("Content-Encoding", "gzip")
		c.Header().Add("Vary", "Accept-Encoding")
		c.zw = gzip.NewWriter(c.ResponseWriter)
	}
	return c.zw.Write(p)
}

func (c *compressWriter) WriteString(s string) (int, error) {
	return c.Write([]byte(s))
}

// Close закрывает gzip.Writer и досылает все данные из буфера.
func (c *compressWriter) Close() error {
	if c.zw == nil {
		return nil
	}
	return c.zw.Close()
}

// compressReader реализует интерфейс io.ReadCloser и позволяет прозрачно для сервера
// декомпрессировать получаемые от клиента данные
type compressReader struct {
	r  io.ReadCloser
	zr *gzip.Reader
}

func newCompressReader(r io.ReadCloser) (*compressReader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &compressReader{
		r:  r,
		zr: zr,
	}, nil
}

func (c compressReader) Read(p []byte) (n int, err error) {
	return c.zr.Read(p)
}

func (c *compressReader) Close() error {
	if err := c.r.Close(); err != nil {
		return err
	}
	return c.zr.Close()
}

func Compress(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentEncoding := c.Request.Header.Get("Content-Encoding")
		if strings.Contains(contentEncoding, "gzip") {
			// оборачиваем тело запроса в io.Reader с поддержкой декомпрессии
			cr, err := newCompressReader(c.Request.Body)
			if err != nil {
				logger.Errorf("error reading gzip body: %v", err)
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid gzip body"})
				return
			}
			c.Request.Body = cr
			c.Request.Header.Del("Content-Encoding")
			defer func() {
				if err := cr.Close(); err != nil {
					logger.Errorf("error closing gzip body: %v", err)
				}
			}()
		}

		acceptEncoding := c.Request.Header.Get("Accept-Encoding")
		if strings.Contains(acceptEncoding, "gzip") {
			// оборачиваем оригинальный http.ResponseWriter новым с поддержкой сжатия
			cw := newCompressWriter(c.Writer)
			c.Writer = cw
			// не забываем отправить клиенту все сжатые данные после завершения middleware
			defer func() {
				if err := cw.Close(); err != nil {
					logger.Errorf("error closing gzip writer: %v", err)
				}
			}()
		}

		// передаём управление хендлеру
		c.Next()
	}
}
