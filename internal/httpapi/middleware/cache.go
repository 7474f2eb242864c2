package middleware

import (
	"bytes"
	"fmt"
	"net/http"

	"eduground/internal/cache"

	"github.com/gin-gonic/gin"
)

// CachePage serves GET responses from the cache store when possible and
// records fresh 200 responses on a miss. Keys include the caller's user id
// because list and detail responses are scoped per user.
func CachePage(store *cache.Store, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := fmt.Sprintf("cache:%s:%s:%s", resource, c.GetString("userID"), c.Request.URL.RequestURI())

		if body, ok := store.Get(c.Request.Context(), key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		writer := &cachingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if writer.Status() == http.StatusOK {
			store.Set(c.Request.Context(), key, writer.body.Bytes())
		}
	}
}

// cachingWriter duplicates the response body into a buffer while writing it
// to the client.
type cachingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *cachingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
