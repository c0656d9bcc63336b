package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelbooking/internal/cache"
)

const cachePrefix = "cache:"

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves repeated GET requests from store for ttl. Only 200 responses are stored.
// Keys include the authenticated user so per-user routes do not leak.
func Cache(store cache.Store, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || ttl <= 0 {
			c.Next()
			return
		}

		key := cacheKey(c)
		if body, err := store.Get(c.Request.Context(), key); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header("X-Cache", "MISS")
		c.Next()

		if rec.Status() != http.StatusOK || rec.buf.Len() == 0 {
			return
		}
		if err := store.Set(context.WithoutCancel(c.Request.Context()), key, rec.buf.Bytes(), ttl); err != nil {
			log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// InvalidateCache drops every cached response after a successful write.
func InvalidateCache(store cache.Store, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if err := store.DeletePrefix(context.WithoutCancel(c.Request.Context()), cachePrefix); err != nil {
			log.Warn("cache invalidation failed", zap.Error(err))
		}
	}
}

func cacheKey(c *gin.Context) string {
	key := fmt.Sprintf("%s%s:%s?%s", cachePrefix, c.Request.Method, c.Request.URL.Path, c.Request.URL.Query().Encode())
	if uid := c.GetInt64("user_id"); uid != 0 {
		key += fmt.Sprintf(":u%d", uid)
	}
	return key
}
