package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/services"
)

// TrackViewMiddleware runs the view dedup gate for "read one article"
// requests. Whatever the gate decides - record, debounce, or fail - the
// underlying read always proceeds: recording problems are logged and
// swallowed, never surfaced to the reader.
func TrackViewMiddleware(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			// Malformed id: never record; the handler will reject the read.
			c.Next()
			return
		}

		_, err := svc.Views.Track(services.ViewRequest{
			NewsID:       id,
			SessionToken: c.GetHeader("X-Session-Token"),
			Path:         c.Request.URL.Path,
			UserAgent:    c.GetHeader("User-Agent"),
			IP:           c.ClientIP(),
		})
		if err != nil {
			svc.Log.Warn("view tracking failed", zap.Uint("news_id", id), zap.Error(err))
		}

		c.Next()
	}
}
