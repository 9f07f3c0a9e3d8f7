package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/services"
)

// TrackEventRequest is the JSON body for the generic tracking endpoint.
type TrackEventRequest struct {
	Type   string `json:"type" binding:"required"`
	NewsID *uint  `json:"newsId"`
	Path   string `json:"path"`
	UserID *uint  `json:"userId"`
}

// TrackEventHandler records one client-posted event (click, interaction).
// User agent and IP are captured server-side, never trusted from the body.
func TrackEventHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrackEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		event, err := svc.Analytics.Track(services.TrackInput{
			Type:      req.Type,
			NewsID:    req.NewsID,
			Path:      req.Path,
			UserID:    req.UserID,
			UserAgent: c.GetHeader("User-Agent"),
			IP:        c.ClientIP(),
		})
		if err != nil {
			if errors.Is(err, customerrors.ErrEmptyEventType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Event type must be a non-empty string"})
				return
			}
			svc.Log.Error("failed to track event", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to track event"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true, "id": event.ID})
	}
}

// ListAuditLogsHandler serves the paginated, enriched audit log.
// Query parameters: type, page, limit.
func ListAuditLogsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := svc.Audit.List(
			c.Query("type"),
			queryInt(c, "page", 1),
			queryInt(c, "limit", 0),
		)
		if err != nil {
			svc.Log.Error("failed to list audit logs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
