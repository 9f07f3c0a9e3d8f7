package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/services"
)

// ListNewsHandler returns every article, newest first.
func ListNewsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.News.GetAllNews()
		if err != nil {
			svc.Log.Error("failed to list news", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetNewsHandler returns one article by id. The view tracking middleware
// has already run by the time this executes.
func GetNewsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
			return
		}

		news, err := svc.News.GetNews(id)
		if err != nil {
			if errors.Is(err, customerrors.ErrNewsNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
				return
			}
			svc.Log.Error("failed to get news", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, news)
	}
}

// CreateNewsHandler creates an article and records an audit event.
func CreateNewsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.NewsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		news, err := svc.News.CreateNews(input)
		if err != nil {
			svc.Log.Error("failed to create news", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create news"})
			return
		}

		newsID := news.ID
		svc.Audit.Record(models.AuditEntry{
			Type:      models.EventAdminCreate,
			UserID:    adminIDFromHeader(c),
			NewsID:    &newsID,
			Path:      c.Request.URL.Path,
			UserAgent: c.GetHeader("User-Agent"),
			IP:        c.ClientIP(),
		})
		c.JSON(http.StatusCreated, news)
	}
}

// UpdateNewsHandler updates an article and records an audit event.
func UpdateNewsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
			return
		}
		var input services.NewsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		news, err := svc.News.UpdateNews(id, input)
		if err != nil {
			if errors.Is(err, customerrors.ErrNewsNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
				return
			}
			svc.Log.Error("failed to update news", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update news"})
			return
		}

		svc.Audit.Record(models.AuditEntry{
			Type:      models.EventAdminUpdate,
			UserID:    adminIDFromHeader(c),
			NewsID:    &id,
			Path:      c.Request.URL.Path,
			UserAgent: c.GetHeader("User-Agent"),
			IP:        c.ClientIP(),
		})
		c.JSON(http.StatusOK, news)
	}
}

// DeleteNewsHandler deletes an article and records an audit event.
func DeleteNewsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
			return
		}

		if err := svc.News.DeleteNews(id); err != nil {
			if errors.Is(err, customerrors.ErrNewsNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
				return
			}
			svc.Log.Error("failed to delete news", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete news"})
			return
		}

		svc.Audit.Record(models.AuditEntry{
			Type:      models.EventAdminDelete,
			UserID:    adminIDFromHeader(c),
			NewsID:    &id,
			Path:      c.Request.URL.Path,
			UserAgent: c.GetHeader("User-Agent"),
			IP:        c.ClientIP(),
		})
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}
