package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OverviewHandler serves the point-in-time dashboard snapshot.
func OverviewHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := svc.Stats.GetOverview()
		if err != nil {
			svc.Log.Error("failed to compute overview", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}

// EventsByDayHandler serves the zero-filled per-day event series.
// Query parameters: type, days, from, to (from/to as YYYY-MM-DD).
func EventsByDayHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		series, err := svc.Stats.EventsByDay(
			c.Query("type"),
			queryInt(c, "days", 0),
			c.Query("from"),
			c.Query("to"),
		)
		if err != nil {
			svc.Log.Error("failed to compute events by day", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, series)
	}
}

// SummaryHandler serves the rolling-window per-type event breakdown.
func SummaryHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svc.Stats.GetSummary(queryInt(c, "days", 0))
		if err != nil {
			svc.Log.Error("failed to compute summary", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// TopNewsHandler serves the view-count ranking over a trailing window.
func TopNewsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		top, err := svc.Stats.GetTopNews(queryInt(c, "days", 0), queryInt(c, "limit", 0))
		if err != nil {
			svc.Log.Error("failed to compute top news", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, top)
	}
}

// CategoriesHandler serves the per-category article counts.
func CategoriesHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Stats.Categories()
		if err != nil {
			svc.Log.Error("failed to count categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
