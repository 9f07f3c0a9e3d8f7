package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/services"
)

// Services bundles the business services the handlers close over.
type Services struct {
	News      *services.NewsService
	Comments  *services.CommentService
	Stats     *services.StatsService
	Analytics *services.AnalyticsService
	Audit     *services.AuditService
	Content   *services.ContentService
	Views     *services.ViewTracker
	Log       *zap.Logger
}

// SetupRoutes configures all Gin API routes and injects necessary dependencies.
// corsOrigins lists the browser origins allowed to call the API.
func SetupRoutes(router *gin.Engine, svc Services, corsOrigins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-Token", "X-Admin-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route - used for monitoring service availability
	router.GET("/health", HealthCheckHandler)

	api := router.Group("/api/v1")
	{
		// Public news reads. Fetching one article passes through the view
		// tracking middleware, which decides whether to record a view.
		api.GET("/news", ListNewsHandler(svc))
		api.GET("/news/:id", TrackViewMiddleware(svc), GetNewsHandler(svc))

		// Comment threads
		api.GET("/news/:id/comments", GetCommentsHandler(svc))
		api.POST("/news/:id/comments", CreateCommentHandler(svc))
		api.POST("/comments/:id/replies", ReplyCommentHandler(svc))

		// Generic event tracking (clicks and other interactions)
		api.POST("/events", TrackEventHandler(svc))

		// Public page sections, served with built-in fallbacks
		api.GET("/content/about", GetAboutHandler(svc))
		api.GET("/content/statistics", GetStatisticsHandler(svc))
		api.GET("/content/solutions", GetSolutionsHandler(svc))
		api.GET("/content/team", GetTeamHandler(svc))
		api.GET("/content/partners", GetPartnersHandler(svc))
		api.GET("/content/links", GetLinksHandler(svc))
	}

	// Admin surface. Authentication/JWT enforcement happens upstream (API
	// gateway); these routes only group the privileged operations.
	admin := router.Group("/api/v1/admin")
	{
		admin.POST("/news", CreateNewsHandler(svc))
		admin.PUT("/news/:id", UpdateNewsHandler(svc))
		admin.DELETE("/news/:id", DeleteNewsHandler(svc))

		admin.GET("/stats/overview", OverviewHandler(svc))
		admin.GET("/stats/events-by-day", EventsByDayHandler(svc))
		admin.GET("/stats/summary", SummaryHandler(svc))
		admin.GET("/stats/top-news", TopNewsHandler(svc))
		admin.GET("/stats/categories", CategoriesHandler(svc))

		admin.GET("/logs", ListAuditLogsHandler(svc))

		admin.PUT("/content/about", UpdateAboutHandler(svc))

		admin.GET("/content/statistics", AdminStatisticsHandler(svc))
		admin.POST("/content/statistics", CreateStatisticHandler(svc))
		admin.PUT("/content/statistics/:id", UpdateStatisticHandler(svc))
		admin.DELETE("/content/statistics/:id", DeleteStatisticHandler(svc))
		admin.POST("/content/statistics/reorder", ReorderStatisticsHandler(svc))

		admin.GET("/content/solutions", AdminSolutionsHandler(svc))
		admin.POST("/content/solutions", CreateSolutionHandler(svc))
		admin.PUT("/content/solutions/:id", UpdateSolutionHandler(svc))
		admin.DELETE("/content/solutions/:id", DeleteSolutionHandler(svc))
		admin.POST("/content/solutions/reorder", ReorderSolutionsHandler(svc))

		admin.POST("/content/team", SaveTeamMemberHandler(svc))
		admin.DELETE("/content/team/:id", DeleteTeamMemberHandler(svc))
		admin.POST("/content/partners", SavePartnerHandler(svc))
		admin.DELETE("/content/partners/:id", DeletePartnerHandler(svc))
		admin.POST("/content/links", SaveLinkHandler(svc))
		admin.DELETE("/content/links/:id", DeleteLinkHandler(svc))
	}
}

// HealthCheckHandler handles the /health route to verify service status
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseIDParam reads a positive integer path parameter. The second return
// value is false when the parameter is missing or malformed.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// adminIDFromHeader extracts the acting admin's id, forwarded by the
// gateway after JWT validation. Nil when absent.
func adminIDFromHeader(c *gin.Context) *uint {
	raw := c.GetHeader("X-Admin-ID")
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}
