package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// GetAboutHandler serves the public about section. Never fails: backend
// trouble degrades to the built-in default payload inside the service.
func GetAboutHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Content.GetAbout())
	}
}

// AboutRequest is the JSON body for updating the about section.
type AboutRequest struct {
	Overline string `json:"overline"`
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle"`
}

// UpdateAboutHandler updates the singleton about section.
func UpdateAboutHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AboutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		about, err := svc.Content.UpdateAbout(req.Overline, req.Title, req.Subtitle)
		if err != nil {
			svc.Log.Error("failed to update about section", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update about section"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminUpdate)
		c.JSON(http.StatusOK, about)
	}
}

// GetStatisticsHandler serves the active statistics for the public page.
func GetStatisticsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Content.GetStatistics())
	}
}

// AdminStatisticsHandler serves every statistic, hidden ones included.
func AdminStatisticsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Content.GetStatisticsAdmin()
		if err != nil {
			svc.Log.Error("failed to list statistics", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// StatisticRequest is the JSON body for creating or updating a statistic.
// Pointer fields distinguish "absent" from zero values on update.
type StatisticRequest struct {
	Label    *string `json:"label"`
	Value    *string `json:"value"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"isActive"`
}

// CreateStatisticHandler inserts a statistic.
func CreateStatisticHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Label == nil || req.Value == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "label and value are required"})
			return
		}

		stat := models.Statistic{Label: *req.Label, Value: *req.Value, IsActive: true}
		if req.Order != nil {
			stat.Order = *req.Order
		}
		if req.IsActive != nil {
			stat.IsActive = *req.IsActive
		}
		if err := svc.Content.CreateStatistic(&stat); err != nil {
			svc.Log.Error("failed to create statistic", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create statistic"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminCreate)
		c.JSON(http.StatusCreated, stat)
	}
}

// UpdateStatisticHandler applies a partial update to a statistic.
func UpdateStatisticHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid statistic id"})
			return
		}
		var req StatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		stat, err := svc.Content.UpdateStatistic(id, func(s *models.Statistic) {
			if req.Label != nil {
				s.Label = *req.Label
			}
			if req.Value != nil {
				s.Value = *req.Value
			}
			if req.Order != nil {
				s.Order = *req.Order
			}
			if req.IsActive != nil {
				s.IsActive = *req.IsActive
			}
		})
		if err != nil {
			if errors.Is(err, customerrors.ErrStatisticNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Statistic not found"})
				return
			}
			svc.Log.Error("failed to update statistic", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update statistic"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminUpdate)
		c.JSON(http.StatusOK, stat)
	}
}

// DeleteStatisticHandler removes a statistic.
func DeleteStatisticHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid statistic id"})
			return
		}
		if err := svc.Content.DeleteStatistic(id); err != nil {
			if errors.Is(err, customerrors.ErrStatisticNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Statistic not found"})
				return
			}
			svc.Log.Error("failed to delete statistic", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete statistic"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminDelete)
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// ReorderRequest is the JSON body for explicit reordering.
type ReorderRequest struct {
	Items []repository.ReorderItem `json:"items" binding:"required,dive"`
}

// ReorderStatisticsHandler applies an explicit display order.
func ReorderStatisticsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if err := svc.Content.ReorderStatistics(req.Items); err != nil {
			svc.Log.Error("failed to reorder statistics", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder statistics"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminUpdate)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetSolutionsHandler serves the active solutions for the public page.
func GetSolutionsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Content.GetSolutions())
	}
}

// AdminSolutionsHandler serves every solution, hidden ones included.
func AdminSolutionsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		solutions, err := svc.Content.GetSolutionsAdmin()
		if err != nil {
			svc.Log.Error("failed to list solutions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, solutions)
	}
}

// SolutionRequest is the JSON body for creating or updating a solution.
type SolutionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Order       *int    `json:"order"`
	IsActive    *bool   `json:"isActive"`
}

// CreateSolutionHandler inserts a solution.
func CreateSolutionHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SolutionRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Title == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}

		solution := models.Solution{Title: *req.Title, IsActive: true}
		if req.Description != nil {
			solution.Description = *req.Description
		}
		if req.Icon != nil {
			solution.Icon = *req.Icon
		}
		if req.Order != nil {
			solution.Order = *req.Order
		}
		if req.IsActive != nil {
			solution.IsActive = *req.IsActive
		}
		if err := svc.Content.CreateSolution(&solution); err != nil {
			svc.Log.Error("failed to create solution", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create solution"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminCreate)
		c.JSON(http.StatusCreated, solution)
	}
}

// UpdateSolutionHandler applies a partial update to a solution.
func UpdateSolutionHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid solution id"})
			return
		}
		var req SolutionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		solution, err := svc.Content.UpdateSolution(id, func(s *models.Solution) {
			if req.Title != nil {
				s.Title = *req.Title
			}
			if req.Description != nil {
				s.Description = *req.Description
			}
			if req.Icon != nil {
				s.Icon = *req.Icon
			}
			if req.Order != nil {
				s.Order = *req.Order
			}
			if req.IsActive != nil {
				s.IsActive = *req.IsActive
			}
		})
		if err != nil {
			if errors.Is(err, customerrors.ErrSolutionNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Solution not found"})
				return
			}
			svc.Log.Error("failed to update solution", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update solution"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminUpdate)
		c.JSON(http.StatusOK, solution)
	}
}

// DeleteSolutionHandler removes a solution.
func DeleteSolutionHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid solution id"})
			return
		}
		if err := svc.Content.DeleteSolution(id); err != nil {
			if errors.Is(err, customerrors.ErrSolutionNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Solution not found"})
				return
			}
			svc.Log.Error("failed to delete solution", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete solution"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminDelete)
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// ReorderSolutionsHandler applies an explicit display order.
func ReorderSolutionsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if err := svc.Content.ReorderSolutions(req.Items); err != nil {
			svc.Log.Error("failed to reorder solutions", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder solutions"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminUpdate)
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetTeamHandler serves the public team section.
func GetTeamHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		members, err := svc.Content.GetTeamMembers()
		if err != nil {
			svc.Log.Error("failed to list team members", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, members)
	}
}

// SaveTeamMemberHandler creates or updates a team member.
func SaveTeamMemberHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var member models.TeamMember
		if err := c.ShouldBindJSON(&member); err != nil || member.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if err := svc.Content.SaveTeamMember(&member); err != nil {
			svc.Log.Error("failed to save team member", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save team member"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminUpdate)
		c.JSON(http.StatusOK, member)
	}
}

// DeleteTeamMemberHandler removes a team member.
func DeleteTeamMemberHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member id"})
			return
		}
		if err := svc.Content.DeleteTeamMember(id); err != nil {
			if errors.Is(err, customerrors.ErrTeamMemberNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Team member not found"})
				return
			}
			svc.Log.Error("failed to delete team member", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete team member"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminDelete)
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// GetPartnersHandler serves the public partner section.
func GetPartnersHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		partners, err := svc.Content.GetPartners()
		if err != nil {
			svc.Log.Error("failed to list partners", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, partners)
	}
}

// SavePartnerHandler creates or updates a partner.
func SavePartnerHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var partner models.Partner
		if err := c.ShouldBindJSON(&partner); err != nil || partner.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		if err := svc.Content.SavePartner(&partner); err != nil {
			svc.Log.Error("failed to save partner", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save partner"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminUpdate)
		c.JSON(http.StatusOK, partner)
	}
}

// DeletePartnerHandler removes a partner.
func DeletePartnerHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid partner id"})
			return
		}
		if err := svc.Content.DeletePartner(id); err != nil {
			if errors.Is(err, customerrors.ErrPartnerNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Partner not found"})
				return
			}
			svc.Log.Error("failed to delete partner", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete partner"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminDelete)
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// GetLinksHandler serves the public footer links.
func GetLinksHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := svc.Content.GetLinks()
		if err != nil {
			svc.Log.Error("failed to list links", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, links)
	}
}

// SaveLinkHandler creates or updates a footer link.
func SaveLinkHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var link models.Link
		if err := c.ShouldBindJSON(&link); err != nil || link.Label == "" || link.URL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "label and url are required"})
			return
		}
		if err := svc.Content.SaveLink(&link); err != nil {
			svc.Log.Error("failed to save link", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save link"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminUpdate)
		c.JSON(http.StatusOK, link)
	}
}

// DeleteLinkHandler removes a footer link.
func DeleteLinkHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link id"})
			return
		}
		if err := svc.Content.DeleteLink(id); err != nil {
			if errors.Is(err, customerrors.ErrLinkNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
				return
			}
			svc.Log.Error("failed to delete link", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
			return
		}
		recordContentAudit(svc, c, models.EventAdminDelete)
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}

// recordContentAudit queues an audit entry for a content mutation.
func recordContentAudit(svc Services, c *gin.Context, kind models.EventKind) {
	svc.Audit.Record(models.AuditEntry{
		Type:      kind,
		UserID:    adminIDFromHeader(c),
		Path:      c.Request.URL.Path,
		UserAgent: c.GetHeader("User-Agent"),
		IP:        c.ClientIP(),
	})
}
