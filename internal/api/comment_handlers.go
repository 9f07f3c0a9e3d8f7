package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
)

// CommentRequest is the JSON body for posting a comment or a reply.
type CommentRequest struct {
	Author  string `json:"author" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Content string `json:"content" binding:"required"`
}

// GetCommentsHandler returns the assembled comment forest for one article.
// An article with no comments yields an empty list.
func GetCommentsHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
			return
		}

		thread, err := svc.Comments.GetThread(id)
		if err != nil {
			svc.Log.Error("failed to load comments", zap.Uint("news_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, thread)
	}
}

// CreateCommentHandler posts a new root comment on an article.
func CreateCommentHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
			return
		}
		var req CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		comment, err := svc.Comments.AddComment(id, req.Author, req.Email, req.Content)
		if err != nil {
			if errors.Is(err, customerrors.ErrNewsNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "News item not found"})
				return
			}
			svc.Log.Error("failed to create comment", zap.Uint("news_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// ReplyCommentHandler posts a reply under an existing comment. The reply's
// article is taken from the parent, never from the caller.
func ReplyCommentHandler(svc Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
			return
		}
		var req CommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		reply, err := svc.Comments.ReplyTo(id, req.Author, req.Email, req.Content)
		if err != nil {
			if errors.Is(err, customerrors.ErrCommentNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
				return
			}
			svc.Log.Error("failed to create reply", zap.Uint("parent_id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply"})
			return
		}
		c.JSON(http.StatusCreated, reply)
	}
}
