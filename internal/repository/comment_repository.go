package repository

import (
	"errors"
	"fmt"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"gorm.io/gorm"
)

// CommentRepository est une interface qui définit les méthodes d'accès aux données
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByNewsID(newsID uint) ([]models.Comment, error)
}

// GormCommentRepository est l'implémentation de CommentRepository utilisant GORM.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository crée et retourne une nouvelle instance de GormCommentRepository.
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// CreateComment insère un nouveau commentaire dans la base de données.
func (r *GormCommentRepository) CreateComment(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetCommentByID récupère un commentaire par son identifiant.
func (r *GormCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve comment %d: %w", id, err)
	}
	return &comment, nil
}

// GetCommentsByNewsID returns every comment row for one article. Rows come
// back in chronological insertion order; the service re-sorts before
// assembly anyway so the tree shape never depends on database ordering.
func (r *GormCommentRepository) GetCommentsByNewsID(newsID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("news_id = ?", newsID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comments for news %d: %w", newsID, err)
	}
	return comments, nil
}
