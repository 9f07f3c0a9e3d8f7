package repository

import (
	"errors"
	"fmt"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"gorm.io/gorm"
)

// CategoryCount is one row of the per-category grouped count query.
type CategoryCount struct {
	Category string
	Count    int64
}

// NewsSummary is the id/title/date projection used by the overview stats.
type NewsSummary struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

// NewsRepository est une interface qui définit les méthodes d'accès aux données
type NewsRepository interface {
	CreateNews(news *models.News) error
	GetAllNews() ([]models.News, error)
	GetNewsByID(id uint) (*models.News, error)
	UpdateNews(news *models.News) error
	ReplaceImages(newsID uint, images []models.NewsImage) error
	DeleteNews(id uint) error
	CountNews() (int64, error)
	CountNewsByStatus(status string) (int64, error)
	CountImages() (int64, error)
	LatestNews() (*models.News, error)
	CategoryCounts() ([]CategoryCount, error)
	TitlesByIDs(ids []uint) (map[uint]string, error)
}

// GormNewsRepository est l'implémentation de NewsRepository utilisant GORM.
type GormNewsRepository struct {
	db *gorm.DB
}

// NewNewsRepository crée et retourne une nouvelle instance de GormNewsRepository.
func NewNewsRepository(db *gorm.DB) *GormNewsRepository {
	return &GormNewsRepository{db: db}
}

// CreateNews insère un nouvel article (et ses images) dans la base de données.
func (r *GormNewsRepository) CreateNews(news *models.News) error {
	if err := r.db.Create(news).Error; err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}
	return nil
}

// GetAllNews récupère tous les articles, les plus récents d'abord.
func (r *GormNewsRepository) GetAllNews() ([]models.News, error) {
	var items []models.News
	if err := r.db.Preload("Images").Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve news: %w", err)
	}
	return items, nil
}

// GetNewsByID récupère un article par son identifiant.
func (r *GormNewsRepository) GetNewsByID(id uint) (*models.News, error) {
	var news models.News
	if err := r.db.Preload("Images").First(&news, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to retrieve news %d: %w", id, err)
	}
	return &news, nil
}

// UpdateNews persists changes to an existing article row.
func (r *GormNewsRepository) UpdateNews(news *models.News) error {
	if err := r.db.Save(news).Error; err != nil {
		return fmt.Errorf("failed to update news %d: %w", news.ID, err)
	}
	return nil
}

// ReplaceImages drops every image attached to the article and inserts the
// given set in its place, inside one transaction.
func (r *GormNewsRepository) ReplaceImages(newsID uint, images []models.NewsImage) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("news_id = ?", newsID).Delete(&models.NewsImage{}).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].NewsID = newsID
		}
		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return fmt.Errorf("failed to replace images for news %d: %w", newsID, err)
	}
	return nil
}

// DeleteNews removes an article and, via the FK constraint, its images.
func (r *GormNewsRepository) DeleteNews(id uint) error {
	res := r.db.Delete(&models.News{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete news %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return customerrors.ErrNewsNotFound
	}
	return nil
}

// CountNews compte le nombre total d'articles.
func (r *GormNewsRepository) CountNews() (int64, error) {
	var count int64
	if err := r.db.Model(&models.News{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count news: %w", err)
	}
	return count, nil
}

// CountNewsByStatus compte les articles ayant un statut donné.
func (r *GormNewsRepository) CountNewsByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.News{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count news with status %s: %w", status, err)
	}
	return count, nil
}

// CountImages compte le nombre total d'images stockées.
func (r *GormNewsRepository) CountImages() (int64, error) {
	var count int64
	if err := r.db.Model(&models.NewsImage{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

// LatestNews returns the most recently created article, or nil when the
// table is empty.
func (r *GormNewsRepository) LatestNews() (*models.News, error) {
	var news models.News
	err := r.db.Order("created_at DESC, id DESC").First(&news).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve latest news: %w", err)
	}
	return &news, nil
}

// CategoryCounts groups articles by category. Ordering is left to callers.
func (r *GormNewsRepository) CategoryCounts() ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.Model(&models.News{}).
		Select("category, count(*) AS count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count news by category: %w", err)
	}
	return rows, nil
}

// TitlesByIDs returns a title lookup for the given article ids.
func (r *GormNewsRepository) TitlesByIDs(ids []uint) (map[uint]string, error) {
	titles := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	var rows []struct {
		ID    uint
		Title string
	}
	err := r.db.Model(&models.News{}).
		Select("id, title").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load news titles: %w", err)
	}
	for _, row := range rows {
		titles[row.ID] = row.Title
	}
	return titles, nil
}
