package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// NewsService provides business logic methods for managing news articles.
// It acts as an intermediary between the HTTP handlers and the data repository.
type NewsService struct {
	newsRepo repository.NewsRepository
	log      *zap.Logger
}

// NewNewsService creates and returns a new instance of NewsService.
func NewNewsService(newsRepo repository.NewsRepository, log *zap.Logger) *NewsService {
	return &NewsService{
		newsRepo: newsRepo,
		log:      log,
	}
}

// NewsImageInput is one image attached to a create/update request.
type NewsImageInput struct {
	ImageData string `json:"imageData" binding:"required"`
	AltText   string `json:"altText"`
}

// NewsInput is the payload for creating or updating an article.
type NewsInput struct {
	Title    string           `json:"title" binding:"required"`
	Content  string           `json:"content" binding:"required"`
	Category string           `json:"category"`
	Status   string           `json:"status" binding:"omitempty,oneof=draft published archived"`
	Date     *time.Time       `json:"date"`
	Images   []NewsImageInput `json:"images"`
}

// CreateNews creates an article together with its images.
func (s *NewsService) CreateNews(input NewsInput) (*models.News, error) {
	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	date := time.Now()
	if input.Date != nil {
		date = *input.Date
	}

	news := &models.News{
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		Status:   status,
		Date:     date,
		Images:   imageModels(0, input.Images),
	}
	if err := s.newsRepo.CreateNews(news); err != nil {
		return nil, err
	}
	return news, nil
}

// GetAllNews returns every article, newest first, with images attached.
func (s *NewsService) GetAllNews() ([]models.News, error) {
	return s.newsRepo.GetAllNews()
}

// GetNews returns one article by id, or ErrNewsNotFound.
func (s *NewsService) GetNews(id uint) (*models.News, error) {
	return s.newsRepo.GetNewsByID(id)
}

// UpdateNews applies the input to an existing article. When the payload
// carries images the existing set is replaced wholesale, mirroring how the
// admin UI edits articles.
func (s *NewsService) UpdateNews(id uint, input NewsInput) (*models.News, error) {
	news, err := s.newsRepo.GetNewsByID(id)
	if err != nil {
		return nil, err
	}

	news.Title = input.Title
	news.Content = input.Content
	news.Category = input.Category
	if input.Status != "" {
		news.Status = input.Status
	}
	if input.Date != nil {
		news.Date = *input.Date
	}
	news.Images = nil // images handled separately below
	if err := s.newsRepo.UpdateNews(news); err != nil {
		return nil, err
	}

	if input.Images != nil {
		if err := s.newsRepo.ReplaceImages(id, imageModels(id, input.Images)); err != nil {
			return nil, err
		}
	}
	return s.newsRepo.GetNewsByID(id)
}

// DeleteNews removes an article and its images.
func (s *NewsService) DeleteNews(id uint) error {
	return s.newsRepo.DeleteNews(id)
}

func imageModels(newsID uint, inputs []NewsImageInput) []models.NewsImage {
	if len(inputs) == 0 {
		return nil
	}
	images := make([]models.NewsImage, 0, len(inputs))
	for _, in := range inputs {
		images = append(images, models.NewsImage{
			NewsID:    newsID,
			ImageData: in.ImageData,
			AltText:   in.AltText,
		})
	}
	return images
}
