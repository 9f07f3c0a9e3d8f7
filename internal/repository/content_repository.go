package repository

import (
	"errors"
	"fmt"

	"github.com/axellelanca/newsboard/internal/models"
	"gorm.io/gorm"
)

// ContentRepository regroupe l'accès aux sections statiques du site
// (à propos, statistiques, solutions, équipe, partenaires, liens).
type ContentRepository interface {
	GetAbout() (*models.AboutSection, error)
	SaveAbout(about *models.AboutSection) error

	GetStatistics(activeOnly bool) ([]models.Statistic, error)
	GetStatisticByID(id uint) (*models.Statistic, error)
	SaveStatistic(s *models.Statistic) error
	DeleteStatistic(id uint) error
	MaxStatisticOrder() (int, error)
	ReorderStatistics(items []ReorderItem) error

	GetSolutions(activeOnly bool) ([]models.Solution, error)
	GetSolutionByID(id uint) (*models.Solution, error)
	SaveSolution(s *models.Solution) error
	DeleteSolution(id uint) error
	MaxSolutionOrder() (int, error)
	ReorderSolutions(items []ReorderItem) error

	GetTeamMembers() ([]models.TeamMember, error)
	SaveTeamMember(m *models.TeamMember) error
	DeleteTeamMember(id uint) error

	GetPartners() ([]models.Partner, error)
	SavePartner(p *models.Partner) error
	DeletePartner(id uint) error

	GetLinks() ([]models.Link, error)
	SaveLink(l *models.Link) error
	DeleteLink(id uint) error
}

// ReorderItem pairs an entity id with its new display order.
type ReorderItem struct {
	ID    uint `json:"id" binding:"required"`
	Order int  `json:"order"`
}

// GormContentRepository est l'implémentation de ContentRepository utilisant GORM.
type GormContentRepository struct {
	db *gorm.DB
}

// NewContentRepository crée et retourne une nouvelle instance de GormContentRepository.
func NewContentRepository(db *gorm.DB) *GormContentRepository {
	return &GormContentRepository{db: db}
}

// GetAbout returns the singleton about row, or nil when none exists yet.
func (r *GormContentRepository) GetAbout() (*models.AboutSection, error) {
	var about models.AboutSection
	if err := r.db.First(&about).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve about section: %w", err)
	}
	return &about, nil
}

// SaveAbout creates or updates the about row.
func (r *GormContentRepository) SaveAbout(about *models.AboutSection) error {
	if err := r.db.Save(about).Error; err != nil {
		return fmt.Errorf("failed to save about section: %w", err)
	}
	return nil
}

// GetStatistics returns statistics ordered for display. With activeOnly set,
// hidden entries are filtered out (the public read path).
func (r *GormContentRepository) GetStatistics(activeOnly bool) ([]models.Statistic, error) {
	query := r.db.Order("sort_order ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var stats []models.Statistic
	if err := query.Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve statistics: %w", err)
	}
	return stats, nil
}

// GetStatisticByID récupère une statistique par son identifiant.
func (r *GormContentRepository) GetStatisticByID(id uint) (*models.Statistic, error) {
	var stat models.Statistic
	if err := r.db.First(&stat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve statistic %d: %w", id, err)
	}
	return &stat, nil
}

// SaveStatistic creates or updates a statistic row.
func (r *GormContentRepository) SaveStatistic(s *models.Statistic) error {
	if err := r.db.Save(s).Error; err != nil {
		return fmt.Errorf("failed to save statistic: %w", err)
	}
	return nil
}

// DeleteStatistic supprime une statistique.
func (r *GormContentRepository) DeleteStatistic(id uint) error {
	res := r.db.Delete(&models.Statistic{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete statistic %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MaxStatisticOrder returns the highest sort order in use, 0 when empty.
func (r *GormContentRepository) MaxStatisticOrder() (int, error) {
	return r.maxOrder(&models.Statistic{})
}

// ReorderStatistics applies the given orders inside one transaction.
func (r *GormContentRepository) ReorderStatistics(items []ReorderItem) error {
	return r.reorder(&models.Statistic{}, items)
}

// GetSolutions returns solutions ordered for display, optionally active-only.
func (r *GormContentRepository) GetSolutions(activeOnly bool) ([]models.Solution, error) {
	query := r.db.Order("sort_order ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var solutions []models.Solution
	if err := query.Find(&solutions).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve solutions: %w", err)
	}
	return solutions, nil
}

// GetSolutionByID récupère une solution par son identifiant.
func (r *GormContentRepository) GetSolutionByID(id uint) (*models.Solution, error) {
	var solution models.Solution
	if err := r.db.First(&solution, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to retrieve solution %d: %w", id, err)
	}
	return &solution, nil
}

// SaveSolution creates or updates a solution row.
func (r *GormContentRepository) SaveSolution(s *models.Solution) error {
	if err := r.db.Save(s).Error; err != nil {
		return fmt.Errorf("failed to save solution: %w", err)
	}
	return nil
}

// DeleteSolution supprime une solution.
func (r *GormContentRepository) DeleteSolution(id uint) error {
	res := r.db.Delete(&models.Solution{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete solution %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MaxSolutionOrder returns the highest sort order in use, 0 when empty.
func (r *GormContentRepository) MaxSolutionOrder() (int, error) {
	return r.maxOrder(&models.Solution{})
}

// ReorderSolutions applies the given orders inside one transaction.
func (r *GormContentRepository) ReorderSolutions(items []ReorderItem) error {
	return r.reorder(&models.Solution{}, items)
}

// GetTeamMembers returns the team section ordered for display.
func (r *GormContentRepository) GetTeamMembers() ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Order("sort_order ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve team members: %w", err)
	}
	return members, nil
}

// SaveTeamMember creates or updates a team member row.
func (r *GormContentRepository) SaveTeamMember(m *models.TeamMember) error {
	if err := r.db.Save(m).Error; err != nil {
		return fmt.Errorf("failed to save team member: %w", err)
	}
	return nil
}

// DeleteTeamMember supprime un membre de l'équipe.
func (r *GormContentRepository) DeleteTeamMember(id uint) error {
	res := r.db.Delete(&models.TeamMember{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete team member %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetPartners returns the partner section ordered for display.
func (r *GormContentRepository) GetPartners() ([]models.Partner, error) {
	var partners []models.Partner
	if err := r.db.Order("sort_order ASC").Find(&partners).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve partners: %w", err)
	}
	return partners, nil
}

// SavePartner creates or updates a partner row.
func (r *GormContentRepository) SavePartner(p *models.Partner) error {
	if err := r.db.Save(p).Error; err != nil {
		return fmt.Errorf("failed to save partner: %w", err)
	}
	return nil
}

// DeletePartner supprime un partenaire.
func (r *GormContentRepository) DeletePartner(id uint) error {
	res := r.db.Delete(&models.Partner{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete partner %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetLinks returns the footer links ordered for display.
func (r *GormContentRepository) GetLinks() ([]models.Link, error) {
	var links []models.Link
	if err := r.db.Order("sort_order ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve links: %w", err)
	}
	return links, nil
}

// SaveLink creates or updates a link row.
func (r *GormContentRepository) SaveLink(l *models.Link) error {
	if err := r.db.Save(l).Error; err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	return nil
}

// DeleteLink supprime un lien.
func (r *GormContentRepository) DeleteLink(id uint) error {
	res := r.db.Delete(&models.Link{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete link %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// maxOrder returns the largest sort_order value of the given model, 0 when
// the table is empty.
func (r *GormContentRepository) maxOrder(model interface{}) (int, error) {
	var max *int
	err := r.db.Model(model).Select("max(sort_order)").Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute max order: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// reorder updates sort_order for each item in one transaction.
func (r *GormContentRepository) reorder(model interface{}, items []ReorderItem) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			res := tx.Model(model).Where("id = ?", item.ID).Update("sort_order", item.Order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reorder items: %w", err)
	}
	return nil
}
