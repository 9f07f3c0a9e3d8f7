package repository

import (
	"fmt"

	"github.com/axellelanca/newsboard/internal/models"
	"gorm.io/gorm"
)

// AdminRepository est une interface qui définit les méthodes d'accès aux données
type AdminRepository interface {
	CountAdmins() (int64, error)
	AdminsByIDs(ids []uint) (map[uint]models.Admin, error)
}

// GormAdminRepository est l'implémentation de AdminRepository utilisant GORM.
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository crée et retourne une nouvelle instance de GormAdminRepository.
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// CountAdmins compte le nombre total d'administrateurs.
func (r *GormAdminRepository) CountAdmins() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// AdminsByIDs returns an id lookup for the given admin ids, used to enrich
// audit log listings with usernames and roles.
func (r *GormAdminRepository) AdminsByIDs(ids []uint) (map[uint]models.Admin, error) {
	admins := make(map[uint]models.Admin, len(ids))
	if len(ids) == 0 {
		return admins, nil
	}

	var rows []models.Admin
	if err := r.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load admins: %w", err)
	}
	for _, a := range rows {
		admins[a.ID] = a
	}
	return admins, nil
}
