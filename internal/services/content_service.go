package services

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// Built-in payloads served when the database is unreachable on the public
// read paths. Marketing-page content favors availability over consistency:
// a stale default beats a 5xx on the landing page. Admin paths never use
// these.
var (
	defaultAbout = models.AboutSection{
		Overline: "About Us",
		Title:    "Technology for modern public management",
		Subtitle: "We build cloud tools that help institutions collect better, serve faster and go digital.",
	}

	defaultStatistics = []models.Statistic{
		{Label: "Cities served", Value: "120+", Order: 1, IsActive: true},
		{Label: "Users", Value: "35k", Order: 2, IsActive: true},
		{Label: "Uptime", Value: "99.9%", Order: 3, IsActive: true},
	}

	defaultSolutions = []models.Solution{
		{Title: "Revenue management", Description: "Collection and billing in the cloud.", Icon: "chart", Order: 1, IsActive: true},
		{Title: "Citizen services", Description: "Digital front desk for public services.", Icon: "users", Order: 2, IsActive: true},
	}
)

// ContentService serves the static page sections (about, statistics,
// solutions, team, partners, links) with CRUD for the admin side.
type ContentService struct {
	contentRepo repository.ContentRepository
	log         *zap.Logger
}

// NewContentService creates and returns a new instance of ContentService.
func NewContentService(contentRepo repository.ContentRepository, log *zap.Logger) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		log:         log,
	}
}

// GetAbout returns the about section, bootstrapping the default row on
// first read. A backend failure degrades to the built-in default payload.
func (s *ContentService) GetAbout() *models.AboutSection {
	about, err := s.contentRepo.GetAbout()
	if err != nil {
		s.log.Warn("about section unavailable, serving default", zap.Error(err))
		fallback := defaultAbout
		return &fallback
	}
	if about == nil {
		seeded := defaultAbout
		if err := s.contentRepo.SaveAbout(&seeded); err != nil {
			s.log.Warn("failed to bootstrap about section", zap.Error(err))
			fallback := defaultAbout
			return &fallback
		}
		return &seeded
	}
	return about
}

// UpdateAbout persists the singleton about row. Admin path: errors propagate.
func (s *ContentService) UpdateAbout(overline, title, subtitle string) (*models.AboutSection, error) {
	about, err := s.contentRepo.GetAbout()
	if err != nil {
		return nil, err
	}
	if about == nil {
		about = &models.AboutSection{}
	}
	about.Overline = overline
	about.Title = title
	about.Subtitle = subtitle
	if err := s.contentRepo.SaveAbout(about); err != nil {
		return nil, err
	}
	return about, nil
}

// GetStatistics returns active statistics for the public page, degrading to
// the built-in defaults when the backend is unreachable.
func (s *ContentService) GetStatistics() []models.Statistic {
	stats, err := s.contentRepo.GetStatistics(true)
	if err != nil {
		s.log.Warn("statistics unavailable, serving defaults", zap.Error(err))
		return defaultStatistics
	}
	return stats
}

// GetStatisticsAdmin returns every statistic, hidden ones included.
func (s *ContentService) GetStatisticsAdmin() ([]models.Statistic, error) {
	return s.contentRepo.GetStatistics(false)
}

// CreateStatistic inserts a statistic, appending it to the display order
// when no explicit order is given.
func (s *ContentService) CreateStatistic(stat *models.Statistic) error {
	if stat.Order == 0 {
		max, err := s.contentRepo.MaxStatisticOrder()
		if err != nil {
			return err
		}
		stat.Order = max + 1
	}
	return s.contentRepo.SaveStatistic(stat)
}

// UpdateStatistic applies changes to an existing statistic.
func (s *ContentService) UpdateStatistic(id uint, apply func(*models.Statistic)) (*models.Statistic, error) {
	stat, err := s.contentRepo.GetStatisticByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrStatisticNotFound
		}
		return nil, err
	}
	apply(stat)
	if err := s.contentRepo.SaveStatistic(stat); err != nil {
		return nil, err
	}
	return stat, nil
}

// DeleteStatistic removes a statistic.
func (s *ContentService) DeleteStatistic(id uint) error {
	if err := s.contentRepo.DeleteStatistic(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customerrors.ErrStatisticNotFound
		}
		return err
	}
	return nil
}

// ReorderStatistics applies an explicit display order.
func (s *ContentService) ReorderStatistics(items []repository.ReorderItem) error {
	return s.contentRepo.ReorderStatistics(items)
}

// GetSolutions returns active solutions for the public page, degrading to
// the built-in defaults when the backend is unreachable.
func (s *ContentService) GetSolutions() []models.Solution {
	solutions, err := s.contentRepo.GetSolutions(true)
	if err != nil {
		s.log.Warn("solutions unavailable, serving defaults", zap.Error(err))
		return defaultSolutions
	}
	return solutions
}

// GetSolutionsAdmin returns every solution, hidden ones included.
func (s *ContentService) GetSolutionsAdmin() ([]models.Solution, error) {
	return s.contentRepo.GetSolutions(false)
}

// CreateSolution inserts a solution, appending it to the display order when
// no explicit order is given.
func (s *ContentService) CreateSolution(solution *models.Solution) error {
	if solution.Order == 0 {
		max, err := s.contentRepo.MaxSolutionOrder()
		if err != nil {
			return err
		}
		solution.Order = max + 1
	}
	return s.contentRepo.SaveSolution(solution)
}

// UpdateSolution applies changes to an existing solution.
func (s *ContentService) UpdateSolution(id uint, apply func(*models.Solution)) (*models.Solution, error) {
	solution, err := s.contentRepo.GetSolutionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customerrors.ErrSolutionNotFound
		}
		return nil, err
	}
	apply(solution)
	if err := s.contentRepo.SaveSolution(solution); err != nil {
		return nil, err
	}
	return solution, nil
}

// DeleteSolution removes a solution.
func (s *ContentService) DeleteSolution(id uint) error {
	if err := s.contentRepo.DeleteSolution(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customerrors.ErrSolutionNotFound
		}
		return err
	}
	return nil
}

// ReorderSolutions applies an explicit display order.
func (s *ContentService) ReorderSolutions(items []repository.ReorderItem) error {
	return s.contentRepo.ReorderSolutions(items)
}

// GetTeamMembers returns the team section. Plain read, errors propagate.
func (s *ContentService) GetTeamMembers() ([]models.TeamMember, error) {
	return s.contentRepo.GetTeamMembers()
}

// SaveTeamMember creates or updates a team member.
func (s *ContentService) SaveTeamMember(m *models.TeamMember) error {
	return s.contentRepo.SaveTeamMember(m)
}

// DeleteTeamMember removes a team member.
func (s *ContentService) DeleteTeamMember(id uint) error {
	if err := s.contentRepo.DeleteTeamMember(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customerrors.ErrTeamMemberNotFound
		}
		return err
	}
	return nil
}

// GetPartners returns the partner section. Plain read, errors propagate.
func (s *ContentService) GetPartners() ([]models.Partner, error) {
	return s.contentRepo.GetPartners()
}

// SavePartner creates or updates a partner.
func (s *ContentService) SavePartner(p *models.Partner) error {
	return s.contentRepo.SavePartner(p)
}

// DeletePartner removes a partner.
func (s *ContentService) DeletePartner(id uint) error {
	if err := s.contentRepo.DeletePartner(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customerrors.ErrPartnerNotFound
		}
		return err
	}
	return nil
}

// GetLinks returns the footer links. Plain read, errors propagate.
func (s *ContentService) GetLinks() ([]models.Link, error) {
	return s.contentRepo.GetLinks()
}

// SaveLink creates or updates a link.
func (s *ContentService) SaveLink(l *models.Link) error {
	return s.contentRepo.SaveLink(l)
}

// DeleteLink removes a link.
func (s *ContentService) DeleteLink(id uint) error {
	if err := s.contentRepo.DeleteLink(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return customerrors.ErrLinkNotFound
		}
		return err
	}
	return nil
}
