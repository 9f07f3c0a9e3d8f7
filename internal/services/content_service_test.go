package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

func newTestContentService(t *testing.T) (*ContentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewContentService(repository.NewContentRepository(db), zap.NewNop())
	return svc, db
}

func TestContentService_GetAboutBootstrapsDefault(t *testing.T) {
	svc, db := newTestContentService(t)

	about := svc.GetAbout()
	require.NotNil(t, about)
	assert.Equal(t, defaultAbout.Title, about.Title)

	// The default row was persisted, not just returned.
	var count int64
	require.NoError(t, db.Model(&models.AboutSection{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestContentService_UpdateAbout(t *testing.T) {
	svc, _ := newTestContentService(t)

	about, err := svc.UpdateAbout("New overline", "New title", "New subtitle")
	require.NoError(t, err)
	assert.Equal(t, "New title", about.Title)

	fetched := svc.GetAbout()
	assert.Equal(t, "New title", fetched.Title)
	assert.Equal(t, "New overline", fetched.Overline)
}

func TestContentService_CreateStatisticAppendsOrder(t *testing.T) {
	svc, _ := newTestContentService(t)

	first := models.Statistic{Label: "a", Value: "1", IsActive: true}
	require.NoError(t, svc.CreateStatistic(&first))
	second := models.Statistic{Label: "b", Value: "2", IsActive: true}
	require.NoError(t, svc.CreateStatistic(&second))

	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)

	// An explicit order is honored as-is.
	third := models.Statistic{Label: "c", Value: "3", Order: 10, IsActive: true}
	require.NoError(t, svc.CreateStatistic(&third))
	assert.Equal(t, 10, third.Order)
}

func TestContentService_PublicStatisticsHideInactive(t *testing.T) {
	svc, _ := newTestContentService(t)

	require.NoError(t, svc.CreateStatistic(&models.Statistic{Label: "shown", Value: "1", IsActive: true}))
	hidden := models.Statistic{Label: "hidden", Value: "2", IsActive: true}
	require.NoError(t, svc.CreateStatistic(&hidden))
	_, err := svc.UpdateStatistic(hidden.ID, func(s *models.Statistic) { s.IsActive = false })
	require.NoError(t, err)

	public := svc.GetStatistics()
	require.Len(t, public, 1)
	assert.Equal(t, "shown", public[0].Label)

	all, err := svc.GetStatisticsAdmin()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestContentService_UpdateMissingStatistic(t *testing.T) {
	svc, _ := newTestContentService(t)

	_, err := svc.UpdateStatistic(9999, func(s *models.Statistic) {})
	assert.ErrorIs(t, err, customerrors.ErrStatisticNotFound)
}

func TestContentService_DeleteMissingSolution(t *testing.T) {
	svc, _ := newTestContentService(t)

	err := svc.DeleteSolution(9999)
	assert.ErrorIs(t, err, customerrors.ErrSolutionNotFound)
}

func TestContentService_ReorderStatistics(t *testing.T) {
	svc, _ := newTestContentService(t)

	a := models.Statistic{Label: "a", Value: "1", IsActive: true}
	b := models.Statistic{Label: "b", Value: "2", IsActive: true}
	require.NoError(t, svc.CreateStatistic(&a))
	require.NoError(t, svc.CreateStatistic(&b))

	require.NoError(t, svc.ReorderStatistics([]repository.ReorderItem{
		{ID: a.ID, Order: 2},
		{ID: b.ID, Order: 1},
	}))

	public := svc.GetStatistics()
	require.Len(t, public, 2)
	assert.Equal(t, "b", public[0].Label)
	assert.Equal(t, "a", public[1].Label)
}

func TestContentService_TeamPartnerLinkRoundTrip(t *testing.T) {
	svc, _ := newTestContentService(t)

	member := models.TeamMember{Name: "Jo", Role: "CTO"}
	require.NoError(t, svc.SaveTeamMember(&member))
	members, err := svc.GetTeamMembers()
	require.NoError(t, err)
	require.Len(t, members, 1)

	partner := models.Partner{Name: "Acme", SiteURL: "https://acme.example"}
	require.NoError(t, svc.SavePartner(&partner))

	link := models.Link{Label: "Docs", URL: "https://docs.example"}
	require.NoError(t, svc.SaveLink(&link))

	require.NoError(t, svc.DeleteTeamMember(member.ID))
	members, err = svc.GetTeamMembers()
	require.NoError(t, err)
	assert.Empty(t, members)

	assert.ErrorIs(t, svc.DeleteTeamMember(member.ID), customerrors.ErrTeamMemberNotFound)
	assert.ErrorIs(t, svc.DeletePartner(9999), customerrors.ErrPartnerNotFound)
	assert.ErrorIs(t, svc.DeleteLink(9999), customerrors.ErrLinkNotFound)
}
