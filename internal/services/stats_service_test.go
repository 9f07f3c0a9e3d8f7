package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// fixedNow is pinned to midday UTC so no seeded event sits near a day
// boundary.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestStatsService(t *testing.T, db *gorm.DB) *StatsService {
	t.Helper()
	svc := NewStatsService(
		repository.NewEventRepository(db),
		repository.NewNewsRepository(db),
		repository.NewAdminRepository(db),
		zap.NewNop(),
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestStatsService_EventsByDay_ZeroFilledWindow(t *testing.T) {
	db := newTestDB(t)
	news := seedNews(t, db, "Daily", "tech", models.StatusPublished)
	svc := newTestStatsService(t, db)

	// Two views yesterday, one three days ago, nothing else.
	seedViewEvent(t, db, news.ID, "s1", fixedNow.AddDate(0, 0, -1))
	seedViewEvent(t, db, news.ID, "s2", fixedNow.AddDate(0, 0, -1).Add(time.Hour))
	seedViewEvent(t, db, news.ID, "s3", fixedNow.AddDate(0, 0, -3))

	series, err := svc.EventsByDay("news_view", 7, "", "")
	require.NoError(t, err)

	// Exactly one bucket per day in the window, even empty ones.
	require.Len(t, series, 7)
	var total int64
	for _, bucket := range series {
		total += bucket.Count
	}
	assert.Equal(t, int64(3), total)

	// Buckets come out in ascending date order ending today.
	assert.Equal(t, fixedNow.AddDate(0, 0, -6).Format("2006-01-02"), series[0].Date)
	assert.Equal(t, fixedNow.Format("2006-01-02"), series[6].Date)
	assert.Equal(t, int64(2), series[5].Count)
	assert.Equal(t, int64(1), series[3].Count)
	assert.Equal(t, int64(0), series[6].Count)
}

func TestStatsService_EventsByDay_ExplicitRangeWins(t *testing.T) {
	db := newTestDB(t)
	news := seedNews(t, db, "Ranged", "tech", models.StatusPublished)
	svc := newTestStatsService(t, db)

	seedViewEvent(t, db, news.ID, "s1", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))
	seedViewEvent(t, db, news.ID, "s2", time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC))
	seedViewEvent(t, db, news.ID, "s3", time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC))

	series, err := svc.EventsByDay("news_view", 3, "2025-06-10", "2025-06-12")
	require.NoError(t, err)

	// Inclusive three-day range; the event on the 14th is outside it.
	require.Len(t, series, 3)
	assert.Equal(t, "2025-06-10", series[0].Date)
	assert.Equal(t, int64(1), series[0].Count)
	assert.Equal(t, int64(1), series[1].Count)
	assert.Equal(t, int64(0), series[2].Count)
}

func TestStatsService_EventsByDay_MalformedRangeFallsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStatsService(t, db)

	for _, tc := range []struct{ from, to string }{
		{"not-a-date", "2025-06-12"},
		{"2025-06-10", "garbage"},
		{"2025-06-12", "2025-06-10"}, // reversed
		{"2025-06-10", ""},
	} {
		series, err := svc.EventsByDay("news_view", 5, tc.from, tc.to)
		require.NoError(t, err)
		assert.Len(t, series, 5, "from=%q to=%q", tc.from, tc.to)
	}
}

func TestStatsService_EventsByDay_DaysOutOfRangeUsesDefault(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStatsService(t, db)

	for _, days := range []int{0, -3, 366, 100000} {
		series, err := svc.EventsByDay("news_view", days, "", "")
		require.NoError(t, err)
		assert.Len(t, series, defaultWindowDays, "days=%d", days)
	}
}

func TestStatsService_EventsByDay_UnknownTypeCountsViews(t *testing.T) {
	db := newTestDB(t)
	news := seedNews(t, db, "Typed", "tech", models.StatusPublished)
	svc := newTestStatsService(t, db)

	seedViewEvent(t, db, news.ID, "s1", fixedNow.Add(-time.Hour))
	seedEvent(t, db, models.EventNewsClick, &news.ID, fixedNow.Add(-time.Hour))

	series, err := svc.EventsByDay("definitely_not_a_kind", 1, "", "")
	require.NoError(t, err)

	var total int64
	for _, bucket := range series {
		total += bucket.Count
	}
	// Only the view is counted: the unknown type fell back to news_view.
	assert.Equal(t, int64(1), total)
}

func TestStatsService_GetSummary(t *testing.T) {
	db := newTestDB(t)
	news := seedNews(t, db, "Summed", "tech", models.StatusPublished)
	svc := newTestStatsService(t, db)

	seedViewEvent(t, db, news.ID, "s1", fixedNow.Add(-time.Hour))
	seedViewEvent(t, db, news.ID, "s2", fixedNow.Add(-2*time.Hour))
	seedEvent(t, db, models.EventNewsClick, &news.ID, fixedNow.Add(-time.Hour))
	// Outside the 14-day default window, must not be counted.
	seedViewEvent(t, db, news.ID, "s3", fixedNow.AddDate(0, 0, -20))

	summary, err := svc.GetSummary(0)
	require.NoError(t, err)

	assert.Equal(t, defaultWindowDays, summary.Days)
	assert.Equal(t, int64(3), summary.Total)
	assert.Equal(t, int64(2), summary.ByType["news_view"])
	assert.Equal(t, int64(1), summary.ByType["news_click"])
}

func TestStatsService_GetSummary_EmptyStore(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStatsService(t, db)

	summary, err := svc.GetSummary(7)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.Days)
	assert.Equal(t, int64(0), summary.Total)
	assert.Empty(t, summary.ByType)
}

func TestStatsService_GetTopNews(t *testing.T) {
	db := newTestDB(t)
	first := seedNews(t, db, "Big story", "tech", models.StatusPublished)
	second := seedNews(t, db, "Small story", "tech", models.StatusPublished)
	third := seedNews(t, db, "Tied story", "tech", models.StatusPublished)
	svc := newTestStatsService(t, db)

	for i := 0; i < 3; i++ {
		seedViewEvent(t, db, first.ID, "s", fixedNow.Add(-time.Duration(i+1)*time.Hour))
	}
	seedViewEvent(t, db, second.ID, "s", fixedNow.Add(-time.Hour))
	seedViewEvent(t, db, third.ID, "s", fixedNow.Add(-time.Hour))

	top, err := svc.GetTopNews(14, 10)
	require.NoError(t, err)

	require.Len(t, top, 3)
	assert.Equal(t, first.ID, top[0].NewsID)
	assert.Equal(t, "Big story", top[0].Title)
	assert.Equal(t, int64(3), top[0].Views)
	// The tie between second and third breaks by id ascending.
	assert.Equal(t, second.ID, top[1].NewsID)
	assert.Equal(t, third.ID, top[2].NewsID)
}

func TestStatsService_GetTopNews_LimitApplied(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStatsService(t, db)

	for i := 0; i < 8; i++ {
		news := seedNews(t, db, "N", "tech", models.StatusPublished)
		seedViewEvent(t, db, news.ID, "s", fixedNow.Add(-time.Hour))
	}

	top, err := svc.GetTopNews(14, 0)
	require.NoError(t, err)
	assert.Len(t, top, defaultTopLimit)

	top, err = svc.GetTopNews(14, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestStatsService_Categories(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStatsService(t, db)

	seedNews(t, db, "a", "sport", models.StatusPublished)
	seedNews(t, db, "b", "sport", models.StatusPublished)
	seedNews(t, db, "c", "tech", models.StatusPublished)
	seedNews(t, db, "d", "culture", models.StatusDraft)

	categories, err := svc.Categories()
	require.NoError(t, err)

	require.Len(t, categories, 3)
	assert.Equal(t, CategoryEntry{Category: "sport", Count: 2}, categories[0])
	// The count-1 tie breaks alphabetically.
	assert.Equal(t, CategoryEntry{Category: "culture", Count: 1}, categories[1])
	assert.Equal(t, CategoryEntry{Category: "tech", Count: 1}, categories[2])
}

func TestStatsService_GetOverview(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStatsService(t, db)

	seedNews(t, db, "Pub", "tech", models.StatusPublished)
	seedNews(t, db, "Draft", "tech", models.StatusDraft)
	latest := seedNews(t, db, "Arch", "sport", models.StatusArchived)
	seedViewEvent(t, db, latest.ID, "s1", fixedNow.Add(-time.Hour))
	seedViewEvent(t, db, latest.ID, "s2", fixedNow.Add(-2*time.Hour))
	require.NoError(t, db.Create(&models.Admin{User: "root", Role: "admin"}).Error)

	overview, err := svc.GetOverview()
	require.NoError(t, err)

	assert.Equal(t, int64(3), overview.TotalNews)
	assert.Equal(t, int64(1), overview.PublishedNews)
	assert.Equal(t, int64(1), overview.DraftNews)
	assert.Equal(t, int64(1), overview.ArchivedNews)
	assert.Equal(t, int64(2), overview.TotalViews)
	assert.Equal(t, int64(1), overview.AdminCount)
	require.NotNil(t, overview.LatestNews)
	assert.Equal(t, latest.ID, overview.LatestNews.ID)
	assert.Len(t, overview.TopCategories, 2)
}

func TestStatsService_GetOverview_EmptyStore(t *testing.T) {
	db := newTestDB(t)
	svc := newTestStatsService(t, db)

	overview, err := svc.GetOverview()
	require.NoError(t, err)

	assert.Equal(t, int64(0), overview.TotalNews)
	assert.Equal(t, int64(0), overview.TotalViews)
	assert.Nil(t, overview.LatestNews)
	assert.Empty(t, overview.TopCategories)
}
