package services

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

const (
	defaultWindowDays = 14
	maxWindowDays     = 365
	defaultTopLimit   = 5
	maxTopLimit       = 50

	dayFormat = "2006-01-02"
)

// Overview is the point-in-time dashboard snapshot. Its sub-queries run
// back to back, not atomically; concurrent writes may land between them,
// which is acceptable for dashboard-style reporting.
type Overview struct {
	TotalNews     int64           `json:"totalNews"`
	PublishedNews int64           `json:"publishedNews"`
	ArchivedNews  int64           `json:"archivedNews"`
	DraftNews     int64           `json:"draftNews"`
	TotalViews    int64           `json:"totalViews"`
	ImagesCount   int64           `json:"imagesCount"`
	LatestNews    *LatestNews     `json:"latestNews"`
	AdminCount    int64           `json:"adminCount"`
	TopCategories []CategoryEntry `json:"topCategories"`
}

// LatestNews identifies the most recently created article.
type LatestNews struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryEntry is one row of the per-category article counts.
type CategoryEntry struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// DayBucket is one calendar day of an events-by-day series.
type DayBucket struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Summary is the rolling-window per-type event breakdown.
type Summary struct {
	Days   int              `json:"days"`
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"byType"`
}

// TopNewsEntry is one row of the view-count ranking.
type TopNewsEntry struct {
	NewsID uint   `json:"newsId"`
	Title  string `json:"title"`
	Views  int64  `json:"views"`
}

// StatsService computes derived, read-only statistics over the event log
// and the news collection. Every operation tolerates an empty store and
// returns zero-filled or empty structures instead of failing.
type StatsService struct {
	eventRepo repository.EventRepository
	newsRepo  repository.NewsRepository
	adminRepo repository.AdminRepository
	log       *zap.Logger

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewStatsService creates and returns a new instance of StatsService.
func NewStatsService(eventRepo repository.EventRepository, newsRepo repository.NewsRepository, adminRepo repository.AdminRepository, log *zap.Logger) *StatsService {
	return &StatsService{
		eventRepo: eventRepo,
		newsRepo:  newsRepo,
		adminRepo: adminRepo,
		log:       log,
		now:       time.Now,
	}
}

// GetOverview assembles the dashboard snapshot: per-status article counts,
// the authoritative view total (derived from the event log, not the cached
// counters), image and admin counts, the newest article, and the top five
// categories.
func (s *StatsService) GetOverview() (*Overview, error) {
	totalNews, err := s.newsRepo.CountNews()
	if err != nil {
		return nil, err
	}
	published, err := s.newsRepo.CountNewsByStatus(models.StatusPublished)
	if err != nil {
		return nil, err
	}
	archived, err := s.newsRepo.CountNewsByStatus(models.StatusArchived)
	if err != nil {
		return nil, err
	}
	draft, err := s.newsRepo.CountNewsByStatus(models.StatusDraft)
	if err != nil {
		return nil, err
	}
	totalViews, err := s.eventRepo.CountByType(models.EventNewsView)
	if err != nil {
		return nil, err
	}
	imagesCount, err := s.newsRepo.CountImages()
	if err != nil {
		return nil, err
	}
	latest, err := s.newsRepo.LatestNews()
	if err != nil {
		return nil, err
	}
	adminCount, err := s.adminRepo.CountAdmins()
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories()
	if err != nil {
		return nil, err
	}
	if len(categories) > 5 {
		categories = categories[:5]
	}

	overview := &Overview{
		TotalNews:     totalNews,
		PublishedNews: published,
		ArchivedNews:  archived,
		DraftNews:     draft,
		TotalViews:    totalViews,
		ImagesCount:   imagesCount,
		AdminCount:    adminCount,
		TopCategories: categories,
	}
	if latest != nil {
		overview.LatestNews = &LatestNews{
			ID:        latest.ID,
			Title:     latest.Title,
			CreatedAt: latest.CreatedAt,
		}
	}
	return overview, nil
}

// EventsByDay returns one entry per calendar day, in ascending order, with
// count 0 for days that saw no matching events: the output length always
// equals the number of days in range.
//
// The event type goes through the allow-list; unrecognized values fall back
// to news_view rather than erroring. The range is either the explicit
// inclusive [from, to] pair (which wins when both parse) or a trailing
// window of `days` days ending today.
func (s *StatsService) EventsByDay(typeStr string, days int, fromStr, toStr string) ([]DayBucket, error) {
	kind := models.ParseEventKindOrDefault(typeStr, models.EventNewsView)

	start, end, ok := parseExplicitRange(fromStr, toStr)
	if !ok {
		d := sanitizeDays(days)
		end = startOfDay(s.now().UTC()).AddDate(0, 0, 1)
		start = end.AddDate(0, 0, -d)
	}

	rows, err := s.eventRepo.CountByDay(kind, start, end)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Day] = row.Count
	}

	var series []DayBucket
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		series = append(series, DayBucket{Date: key, Count: counts[key]})
	}
	return series, nil
}

// GetSummary counts all event types within a trailing window of `days`
// days, plus the aggregate total.
func (s *StatsService) GetSummary(days int) (*Summary, error) {
	d := sanitizeDays(days)
	since := s.now().Add(-time.Duration(d) * 24 * time.Hour)

	rows, err := s.eventRepo.CountsByTypeSince(since)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Days:   d,
		ByType: make(map[string]int64, len(rows)),
	}
	for _, row := range rows {
		summary.ByType[row.Type] = row.Count
		summary.Total += row.Count
	}
	return summary, nil
}

// GetTopNews ranks distinct news items by view-event count within a
// trailing window. Ties are broken by news id ascending, so repeated calls
// over the same data return identical results.
func (s *StatsService) GetTopNews(days, limit int) ([]TopNewsEntry, error) {
	d := sanitizeDays(days)
	n := limit
	if n <= 0 {
		n = defaultTopLimit
	} else if n > maxTopLimit {
		n = maxTopLimit
	}
	since := s.now().Add(-time.Duration(d) * 24 * time.Hour)

	rows, err := s.eventRepo.TopNewsByViews(since, n)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.NewsID)
	}
	titles, err := s.newsRepo.TitlesByIDs(ids)
	if err != nil {
		return nil, err
	}

	top := make([]TopNewsEntry, 0, len(rows))
	for _, row := range rows {
		top = append(top, TopNewsEntry{
			NewsID: row.NewsID,
			Title:  titles[row.NewsID],
			Views:  row.Count,
		})
	}
	return top, nil
}

// Categories counts articles per category, descending by count with ties
// broken by category name so the ordering is stable.
func (s *StatsService) Categories() ([]CategoryEntry, error) {
	rows, err := s.newsRepo.CategoryCounts()
	if err != nil {
		return nil, err
	}

	entries := make([]CategoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, CategoryEntry{Category: row.Category, Count: row.Count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Count > entries[j].Count
	})
	return entries, nil
}

// sanitizeDays validates a window length the way the query layer expects:
// anything outside [1, 365] falls back to the 14-day default.
func sanitizeDays(days int) int {
	if days < 1 || days > maxWindowDays {
		return defaultWindowDays
	}
	return days
}

// parseExplicitRange interprets the optional from/to query parameters.
// Both must parse as calendar dates and be properly ordered for the
// explicit range to take effect; the returned end is exclusive (start of
// the day after `to`).
func parseExplicitRange(fromStr, toStr string) (start, end time.Time, ok bool) {
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse(dayFormat, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dayFormat, toStr)
	if err != nil || to.Before(from) {
		return time.Time{}, time.Time{}, false
	}
	return from, to.AddDate(0, 0, 1), true
}

// startOfDay truncates a time to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
