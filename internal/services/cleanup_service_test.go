package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

func TestDuplicateViewIDs_BurstCollapsesToFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	newsID := uint(1)
	// Consecutive events 3s apart: each is within 5s of its immediate
	// predecessor, so the whole burst collapses to the first event even
	// though the third is 6s after the first.
	events := []models.Event{
		{ID: 1, SessionToken: "s", NewsID: &newsID, CreatedAt: base},
		{ID: 2, SessionToken: "s", NewsID: &newsID, CreatedAt: base.Add(3 * time.Second)},
		{ID: 3, SessionToken: "s", NewsID: &newsID, CreatedAt: base.Add(6 * time.Second)},
	}

	ids := duplicateViewIDs(events, 5*time.Second)
	assert.Equal(t, []uint{2, 3}, ids)
}

func TestDuplicateViewIDs_GapAtWindowIsKept(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	newsID := uint(1)
	// Exactly the window apart: not a duplicate (strict less-than).
	events := []models.Event{
		{ID: 1, SessionToken: "s", NewsID: &newsID, CreatedAt: base},
		{ID: 2, SessionToken: "s", NewsID: &newsID, CreatedAt: base.Add(5 * time.Second)},
	}

	ids := duplicateViewIDs(events, 5*time.Second)
	assert.Empty(t, ids)
}

func TestDuplicateViewIDs_DifferentKeysNeverMatch(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	news1, news2 := uint(1), uint(2)
	events := []models.Event{
		{ID: 1, SessionToken: "a", NewsID: &news1, CreatedAt: base},
		{ID: 2, SessionToken: "a", NewsID: &news2, CreatedAt: base.Add(time.Second)},
		{ID: 3, SessionToken: "b", NewsID: &news2, CreatedAt: base.Add(2 * time.Second)},
	}

	ids := duplicateViewIDs(events, 5*time.Second)
	assert.Empty(t, ids)
}

func TestDuplicateViewIDs_NilNewsIDBucket(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	newsID := uint(1)
	events := []models.Event{
		{ID: 1, SessionToken: "s", CreatedAt: base},
		{ID: 2, SessionToken: "s", CreatedAt: base.Add(time.Second)},
		{ID: 3, SessionToken: "s", NewsID: &newsID, CreatedAt: base.Add(2 * time.Second)},
	}

	ids := duplicateViewIDs(events, 5*time.Second)
	// Two nil-news rows share a bucket; the row with a news id does not.
	assert.Equal(t, []uint{2}, ids)
}

func TestDuplicateViewIDs_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, duplicateViewIDs(nil, 5*time.Second))

	newsID := uint(1)
	single := []models.Event{{ID: 1, SessionToken: "s", NewsID: &newsID, CreatedAt: time.Now()}}
	assert.Empty(t, duplicateViewIDs(single, 5*time.Second))
}

func TestCleanupService_SweepDuplicateViews(t *testing.T) {
	db := newTestDB(t)
	news := seedNews(t, db, "Swept", "tech", models.StatusPublished)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Same client, three views inside the window: two duplicates.
	kept := seedViewEvent(t, db, news.ID, "sess-1", base)
	seedViewEvent(t, db, news.ID, "sess-1", base.Add(2*time.Second))
	seedViewEvent(t, db, news.ID, "sess-1", base.Add(4*time.Second))
	// Same client, past the window: kept.
	seedViewEvent(t, db, news.ID, "sess-1", base.Add(20*time.Second))
	// Other client inside the window: kept.
	seedViewEvent(t, db, news.ID, "sess-2", base.Add(time.Second))

	svc := NewCleanupService(repository.NewEventRepository(db), 5*time.Second, zap.NewNop())
	deleted, err := svc.SweepDuplicateViews()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, int64(3), countEvents(t, db))

	// The earliest event of the burst is the one that survives.
	var first models.Event
	require.NoError(t, db.Where("session_token = ?", "sess-1").Order("created_at ASC").First(&first).Error)
	assert.Equal(t, kept.ID, first.ID)
}

func TestCleanupService_SweepIgnoresOtherEventKinds(t *testing.T) {
	db := newTestDB(t)
	news := seedNews(t, db, "Clicked", "tech", models.StatusPublished)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	// Click events never participate in the view sweep, however close.
	seedEvent(t, db, models.EventNewsClick, &news.ID, base)
	seedEvent(t, db, models.EventNewsClick, &news.ID, base.Add(time.Second))

	svc := NewCleanupService(repository.NewEventRepository(db), 5*time.Second, zap.NewNop())
	deleted, err := svc.SweepDuplicateViews()
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	assert.Equal(t, int64(2), countEvents(t, db))
}

func TestCleanupService_SweepEmptyLog(t *testing.T) {
	db := newTestDB(t)
	svc := NewCleanupService(repository.NewEventRepository(db), 5*time.Second, zap.NewNop())

	deleted, err := svc.SweepDuplicateViews()
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

// Sweeping twice must be a no-op the second time.
func TestCleanupService_SweepIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	news := seedNews(t, db, "Twice", "tech", models.StatusPublished)
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	seedViewEvent(t, db, news.ID, "sess-1", base)
	seedViewEvent(t, db, news.ID, "sess-1", base.Add(time.Second))

	svc := NewCleanupService(repository.NewEventRepository(db), 5*time.Second, zap.NewNop())

	deleted, err := svc.SweepDuplicateViews()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = svc.SweepDuplicateViews()
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}
