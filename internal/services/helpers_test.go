package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/axellelanca/newsboard/internal/models"
)

// newTestDB opens an isolated in-memory database migrated with every model.
// The shared-cache name is derived from the test name so parallel tests never
// see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.News{}, &models.NewsImage{}, &models.Event{},
		&models.Comment{}, &models.Admin{},
		&models.AboutSection{}, &models.Statistic{}, &models.Solution{},
		&models.TeamMember{}, &models.Partner{}, &models.Link{},
	))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// seedNews inserts one article and returns it.
func seedNews(t *testing.T, db *gorm.DB, title, category, status string) *models.News {
	t.Helper()
	news := &models.News{
		Title:    title,
		Content:  "content of " + title,
		Category: category,
		Status:   status,
		Date:     time.Now(),
	}
	require.NoError(t, db.Create(news).Error)
	return news
}

// seedViewEvent inserts one news_view event with an explicit timestamp.
func seedViewEvent(t *testing.T, db *gorm.DB, newsID uint, token string, at time.Time) *models.Event {
	t.Helper()
	id := newsID
	event := &models.Event{
		Type:         string(models.EventNewsView),
		NewsID:       &id,
		SessionToken: token,
		CreatedAt:    at,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

// seedEvent inserts one event of an arbitrary kind with an explicit timestamp.
func seedEvent(t *testing.T, db *gorm.DB, kind models.EventKind, newsID *uint, at time.Time) *models.Event {
	t.Helper()
	event := &models.Event{
		Type:      string(kind),
		NewsID:    newsID,
		CreatedAt: at,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func countEvents(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Event{}).Count(&count).Error)
	return count
}
