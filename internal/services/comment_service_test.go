package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	customerrors "github.com/axellelanca/newsboard/internal/errors"
	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

func newTestCommentService(t *testing.T) (*CommentService, *models.News) {
	t.Helper()
	db := newTestDB(t)
	news := seedNews(t, db, "Commented", "tech", models.StatusPublished)
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewNewsRepository(db), zap.NewNop())
	return svc, news
}

func TestCommentService_AddAndThread(t *testing.T) {
	svc, news := newTestCommentService(t)

	root1, err := svc.AddComment(news.ID, "alice", "alice@example.com", "first")
	require.NoError(t, err)
	root2, err := svc.AddComment(news.ID, "bob", "bob@example.com", "second")
	require.NoError(t, err)

	reply, err := svc.ReplyTo(root1.ID, "carol", "carol@example.com", "reply to first")
	require.NoError(t, err)
	assert.Equal(t, news.ID, reply.NewsID)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root1.ID, *reply.ParentID)

	thread, err := svc.GetThread(news.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, root1.ID, thread[0].ID)
	assert.Equal(t, root2.ID, thread[1].ID)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, reply.ID, thread[0].Replies[0].ID)
	assert.Empty(t, thread[1].Replies)
}

func TestCommentService_AddCommentOnMissingNews(t *testing.T) {
	svc, _ := newTestCommentService(t)

	_, err := svc.AddComment(9999, "alice", "alice@example.com", "lost")
	assert.ErrorIs(t, err, customerrors.ErrNewsNotFound)
}

func TestCommentService_ReplyToMissingParent(t *testing.T) {
	svc, _ := newTestCommentService(t)

	_, err := svc.ReplyTo(9999, "alice", "alice@example.com", "lost")
	assert.ErrorIs(t, err, customerrors.ErrCommentNotFound)
}

func TestCommentService_EmptyThread(t *testing.T) {
	svc, news := newTestCommentService(t)

	thread, err := svc.GetThread(news.ID)
	require.NoError(t, err)
	assert.Empty(t, thread)
}

func uintPtr(v uint) *uint { return &v }

func TestBuildCommentForest_Nesting(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Comment{
		{ID: 1, Author: "a", Content: "root 1", CreatedAt: base},
		{ID: 2, Author: "b", Content: "root 2", CreatedAt: base.Add(1 * time.Minute)},
		{ID: 3, ParentID: uintPtr(1), Author: "c", Content: "reply 1.1", CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, ParentID: uintPtr(3), Author: "d", Content: "reply 1.1.1", CreatedAt: base.Add(3 * time.Minute)},
		{ID: 5, ParentID: uintPtr(1), Author: "e", Content: "reply 1.2", CreatedAt: base.Add(4 * time.Minute)},
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 2)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Equal(t, uint(2), forest[1].ID)

	require.Len(t, forest[0].Replies, 2)
	assert.Equal(t, uint(3), forest[0].Replies[0].ID)
	assert.Equal(t, uint(5), forest[0].Replies[1].ID)

	require.Len(t, forest[0].Replies[0].Replies, 1)
	assert.Equal(t, uint(4), forest[0].Replies[0].Replies[0].ID)
}

// Input order must not matter: the forest is rebuilt from timestamps.
func TestBuildCommentForest_UnsortedInput(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Comment{
		{ID: 3, ParentID: uintPtr(1), Author: "c", Content: "reply", CreatedAt: base.Add(2 * time.Minute)},
		{ID: 1, Author: "a", Content: "root", CreatedAt: base},
		{ID: 2, Author: "b", Content: "later root", CreatedAt: base.Add(1 * time.Minute)},
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 2)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Equal(t, uint(2), forest[1].ID)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, uint(3), forest[0].Replies[0].ID)
}

// A reply whose parent row is gone must surface as a root, not disappear.
func TestBuildCommentForest_OrphanPromotedToRoot(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Comment{
		{ID: 1, Author: "a", Content: "root", CreatedAt: base},
		{ID: 2, ParentID: uintPtr(42), Author: "b", Content: "orphan", CreatedAt: base.Add(1 * time.Minute)},
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 2)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Equal(t, uint(2), forest[1].ID)
}

// Malformed parent pointers forming a loop must not trap the assembly; both
// rows come out as roots.
func TestBuildCommentForest_CycleDoesNotTrap(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Comment{
		{ID: 1, ParentID: uintPtr(2), Author: "a", Content: "x", CreatedAt: base},
		{ID: 2, ParentID: uintPtr(1), Author: "b", Content: "y", CreatedAt: base.Add(1 * time.Minute)},
	}

	forest := BuildCommentForest(rows)

	// Row 1's chain loops back onto itself, so it is promoted; with the
	// loop broken, row 2 nests cleanly under it.
	require.Len(t, forest, 1)
	assert.Equal(t, uint(1), forest[0].ID)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, uint(2), forest[0].Replies[0].ID)
}

// Clock skew can stamp a child earlier than its parent. The edge is still
// valid and must nest, not demote the child to a root.
func TestBuildCommentForest_ChildEarlierThanParentStillNests(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Comment{
		{ID: 2, ParentID: uintPtr(1), Author: "b", Content: "early reply", CreatedAt: base},
		{ID: 1, Author: "a", Content: "late root", CreatedAt: base.Add(1 * time.Minute)},
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 1)
	assert.Equal(t, uint(1), forest[0].ID)
	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, uint(2), forest[0].Replies[0].ID)
}

func TestBuildCommentForest_SelfReference(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Comment{
		{ID: 1, ParentID: uintPtr(1), Author: "a", Content: "self", CreatedAt: base},
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 1)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Empty(t, forest[0].Replies)
}

func TestBuildCommentForest_TimestampTiesBreakByID(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := []models.Comment{
		{ID: 2, Author: "b", Content: "tied", CreatedAt: base},
		{ID: 1, Author: "a", Content: "tied", CreatedAt: base},
	}

	forest := BuildCommentForest(rows)

	require.Len(t, forest, 2)
	assert.Equal(t, uint(1), forest[0].ID)
	assert.Equal(t, uint(2), forest[1].ID)
}

func TestBuildCommentForest_Empty(t *testing.T) {
	assert.Empty(t, BuildCommentForest(nil))
}
