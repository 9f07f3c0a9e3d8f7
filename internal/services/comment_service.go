package services

import (
	"sort"

	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// CommentService provides the per-article comment thread: posting roots and
// replies, and reconstructing the display forest from the flat rows.
type CommentService struct {
	commentRepo repository.CommentRepository
	newsRepo    repository.NewsRepository
	log         *zap.Logger
}

// NewCommentService creates and returns a new instance of CommentService.
func NewCommentService(commentRepo repository.CommentRepository, newsRepo repository.NewsRepository, log *zap.Logger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		newsRepo:    newsRepo,
		log:         log,
	}
}

// GetThread returns the assembled comment forest for one article. An
// article with no comments yields an empty slice, not an error.
func (s *CommentService) GetThread(newsID uint) ([]*models.CommentNode, error) {
	rows, err := s.commentRepo.GetCommentsByNewsID(newsID)
	if err != nil {
		return nil, err
	}
	return BuildCommentForest(rows), nil
}

// AddComment posts a new root comment on an article. The article must exist.
func (s *CommentService) AddComment(newsID uint, author, email, content string) (*models.Comment, error) {
	if _, err := s.newsRepo.GetNewsByID(newsID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		NewsID:  newsID,
		Author:  author,
		Email:   email,
		Content: content,
	}
	if err := s.commentRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ReplyTo posts a reply under an existing comment. The reply inherits the
// parent's article id regardless of what the caller claims, which prevents
// cross-article comment injection. A missing parent is a not-found error.
func (s *CommentService) ReplyTo(parentID uint, author, email, content string) (*models.Comment, error) {
	parent, err := s.commentRepo.GetCommentByID(parentID)
	if err != nil {
		return nil, err
	}

	reply := &models.Comment{
		NewsID:   parent.NewsID,
		ParentID: &parent.ID,
		Author:   author,
		Email:    email,
		Content:  content,
	}
	if err := s.commentRepo.CreateComment(reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// BuildCommentForest converts flat comment rows into an ordered forest of
// root comments with nested replies.
//
// Rows are sorted by creation time (ties by id) before assembly, so both the
// root list and every reply list come out in chronological order. Nodes are
// built arena-style in one pass and linked through parent pointers, keeping
// the whole thing O(n log n) in the sort and O(n) in the linking, with no
// recursion over the thread depth.
//
// A row whose parent id resolves to nothing (parent deleted, data
// corruption) is promoted to a root rather than dropped: visibility wins
// over structural fidelity. A row whose parent chain loops back onto itself
// (self-reference, mutual pointers) is likewise promoted, which breaks the
// loop for every other row on it. Valid edges are never rejected, even when
// clock skew gives a child an earlier timestamp than its parent.
func BuildCommentForest(rows []models.Comment) []*models.CommentNode {
	sorted := make([]models.Comment, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	nodes := make(map[uint]*models.CommentNode, len(sorted))
	for _, row := range sorted {
		nodes[row.ID] = &models.CommentNode{
			ID:        row.ID,
			Author:    row.Author,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			Replies:   []*models.CommentNode{},
		}
	}

	// parentOf holds only edges whose parent row is actually present;
	// entries are removed as rows get promoted to roots, so each loop is
	// broken at most once.
	parentOf := make(map[uint]uint, len(sorted))
	for _, row := range sorted {
		if row.ParentID == nil {
			continue
		}
		if _, ok := nodes[*row.ParentID]; ok {
			parentOf[row.ID] = *row.ParentID
		}
	}

	roots := make([]*models.CommentNode, 0, len(sorted))
	for _, row := range sorted {
		node := nodes[row.ID]
		parentID, hasParent := parentOf[row.ID]
		if !hasParent {
			// Genuine root, or an orphan surfaced instead of lost.
			roots = append(roots, node)
			continue
		}
		if onAncestorChain(parentOf, parentID, row.ID) {
			delete(parentOf, row.ID)
			roots = append(roots, node)
			continue
		}
		nodes[parentID].Replies = append(nodes[parentID].Replies, node)
	}

	return roots
}

// onAncestorChain reports whether target sits on the parent chain starting
// at from. The walk is bounded by the map size, so even a loop the caller
// has not broken yet cannot spin it forever.
func onAncestorChain(parentOf map[uint]uint, from, target uint) bool {
	cur := from
	for steps := 0; steps <= len(parentOf); steps++ {
		if cur == target {
			return true
		}
		next, ok := parentOf[cur]
		if !ok {
			return false
		}
		cur = next
	}
	return true
}
