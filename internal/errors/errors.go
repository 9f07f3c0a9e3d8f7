package errors

import (
	"errors"
	"fmt"
)

// Custom error types for the news backend

// ErrNewsNotFound is returned when a news item doesn't exist in the database
var ErrNewsNotFound = errors.New("news item not found")

// ErrCommentNotFound is returned when a reply targets a comment that doesn't exist
var ErrCommentNotFound = errors.New("parent comment not found")

// ErrInvalidNewsID is returned when a path parameter is not a positive integer
var ErrInvalidNewsID = errors.New("invalid news id")

// ErrEmptyEventType is returned when a tracking request carries no event type
var ErrEmptyEventType = errors.New("event type must be a non-empty string")

// ErrStatisticNotFound is returned when a statistic id doesn't exist
var ErrStatisticNotFound = errors.New("statistic not found")

// ErrSolutionNotFound is returned when a solution id doesn't exist
var ErrSolutionNotFound = errors.New("solution not found")

// ErrPartnerNotFound is returned when a partner id doesn't exist
var ErrPartnerNotFound = errors.New("partner not found")

// ErrTeamMemberNotFound is returned when a team member id doesn't exist
var ErrTeamMemberNotFound = errors.New("team member not found")

// ErrLinkNotFound is returned when a link id doesn't exist
var ErrLinkNotFound = errors.New("link not found")

// ErrViewRecordingFailed is returned when the transactional view write fails.
// Callers are expected to log it and continue serving the read.
type ErrViewRecordingFailed struct {
	NewsID uint
	Reason string
}

func (e ErrViewRecordingFailed) Error() string {
	return fmt.Sprintf("failed to record view for news %d: %s", e.NewsID, e.Reason)
}
