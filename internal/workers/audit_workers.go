package workers

import (
	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/models"
	"github.com/axellelanca/newsboard/internal/repository"
)

// StartAuditWorkers launches a pool of worker goroutines that persist audit
// entries asynchronously. Admin mutations push onto the channel and return
// immediately; the workers drain it into the event log.
// Parameters:
//   - workerCount: number of concurrent workers to spawn
//   - entries: channel that receives audit entries to be persisted
//   - eventRepo: repository interface for writing events to the database
func StartAuditWorkers(workerCount int, entries <-chan models.AuditEntry, eventRepo repository.EventRepository, log *zap.Logger) {
	log.Info("starting audit workers", zap.Int("count", workerCount))

	// Each worker listens on the same channel and processes entries
	// concurrently. Workers exit when the channel is closed.
	for i := 0; i < workerCount; i++ {
		go auditWorker(entries, eventRepo, log)
	}
}

// auditWorker is the function executed by each worker goroutine. It blocks
// on the channel and converts each entry into an event row.
func auditWorker(entries <-chan models.AuditEntry, eventRepo repository.EventRepository, log *zap.Logger) {
	for entry := range entries {
		var path *string
		if entry.Path != "" {
			p := entry.Path
			path = &p
		}
		event := &models.Event{
			Type:      string(entry.Type),
			UserID:    entry.UserID,
			NewsID:    entry.NewsID,
			Path:      path,
			UserAgent: entry.UserAgent,
			IP:        entry.IP,
		}

		// Log errors but keep draining - one failed write must not stall
		// the audit trail behind it.
		if err := eventRepo.CreateEvent(event); err != nil {
			log.Error("failed to persist audit entry",
				zap.String("type", string(entry.Type)),
				zap.Error(err))
		}
	}
}
