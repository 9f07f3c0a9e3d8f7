package monitor

import (
	"time"

	"go.uber.org/zap"

	"github.com/axellelanca/newsboard/internal/services"
)

// CleanupMonitor periodically runs the duplicate-view sweep in the server
// process, so the event log converges even when nobody runs the CLI
// command. It is a background complement to the online dedup gate.
type CleanupMonitor struct {
	cleanup  *services.CleanupService
	interval time.Duration
	log      *zap.Logger
}

// NewCleanupMonitor creates and returns a new instance of CleanupMonitor.
// interval determines how frequently the sweep runs.
func NewCleanupMonitor(cleanup *services.CleanupService, interval time.Duration, log *zap.Logger) *CleanupMonitor {
	return &CleanupMonitor{
		cleanup:  cleanup,
		interval: interval,
		log:      log,
	}
}

// Start launches the periodic sweep loop. This is a blocking function that
// runs until the program stops; callers run it in a goroutine.
func (m *CleanupMonitor) Start() {
	m.log.Info("starting cleanup monitor", zap.Duration("interval", m.interval))
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Run an immediate sweep on startup before waiting for the first tick.
	m.run()

	for range ticker.C {
		m.run()
	}
}

func (m *CleanupMonitor) run() {
	deleted, err := m.cleanup.SweepDuplicateViews()
	if err != nil {
		m.log.Error("cleanup sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		m.log.Info("cleanup sweep finished", zap.Int64("deleted", deleted))
	}
}
