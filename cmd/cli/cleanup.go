package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/axellelanca/newsboard/cmd"
	"github.com/axellelanca/newsboard/internal/config"
	"github.com/axellelanca/newsboard/internal/logger"
	"github.com/axellelanca/newsboard/internal/repository"
	"github.com/axellelanca/newsboard/internal/services"
)

// CleanupViewsCmd represents the 'cleanup-views' command.
// It runs one pass of the duplicate-view sweep and exits, for ad-hoc
// maintenance or scheduling outside the server process (cron).
var CleanupViewsCmd = &cobra.Command{
	Use:   "cleanup-views",
	Short: "Removes duplicate view events recorded within the debounce window.",
	Long: `This command scans view events grouped by client and article, removes
every event that follows another one from the same client on the same article
within the configured debounce window, and reports how many rows were deleted.
View counters on articles are left untouched.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		zlog, err := logger.New(cfg.Server.Environment)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer zlog.Sync()

		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("FATAL: Failed to get underlying SQL database: %v", err)
		}
		defer sqlDB.Close()

		eventRepo := repository.NewEventRepository(db)
		window := time.Duration(cfg.Tracking.DebounceSeconds) * time.Second
		cleanupSvc := services.NewCleanupService(eventRepo, window, zlog)

		deleted, err := cleanupSvc.SweepDuplicateViews()
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}

		fmt.Printf("Cleanup complete: %d duplicate view event(s) removed.\n", deleted)
	},
}

func init() {
	cmd.RootCmd.AddCommand(CleanupViewsCmd)
}
