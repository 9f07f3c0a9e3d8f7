package cli

import (
	"fmt"
	"log"
	"sort"

	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/axellelanca/newsboard/cmd"
	"github.com/axellelanca/newsboard/internal/config"
	"github.com/axellelanca/newsboard/internal/logger"
	"github.com/axellelanca/newsboard/internal/repository"
	"github.com/axellelanca/newsboard/internal/services"
)

var statsDays int

// StatsCmd represents the 'stats' command
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints the content overview and the event summary.",
	Long: `Prints article counts, total views and the per-type event breakdown
over a trailing window of days (default 14).`,
	Run: runStats,
}

func init() {
	StatsCmd.Flags().IntVar(&statsDays, "days", 0, "trailing window in days (default 14)")
	cmd.RootCmd.AddCommand(StatsCmd)
}

// runStats executes the logic for the stats command
func runStats(cobraCmd *cobra.Command, args []string) {
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
	newsRepo := repository.NewNewsRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	statsService := services.NewStatsService(eventRepo, newsRepo, adminRepo, zlog)

	overview, err := statsService.GetOverview()
	if err != nil {
		log.Fatalf("Failed to compute overview: %v", err)
	}

	fmt.Println("Content overview")
	fmt.Printf("  Articles:  %d total (%d published, %d draft, %d archived)\n",
		overview.TotalNews, overview.PublishedNews, overview.DraftNews, overview.ArchivedNews)
	fmt.Printf("  Views:     %d\n", overview.TotalViews)
	fmt.Printf("  Images:    %d\n", overview.ImagesCount)
	fmt.Printf("  Admins:    %d\n", overview.AdminCount)
	if overview.LatestNews != nil {
		fmt.Printf("  Latest:    #%d %s\n", overview.LatestNews.ID, overview.LatestNews.Title)
	}

	summary, err := statsService.GetSummary(statsDays)
	if err != nil {
		log.Fatalf("Failed to compute summary: %v", err)
	}

	fmt.Printf("\nEvents over the last %d day(s): %d total\n", summary.Days, summary.Total)
	types := make([]string, 0, len(summary.ByType))
	for t := range summary.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %-15s %d\n", t, summary.ByType[t])
	}
}
