package cli

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/axellelanca/newsboard/cmd"
	"github.com/axellelanca/newsboard/internal/config"
	"github.com/axellelanca/newsboard/internal/models"
)

var seedAdminUser string

// SeedCmd represents the 'seed' command. It bootstraps a fresh database with
// the default page content and one admin account so the public site renders
// something before any editorial work has happened.
var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seeds the database with default page content and an admin account.",
	Long: `This command inserts the default about section, statistics and solutions
when those tables are empty, and creates the given admin account if it does
not exist yet. It is safe to run multiple times.`,
	Run: func(cobraCmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("FATAL: Failed to get underlying SQL database: %v", err)
		}
		defer sqlDB.Close()

		if err := seedContent(db); err != nil {
			log.Fatalf("Failed to seed content: %v", err)
		}

		admin := models.Admin{User: seedAdminUser, Role: "admin"}
		result := db.Where(models.Admin{User: seedAdminUser}).FirstOrCreate(&admin)
		if result.Error != nil {
			log.Fatalf("Failed to seed admin account: %v", result.Error)
		}
		if result.RowsAffected > 0 {
			fmt.Printf("Admin account '%s' created (id %d).\n", admin.User, admin.ID)
		} else {
			fmt.Printf("Admin account '%s' already exists (id %d).\n", admin.User, admin.ID)
		}

		fmt.Println("Seeding complete.")
	},
}

// seedContent inserts the default page sections into empty tables.
// Tables that already hold rows are left as they are.
func seedContent(db *gorm.DB) error {
	var aboutCount int64
	if err := db.Model(&models.AboutSection{}).Count(&aboutCount).Error; err != nil {
		return err
	}
	if aboutCount == 0 {
		about := models.AboutSection{
			Overline: "About Us",
			Title:    "Technology for modern public management",
			Subtitle: "We build cloud tools that help institutions collect better, serve faster and go digital.",
		}
		if err := db.Create(&about).Error; err != nil {
			return err
		}
		fmt.Println("Default about section created.")
	}

	var statCount int64
	if err := db.Model(&models.Statistic{}).Count(&statCount).Error; err != nil {
		return err
	}
	if statCount == 0 {
		stats := []models.Statistic{
			{Label: "Cities served", Value: "120+", Order: 1, IsActive: true},
			{Label: "Users", Value: "35k", Order: 2, IsActive: true},
			{Label: "Uptime", Value: "99.9%", Order: 3, IsActive: true},
		}
		if err := db.Create(&stats).Error; err != nil {
			return err
		}
		fmt.Printf("%d default statistics created.\n", len(stats))
	}

	var solutionCount int64
	if err := db.Model(&models.Solution{}).Count(&solutionCount).Error; err != nil {
		return err
	}
	if solutionCount == 0 {
		solutions := []models.Solution{
			{Title: "Revenue management", Description: "Collection and billing in the cloud.", Icon: "chart", Order: 1, IsActive: true},
			{Title: "Citizen services", Description: "Digital front desk for public services.", Icon: "users", Order: 2, IsActive: true},
		}
		if err := db.Create(&solutions).Error; err != nil {
			return err
		}
		fmt.Printf("%d default solutions created.\n", len(solutions))
	}

	return nil
}

func init() {
	SeedCmd.Flags().StringVar(&seedAdminUser, "admin", "admin", "username of the admin account to create")
	cmd.RootCmd.AddCommand(SeedCmd)
}
