package main

import (
	"gorm.io/gorm"

	"github.com/atech/cms/internal/repository"
)

// runMigrations creates or updates every content table.
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(repository.Models()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't express.
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addListIndexes,
	}
	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}
	return nil
}

// addListIndexes backs the newest-first ordering of the list queries.
func addListIndexes(db *gorm.DB) error {
	for _, table := range []string{"projects", "services", "testimonials", "team_members"} {
		if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_` + table + `_created_at ON ` + table + ` (created_at DESC, id DESC)`).Error; err != nil {
			return err
		}
	}
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_blog_posts_published_at
		ON blog_posts (published_at DESC NULLS LAST, created_at DESC)
	`).Error
}
