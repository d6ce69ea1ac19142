package database

import (
	"fmt"

	"todo-list-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at path and runs migrations.
// The returned handle is the only reference; callers inject it where needed
// instead of reaching for a package-level global.
func Open(path string) (*gorm.DB, error) {
	// glebarez/sqlite is a pure Go implementation (no CGO required).
	// foreign_keys must be switched on per connection for the
	// task -> subtask ON DELETE CASCADE to fire.
	dsn := path + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Subtask{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}
