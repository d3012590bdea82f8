// Package testutil provides an isolated in-memory database per test.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/issuedeck-dev/issuedeck/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens a fresh shared-cache in-memory SQLite database named after
// the test and migrates the full schema. Foreign keys are enforced so the
// storage-level cascades behave like production.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Contributor{},
		&models.Issue{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return gdb
}
