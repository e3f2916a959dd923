package testutils

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"smartattend/internal/config"
	"smartattend/internal/db"
	"smartattend/internal/model"
)

var dbSeq atomic.Int64

// SetupTestDB opens a private in-memory SQLite database with every table
// migrated. It is closed when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	gormDB, err := db.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          dsn,
		LogLevel:     "silent",
		MaxOpenConns: 1,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close(gormDB)
	})

	return gormDB
}

// SeedClassroom inserts a classroom and returns it.
func SeedClassroom(t *testing.T, gormDB *gorm.DB, name, qr string) *model.Classroom {
	t.Helper()

	classroom := &model.Classroom{Name: name, StaticQRCode: qr}
	if err := gormDB.Create(classroom).Error; err != nil {
		t.Fatalf("Failed to seed classroom: %v", err)
	}
	return classroom
}
