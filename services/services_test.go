package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB - 임시 디렉터리에 SQLite DB를 만들고 마이그레이션까지 수행
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	g, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("테스트 DB 열기 실패: %v", err)
	}
	if err := Migrate(g); err != nil {
		t.Fatalf("마이그레이션 실패: %v", err)
	}
	return g
}
