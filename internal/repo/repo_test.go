package repo

import (
	"GiftHunt/internal/model"
	"context"
	"testing"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория.
// У каждого теста своя именованная база, чтобы данные не пересекались.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// держим одно соединение открытым, иначе in-memory база исчезнет
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func mkWishlist(t *testing.T, db *gorm.DB, creatorID int64, title string) *model.Wishlist {
	t.Helper()
	w := &model.Wishlist{CreatorID: creatorID, Title: title, EnableLinks: true, EnablePrice: true, EnablePriority: true}
	if err := NewWishlistRepository(db).Create(context.Background(), w); err != nil {
		t.Fatalf("create wishlist: %v", err)
	}
	return w
}
