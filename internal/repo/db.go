package repo

import (
	"GiftHunt/internal/model"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

var (
	// ErrDuplicate — нарушение уникального индекса.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConflict — условное обновление не затронуло ни одной строки.
	ErrConflict = errors.New("conditional update affected no rows")
)

// DefaultSQLitePath используется, если строка подключения не задана.
const DefaultSQLitePath = "gifthunt.db"

// InitDB открывает БД и прогоняет миграции.
// postgres-DSN ("postgres://..." или "host=...") идёт в postgres, всё остальное считается путём sqlite.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт/обновляет схему для всех моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Wishlist{},
		&model.WishlistItem{},
		&model.ItemClaim{},
		&model.AdminInvitation{},
		&model.WishlistAdmin{},
		&model.ShareLink{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if isPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	if dsn == "" {
		dsn = DefaultSQLitePath
	}
	// modernc.org/sqlite регистрирует драйвер "sqlite" (без cgo)
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsNotFound — обёртка над gorm.ErrRecordNotFound для слоя сервиса.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func newID() string {
	return uuid.NewString()
}
