package service

import (
	"GiftHunt/internal/repo"
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newFileDB — sqlite-файл с пулом из нескольких соединений, чтобы запросы шли параллельно.
func newFileDB(t *testing.T, conns int) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "gifthunt.db") +
		"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)"
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestClaimService_ConcurrentRegularClaim(t *testing.T) {
	const guests = 20
	e := newEnvOn(t, newFileDB(t, 8))
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")
	book, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Book")})
	require.NoError(t, err)
	adminID := e.withAdmin(t, owner, id, "admin@x.com")
	link, _, err := e.shares.GetOrCreate(ctx, adminID, id)
	require.NoError(t, err)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, guests)
	)
	for i := 0; i < guests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = e.claims.ClaimItem(ctx, link.Token, book.ID, "Guest "+string(rune('A'+i)))
		}(i)
	}
	close(start)
	wg.Wait()

	won, taken := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrAlreadyTaken):
			taken++
		default:
			t.Errorf("unexpected claim error: %v", err)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, guests-1, taken)

	stored, err := e.repos.Items.GetByID(ctx, id, book.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsTaken)
	require.NotNil(t, stored.TakenByName)
}
