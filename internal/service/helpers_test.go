package service

import (
	"GiftHunt/internal/notify"
	"GiftHunt/internal/repo"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendInvitation(ctx context.Context, msg notify.Invitation) error {
	return m.Called(ctx, msg).Error(0)
}

// testEnv — все сервисы поверх одной in-memory базы.
type testEnv struct {
	db          *gorm.DB
	repos       *repo.Repositories
	notifier    *mockNotifier
	users       *UserService
	wishlists   *WishlistService
	invitations *InvitationService
	admins      *AdminService
	shares      *ShareLinkService
	claims      *ClaimService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvOn(t, newTestDB(t))
}

// newEnvOn собирает сервисы поверх переданной базы.
func newEnvOn(t *testing.T, db *gorm.DB) *testEnv {
	t.Helper()
	repos := repo.NewRepositories(db)
	log := zap.NewNop().Sugar()
	n := new(mockNotifier)
	n.On("SendInvitation", mock.Anything, mock.Anything).Return(nil).Maybe()

	return &testEnv{
		db:          db,
		repos:       repos,
		notifier:    n,
		users:       NewUserService(repos.Users),
		wishlists:   NewWishlistService(repos, "http://app", log),
		invitations: NewInvitationService(repos, n, "http://app", log),
		admins:      NewAdminService(repos, log),
		shares:      NewShareLinkService(repos, 0, "http://app", log),
		claims:      NewClaimService(repos, log),
	}
}

// setNow подменяет часы во всех сервисах.
func (e *testEnv) setNow(now time.Time) {
	clock := func() time.Time { return now }
	e.wishlists.now = clock
	e.invitations.now = clock
	e.shares.now = clock
	e.claims.now = clock
}

func (e *testEnv) register(t *testing.T, email string) int64 {
	t.Helper()
	u, err := e.users.Register(context.Background(), email, "secret", "")
	require.NoError(t, err)
	return u.ID
}

func (e *testEnv) wishlist(t *testing.T, owner int64, title string) string {
	t.Helper()
	v, err := e.wishlists.Create(context.Background(), owner, WishlistInput{Title: &title})
	require.NoError(t, err)
	return v.ID
}

// withAdmin приглашает и принимает администратора, возвращает его id.
func (e *testEnv) withAdmin(t *testing.T, owner int64, wishlistID, email string) int64 {
	t.Helper()
	ctx := context.Background()
	adminID := e.register(t, email)
	inv, err := e.invitations.Create(ctx, owner, wishlistID, email)
	require.NoError(t, err)
	_, err = e.invitations.Accept(ctx, tokenFromLink(inv.Link), adminID)
	require.NoError(t, err)
	return adminID
}

func tokenFromLink(link string) string {
	const prefix = "http://app/invite/"
	return link[len(prefix):]
}

func ptr[T any](v T) *T {
	return &v
}
