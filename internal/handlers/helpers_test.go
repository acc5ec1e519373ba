package handlers_test

import (
	"GiftHunt/internal/config"
	"GiftHunt/internal/handlers"
	"GiftHunt/internal/linkmeta"
	"GiftHunt/internal/notify"
	"GiftHunt/internal/repo"
	"GiftHunt/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const testAppURL = "http://app"

type stubFetcher struct {
	meta *linkmeta.Metadata
	err  error
	got  string
}

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) (*linkmeta.Metadata, error) {
	s.got = rawURL
	return s.meta, s.err
}

type testApp struct {
	router  http.Handler
	cfg     *config.Config
	fetcher *stubFetcher
}

func newTestApp(t *testing.T) *testApp {
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

	log := zap.NewNop().Sugar()
	cfg := &config.Config{AuthSecret: "test-secret", AppBaseURL: testAppURL}
	// без отправителя нотификатор только пишет в лог
	notifier, err := notify.NewSESNotifier(context.Background(), notify.Options{}, log)
	require.NoError(t, err)

	repos := repo.NewRepositories(db)
	svc := handlers.Services{
		Users:       service.NewUserService(repos.Users),
		Wishlists:   service.NewWishlistService(repos, cfg.AppBaseURL, log),
		Invitations: service.NewInvitationService(repos, notifier, cfg.AppBaseURL, log),
		Admins:      service.NewAdminService(repos, log),
		ShareLinks:  service.NewShareLinkService(repos, 0, cfg.AppBaseURL, log),
		Claims:      service.NewClaimService(repos, log),
	}
	fetcher := &stubFetcher{}
	h := handlers.NewHandler(svc, fetcher, log, cfg)
	return &testApp{router: h.Router, cfg: cfg, fetcher: fetcher}
}

// do выполняет запрос; cookie == nil — анонимный клиент.
func (a *testApp) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// signUp регистрирует пользователя и возвращает его cookie и id.
func (a *testApp) signUp(t *testing.T, email string) (*http.Cookie, int64) {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/user/register", `{"email":"`+email+`","password":"secret"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var p service.Profile
	decode(t, rr, &p)
	for _, c := range rr.Result().Cookies() {
		if c.Name == "auth_token" {
			return c, p.ID
		}
	}
	t.Fatalf("auth_token cookie not set")
	return nil, 0
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}
