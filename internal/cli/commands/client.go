package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"GiftHunt/internal/cli/api"
	fsrepo "GiftHunt/internal/cli/repo/fs"
	"GiftHunt/internal/config"
)

// ServerError — ответ сервера с неуспешным статусом.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server status %d", e.Status)
	}
	return fmt.Sprintf("server status %d: %s", e.Status, e.Message)
}

func tokenStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.AuthFSStore{Path: cfg.TokenFile}
}

func endpoint(cfg *config.Config, path string) string {
	return strings.TrimRight(cfg.ServerURL, "/") + path
}

// call выполняет запрос к API и раскладывает JSON-ответ в out.
// withAuth — подставить сохранённый токен; без него команда не выполняется.
func call(ctx context.Context, cfg *config.Config, method, path string, payload any, withAuth bool, out any) (*http.Response, error) {
	var token string
	if withAuth {
		t, err := tokenStore(cfg).Load()
		if errors.Is(err, fsrepo.ErrNoToken) {
			return nil, errors.New("not logged in: run login or register first")
		}
		if err != nil {
			return nil, fmt.Errorf("loading auth: %w", err)
		}
		token = t
	}

	resp, body, err := api.DoJSON(ctx, method, endpoint(cfg, path), payload, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, &ServerError{Status: resp.StatusCode, Message: api.ErrorMessage(body)}
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp, fmt.Errorf("decode: %w", err)
		}
	}
	return resp, nil
}

// statusIs сообщает, что сервер ответил указанным статусом.
func statusIs(err error, status int) bool {
	var se *ServerError
	return errors.As(err, &se) && se.Status == status
}
