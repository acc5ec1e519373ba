package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

const tokenBytes = 32

// newToken возвращает 32 случайных байта в hex.
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// checkIDs пропускает только канонические uuid, на остальное отвечает ErrNotFound.
func checkIDs(ids ...string) error {
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil || u.String() != id {
			return ErrNotFound
		}
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalidInput("email is not valid")
	}
	return email, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
