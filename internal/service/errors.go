package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrAlreadyPending    = errors.New("a pending invitation already exists")
	ErrAdminExists       = fmt.Errorf("wishlist admin: %w", ErrAlreadyExists)
	ErrExpired           = errors.New("expired")
	ErrAlreadyAccepted   = errors.New("invitation already accepted")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrAlreadyClaimed    = errors.New("already claimed by this name")
	ErrAlreadyTaken      = errors.New("item already taken")
	ErrInvalidOrExpired  = errors.New("share link is invalid or expired")
	ErrEditingRestricted = errors.New("editing is restricted while the wishlist is shared")
	ErrInvalidInput      = errors.New("invalid input")
	ErrLoginTaken        = errors.New("login already taken")
)

// ErrInvalidCredentials — неверная пара логин/пароль.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
