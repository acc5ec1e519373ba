package service

import (
	"GiftHunt/internal/model"
	"GiftHunt/internal/repo"
	"context"
	"fmt"
)

// Role — отношение пользователя к вишлисту.
type Role string

const (
	RoleNone  Role = ""
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
)

// access — общие проверки прав поверх репозиториев.
type access struct {
	repos *repo.Repositories
}

func (a access) wishlist(ctx context.Context, id string) (*model.Wishlist, error) {
	if err := checkIDs(id); err != nil {
		return nil, err
	}
	w, err := a.repos.Wishlists.GetByID(ctx, id)
	if repo.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return w, nil
}

// role определяет роль пользователя; без роли вишлист для него не существует.
func (a access) role(ctx context.Context, w *model.Wishlist, userID int64) (Role, error) {
	if userID != 0 && w.CreatorID == userID {
		return RoleOwner, nil
	}
	admin, err := a.repos.Admins.GetByWishlist(ctx, w.ID)
	if repo.IsNotFound(err) {
		return RoleNone, nil
	}
	if err != nil {
		return RoleNone, fmt.Errorf("load admin: %w", err)
	}
	if userID != 0 && admin.AdminID == userID {
		return RoleAdmin, nil
	}
	return RoleNone, nil
}

// require загружает вишлист и проверяет, что у пользователя одна из ролей.
// Посторонний получает ErrNotFound, участник с другой ролью получает ErrForbidden.
func (a access) require(ctx context.Context, wishlistID string, userID int64, allowed ...Role) (*model.Wishlist, Role, error) {
	w, err := a.wishlist(ctx, wishlistID)
	if err != nil {
		return nil, RoleNone, err
	}
	r, err := a.role(ctx, w, userID)
	if err != nil {
		return nil, RoleNone, err
	}
	if r == RoleNone {
		return nil, RoleNone, ErrNotFound
	}
	for _, ok := range allowed {
		if r == ok {
			return w, r, nil
		}
	}
	return nil, r, ErrForbidden
}

// editingRestricted — владелец не редактирует подарки, пока есть ссылка для гостей.
func (a access) editingRestricted(ctx context.Context, wishlistID string) (bool, error) {
	shared, err := a.repos.ShareLinks.ExistsForWishlist(ctx, wishlistID)
	if err != nil {
		return false, fmt.Errorf("check share links: %w", err)
	}
	return shared, nil
}

func (a access) displayName(ctx context.Context, userID int64) (string, error) {
	u, err := a.repos.Users.GetUserByID(ctx, userID)
	if repo.IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.DisplayName(), nil
}
