package service

import (
	"GiftHunt/internal/model"
	"GiftHunt/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// AdminService — администратор вишлиста. Выдаётся только через принятие приглашения.
type AdminService struct {
	repos  *repo.Repositories
	acc    access
	logger *zap.SugaredLogger
}

func NewAdminService(repos *repo.Repositories, logger *zap.SugaredLogger) *AdminService {
	return &AdminService{repos: repos, acc: access{repos: repos}, logger: logger}
}

// Get возвращает администратора вишлиста с профилем. Только владелец.
func (s *AdminService) Get(ctx context.Context, userID int64, wishlistID string) (*AdminView, error) {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleOwner)
	if err != nil {
		return nil, err
	}
	admin, err := s.repos.Admins.GetByWishlist(ctx, w.ID)
	if repo.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load admin: %w", err)
	}
	u, err := s.repos.Users.GetUserByID(ctx, admin.AdminID)
	if err != nil && !repo.IsNotFound(err) {
		return nil, fmt.Errorf("load admin profile: %w", err)
	}
	return adminView(admin, u), nil
}

// Revoke отзывает доступ администратора. Порядок шагов:
// ссылки для гостей (не критично), строка администратора, его приглашения (не критично).
// Возвращает, были ли у вишлиста ссылки для гостей.
func (s *AdminService) Revoke(ctx context.Context, userID int64, wishlistID string, adminUserID int64) (bool, error) {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleOwner)
	if err != nil {
		return false, err
	}
	admin, err := s.repos.Admins.GetByWishlist(ctx, w.ID)
	if repo.IsNotFound(err) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("load admin: %w", err)
	}
	if admin.AdminID != adminUserID {
		return false, ErrNotFound
	}

	var adminUser *model.User
	if u, err := s.repos.Users.GetUserByID(ctx, adminUserID); err == nil {
		adminUser = u
	} else {
		s.logger.Warnw("load admin profile", "user_id", adminUserID, "error", err)
	}

	hadShareLinks := false
	if shared, err := s.repos.ShareLinks.ExistsForWishlist(ctx, w.ID); err == nil {
		hadShareLinks = shared
	}

	steps := []step{
		{name: "delete_share_links", run: func(ctx context.Context) error {
			n, err := s.repos.ShareLinks.DeleteByWishlist(ctx, w.ID)
			if n > 0 {
				hadShareLinks = true
			}
			return err
		}},
		{name: "delete_admin", required: true, run: func(ctx context.Context) error {
			err := s.repos.Admins.Delete(ctx, w.ID, adminUserID)
			if repo.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}},
		{name: "delete_admin_invitations", run: func(ctx context.Context) error {
			if adminUser == nil {
				return errors.New("admin profile unavailable")
			}
			_, err := s.repos.Invitations.DeleteByEmail(ctx, w.ID, adminUser.Email)
			return err
		}},
	}
	if err := runSteps(ctx, s.logger, "revoke admin", steps); err != nil {
		return hadShareLinks, err
	}

	s.logger.Infow("admin revoked", "wishlist_id", w.ID, "admin_id", adminUserID, "had_share_links", hadShareLinks)
	return hadShareLinks, nil
}
