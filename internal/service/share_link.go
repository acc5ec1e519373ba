package service

import (
	"GiftHunt/internal/metrics"
	"GiftHunt/internal/model"
	"GiftHunt/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ShareLinkService — ссылки для гостей. Выпускает и отзывает их администратор.
type ShareLinkService struct {
	repos      *repo.Repositories
	acc        access
	ttl        time.Duration
	appBaseURL string
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// NewShareLinkService создаёт сервис; при ttl == 0 ссылки бессрочные.
func NewShareLinkService(repos *repo.Repositories, ttl time.Duration, appBaseURL string, logger *zap.SugaredLogger) *ShareLinkService {
	return &ShareLinkService{
		repos:      repos,
		acc:        access{repos: repos},
		ttl:        ttl,
		appBaseURL: appBaseURL,
		logger:     logger,
		now:        utcNow,
	}
}

func (s *ShareLinkService) view(l *model.ShareLink) *ShareLinkView {
	return &ShareLinkView{
		Token:      l.Token,
		URL:        joinURL(s.appBaseURL, "/share/"+l.Token),
		WishlistID: l.WishlistID,
		ExpiresAt:  l.ExpiresAt,
		CreatedAt:  l.CreatedAt,
	}
}

// GetOrCreate возвращает действующую ссылку или выпускает новую.
// Второй результат показывает, была ли ссылка создана сейчас.
func (s *ShareLinkService) GetOrCreate(ctx context.Context, userID int64, wishlistID string) (*ShareLinkView, bool, error) {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleAdmin)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	existing, err := s.repos.ShareLinks.FirstByWishlist(ctx, w.ID)
	switch {
	case err == nil && !existing.IsExpired(now):
		return s.view(existing), false, nil
	case err == nil:
		// истёкшая ссылка только мешает: владелец остаётся в режиме ограниченного редактирования
		if _, err := s.repos.ShareLinks.DeleteByWishlist(ctx, w.ID); err != nil {
			return nil, false, fmt.Errorf("drop expired share links: %w", err)
		}
	case !repo.IsNotFound(err):
		return nil, false, fmt.Errorf("load share link: %w", err)
	}

	token, err := newToken()
	if err != nil {
		return nil, false, err
	}
	l := &model.ShareLink{WishlistID: w.ID, Token: token, CreatedBy: userID}
	if s.ttl > 0 {
		exp := now.Add(s.ttl)
		l.ExpiresAt = &exp
	}
	if err := s.repos.ShareLinks.Create(ctx, l); err != nil {
		return nil, false, fmt.Errorf("create share link: %w", err)
	}
	metrics.ShareLinksCreated.Inc()
	s.logger.Infow("share link created", "wishlist_id", w.ID, "created_by", userID)
	return s.view(l), true, nil
}

// Delete отзывает все ссылки вишлиста и снимает ограничение редактирования с владельца.
func (s *ShareLinkService) Delete(ctx context.Context, userID int64, wishlistID string) error {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleAdmin)
	if err != nil {
		return err
	}
	n, err := s.repos.ShareLinks.DeleteByWishlist(ctx, w.ID)
	if err != nil {
		return fmt.Errorf("delete share links: %w", err)
	}
	s.logger.Infow("share links deleted", "wishlist_id", w.ID, "count", n)
	return nil
}

// Resolve открывает вишлист по токену без авторизации.
func (s *ShareLinkService) Resolve(ctx context.Context, token string) (*PublicWishlist, error) {
	_, w, err := s.acc.resolveShareToken(ctx, token, s.now())
	if err != nil {
		return nil, err
	}

	items, err := s.repos.Items.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	var giftcards []string
	for _, it := range items {
		if it.IsGiftcard {
			giftcards = append(giftcards, it.ID)
		}
	}
	counts, err := s.repos.Claims.CountByItems(ctx, giftcards)
	if err != nil {
		return nil, fmt.Errorf("count claims: %w", err)
	}

	creatorName, err := s.acc.displayName(ctx, w.CreatorID)
	if err != nil {
		s.logger.Warnw("load creator profile", "wishlist_id", w.ID, "error", err)
	}

	out := &PublicWishlist{
		ID:             w.ID,
		Title:          w.Title,
		Description:    w.Description,
		CreatorName:    creatorName,
		EnableLinks:    w.EnableLinks,
		EnablePrice:    w.EnablePrice,
		EnablePriority: w.EnablePriority,
		Items:          make([]PublicItem, 0, len(items)),
	}
	for i := range items {
		out.Items = append(out.Items, publicItem(w, &items[i], counts[items[i].ID]))
	}
	return out, nil
}

// resolveShareToken проверяет токен: для неизвестного ErrInvalidOrExpired+ErrNotFound,
// для истёкшего ErrInvalidOrExpired+ErrExpired.
func (a access) resolveShareToken(ctx context.Context, token string, now time.Time) (*model.ShareLink, *model.Wishlist, error) {
	if token == "" {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidOrExpired, ErrNotFound)
	}
	l, err := a.repos.ShareLinks.GetByToken(ctx, token)
	if repo.IsNotFound(err) {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidOrExpired, ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load share link: %w", err)
	}
	if l.IsExpired(now) {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidOrExpired, ErrExpired)
	}
	w, err := a.wishlist(ctx, l.WishlistID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidOrExpired, ErrNotFound)
		}
		return nil, nil, err
	}
	return l, w, nil
}
