package service

import (
	"GiftHunt/internal/metrics"
	"GiftHunt/internal/model"
	"GiftHunt/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ClaimService — бронирование подарков гостями и управление бронями администратором.
type ClaimService struct {
	repos  *repo.Repositories
	acc    access
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewClaimService(repos *repo.Repositories, logger *zap.SugaredLogger) *ClaimService {
	return &ClaimService{repos: repos, acc: access{repos: repos}, logger: logger, now: utcNow}
}

// ClaimItem бронирует подарок по ссылке для гостей.
// Обычный подарок бронируется один раз, сертификат можно брать по разу на каждое имя.
func (s *ClaimService) ClaimItem(ctx context.Context, token, itemID, claimerName string) (*ClaimResult, error) {
	now := s.now()
	_, w, err := s.acc.resolveShareToken(ctx, token, now)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(claimerName)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return nil, invalidInput("name is too long")
	}

	if err := checkIDs(itemID); err != nil {
		return nil, err
	}
	it, err := s.repos.Items.GetByID(ctx, w.ID, itemID)
	if repo.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}

	if !it.IsGiftcard {
		err := s.repos.Items.MarkTaken(ctx, w.ID, it.ID, name, now)
		if errors.Is(err, repo.ErrConflict) {
			return nil, ErrAlreadyTaken
		}
		if err != nil {
			return nil, fmt.Errorf("mark item taken: %w", err)
		}
		metrics.Claims.WithLabelValues("regular").Inc()
		return &ClaimResult{ItemID: it.ID, IsTaken: true}, nil
	}

	created, err := s.repos.Claims.CreateIfAbsent(ctx, &model.ItemClaim{ItemID: it.ID, ClaimerName: name})
	if err != nil {
		return nil, fmt.Errorf("create claim: %w", err)
	}
	if !created {
		return nil, ErrAlreadyClaimed
	}
	metrics.Claims.WithLabelValues("giftcard").Inc()

	count, err := s.repos.Claims.CountByItem(ctx, it.ID)
	if err != nil {
		return nil, fmt.Errorf("count claims: %w", err)
	}
	return &ClaimResult{ItemID: it.ID, IsGiftcard: true, ClaimCount: count}, nil
}

// Untake снимает бронь обычного подарка. Только администратор.
func (s *ClaimService) Untake(ctx context.Context, userID int64, wishlistID, itemID string) error {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleAdmin)
	if err != nil {
		return err
	}
	if err := checkIDs(itemID); err != nil {
		return err
	}
	if err := s.repos.Items.Untake(ctx, w.ID, itemID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("untake item: %w", err)
	}
	s.logger.Infow("item untaken", "wishlist_id", w.ID, "item_id", itemID, "admin_id", userID)
	return nil
}

// RemoveClaim удаляет одну бронь сертификата. Только администратор.
func (s *ClaimService) RemoveClaim(ctx context.Context, userID int64, wishlistID, itemID, claimID string) error {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleAdmin)
	if err != nil {
		return err
	}
	if err := checkIDs(itemID, claimID); err != nil {
		return err
	}
	if _, err := s.repos.Items.GetByID(ctx, w.ID, itemID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("load item: %w", err)
	}
	if err := s.repos.Claims.Delete(ctx, itemID, claimID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete claim: %w", err)
	}
	return nil
}
