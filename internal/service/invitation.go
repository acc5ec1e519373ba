package service

import (
	"GiftHunt/internal/metrics"
	"GiftHunt/internal/model"
	"GiftHunt/internal/notify"
	"GiftHunt/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// InvitationTTL — срок жизни приглашения администратора.
	InvitationTTL = 7 * 24 * time.Hour
	notifyTimeout = 15 * time.Second
)

// Notifier отправляет письмо с приглашением.
type Notifier interface {
	SendInvitation(ctx context.Context, msg notify.Invitation) error
}

// InvitationService — приглашения администратора: создание, просмотр, принятие, удаление.
type InvitationService struct {
	repos      *repo.Repositories
	acc        access
	notifier   Notifier
	appBaseURL string
	logger     *zap.SugaredLogger
	now        func() time.Time
}

func NewInvitationService(repos *repo.Repositories, notifier Notifier, appBaseURL string, logger *zap.SugaredLogger) *InvitationService {
	return &InvitationService{
		repos:      repos,
		acc:        access{repos: repos},
		notifier:   notifier,
		appBaseURL: appBaseURL,
		logger:     logger,
		now:        utcNow,
	}
}

func inviteLink(base, token string) string {
	return joinURL(base, "/invite/"+token)
}

// Create приглашает email в администраторы вишлиста. Только владелец.
// Письмо отправляется после вставки; его ошибка не отменяет приглашение.
func (s *InvitationService) Create(ctx context.Context, userID int64, wishlistID, email string) (*InvitationView, error) {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleOwner)
	if err != nil {
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	inviter, err := s.repos.Users.GetUserByID(ctx, userID)
	if err != nil && !repo.IsNotFound(err) {
		return nil, fmt.Errorf("load inviter: %w", err)
	}
	if inviter != nil && inviter.Email == email {
		return nil, invalidInput("cannot invite yourself")
	}

	_, err = s.repos.Admins.GetByWishlist(ctx, w.ID)
	if err == nil {
		return nil, ErrAdminExists
	}
	if !repo.IsNotFound(err) {
		return nil, fmt.Errorf("load admin: %w", err)
	}

	now := s.now()
	if n, err := s.repos.Invitations.DeleteExpired(ctx, w.ID, now); err != nil {
		return nil, fmt.Errorf("purge expired invitations: %w", err)
	} else if n > 0 {
		s.logger.Infow("expired invitations purged", "wishlist_id", w.ID, "count", n)
	}

	existing, err := s.repos.Invitations.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	for i := range existing {
		inv := &existing[i]
		if inv.IsPending(now) {
			return nil, ErrAlreadyPending
		}
		// принятое приглашение без администратора осталось после неудачной очистки при отзыве
		if inv.Accepted && inv.Email == email {
			if _, err := s.repos.Invitations.DeleteByEmail(ctx, w.ID, email); err != nil {
				return nil, fmt.Errorf("remove stale invitation: %w", err)
			}
		}
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}
	inv := &model.AdminInvitation{
		WishlistID:      w.ID,
		Email:           email,
		InvitationToken: token,
		InvitedBy:       userID,
		ExpiresAt:       now.Add(InvitationTTL),
	}
	if err := s.repos.Invitations.Create(ctx, inv); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrAlreadyPending
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	metrics.InvitationsCreated.Inc()
	s.logger.Infow("invitation created", "wishlist_id", w.ID, "invitation_id", inv.ID, "email", email)

	link := inviteLink(s.appBaseURL, token)
	s.sendEmail(ctx, notify.Invitation{
		To:             email,
		InvitationLink: link,
		WishlistTitle:  w.Title,
		InviterName:    inviter.DisplayName(),
	})
	return invitationView(inv, link, now), nil
}

func (s *InvitationService) sendEmail(ctx context.Context, msg notify.Invitation) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.SendInvitation(ctx, msg); err != nil {
		metrics.SideEffectFailures.WithLabelValues("invitation_email").Inc()
		s.logger.Warnw("invitation email not sent", "to", msg.To, "error", err)
	}
}

// Preview показывает приглашение по токену. При userID == 0 просмотр анонимный.
// Вишлист, пригласивший и текущий пользователь читаются параллельно.
func (s *InvitationService) Preview(ctx context.Context, token string, userID int64) (*InvitationPreview, error) {
	inv, err := s.repos.Invitations.GetByToken(ctx, token)
	if repo.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load invitation: %w", err)
	}

	var (
		w       *model.Wishlist
		inviter *model.User
		current *model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		w, err = s.acc.wishlist(gctx, inv.WishlistID)
		return err
	})
	g.Go(func() error {
		u, err := s.repos.Users.GetUserByID(gctx, inv.InvitedBy)
		if err != nil && !repo.IsNotFound(err) {
			return fmt.Errorf("load inviter: %w", err)
		}
		inviter = u
		return nil
	})
	if userID != 0 {
		g.Go(func() error {
			u, err := s.repos.Users.GetUserByID(gctx, userID)
			if err != nil && !repo.IsNotFound(err) {
				return fmt.Errorf("load current user: %w", err)
			}
			current = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	p := &InvitationPreview{
		WishlistID:    w.ID,
		WishlistTitle: w.Title,
		InviterName:   inviter.DisplayName(),
		Email:         inv.Email,
		ExpiresAt:     inv.ExpiresAt,
		Accepted:      inv.Accepted,
		Expired:       !inv.Accepted && inv.IsExpired(now),
	}
	if current != nil {
		p.CurrentUserEmail = &current.Email
	}
	return p, nil
}

// Accept принимает приглашение: отметка и выдача доступа в одной транзакции.
func (s *InvitationService) Accept(ctx context.Context, token string, userID int64) (*AdminView, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	inv, err := s.repos.Invitations.GetByToken(ctx, token)
	if repo.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load invitation: %w", err)
	}
	if inv.Accepted {
		return nil, ErrAlreadyAccepted
	}
	if inv.IsExpired(s.now()) {
		return nil, ErrExpired
	}

	w, err := s.acc.wishlist(ctx, inv.WishlistID)
	if err != nil {
		return nil, err
	}
	if w.CreatorID == userID {
		return nil, ErrForbidden
	}

	grant := &model.WishlistAdmin{WishlistID: w.ID, AdminID: userID, InvitedBy: inv.InvitedBy}
	err = s.repos.Invitations.Accept(ctx, inv.ID, grant)
	switch {
	case errors.Is(err, repo.ErrConflict):
		return nil, ErrAlreadyAccepted
	case errors.Is(err, repo.ErrDuplicate):
		return nil, ErrAdminExists
	case repo.IsNotFound(err):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("accept invitation: %w", err)
	}

	metrics.InvitationsAccepted.Inc()
	s.logger.Infow("invitation accepted", "wishlist_id", w.ID, "invitation_id", inv.ID, "admin_id", userID)

	u, err := s.repos.Users.GetUserByID(ctx, userID)
	if err != nil && !repo.IsNotFound(err) {
		s.logger.Warnw("load admin profile", "user_id", userID, "error", err)
	}
	return adminView(grant, u), nil
}

// Remove удаляет ожидающее приглашение. Только владелец.
func (s *InvitationService) Remove(ctx context.Context, userID int64, invitationID string) error {
	if err := checkIDs(invitationID); err != nil {
		return err
	}
	inv, err := s.repos.Invitations.GetByID(ctx, invitationID)
	if repo.IsNotFound(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load invitation: %w", err)
	}
	if _, _, err := s.acc.require(ctx, inv.WishlistID, userID, RoleOwner); err != nil {
		return err
	}
	if inv.Accepted {
		return ErrAlreadyAccepted
	}
	if err := s.repos.Invitations.Delete(ctx, inv.ID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

// List — приглашения вишлиста, новые первыми. Только владелец.
func (s *InvitationService) List(ctx context.Context, userID int64, wishlistID string) ([]InvitationView, error) {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleOwner)
	if err != nil {
		return nil, err
	}
	invs, err := s.repos.Invitations.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	now := s.now()
	out := make([]InvitationView, 0, len(invs))
	for i := range invs {
		out = append(out, *invitationView(&invs[i], inviteLink(s.appBaseURL, invs[i].InvitationToken), now))
	}
	return out, nil
}
