package repo

import (
	"GiftHunt/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// InvitationRepository — приглашения администраторов.
type InvitationRepository interface {
	// Create возвращает ErrDuplicate при нарушении уникальности (wishlist_id, email) или токена.
	Create(ctx context.Context, inv *model.AdminInvitation) error
	GetByID(ctx context.Context, id string) (*model.AdminInvitation, error)
	GetByToken(ctx context.Context, token string) (*model.AdminInvitation, error)
	// ListByWishlist — новые сначала.
	ListByWishlist(ctx context.Context, wishlistID string) ([]model.AdminInvitation, error)
	Delete(ctx context.Context, id string) error
	// DeleteExpired удаляет непринятые приглашения вишлиста, срок которых истёк к now.
	DeleteExpired(ctx context.Context, wishlistID string, now time.Time) (int64, error)
	DeleteByEmail(ctx context.Context, wishlistID, email string) (int64, error)

	// Accept атомарно помечает приглашение принятым и выдаёт доступ администратора.
	// ErrConflict — приглашение уже принято; ErrDuplicate — у вишлиста уже есть администратор.
	Accept(ctx context.Context, invitationID string, grant *model.WishlistAdmin) error
}

type invitationRepo struct {
	db *gorm.DB
}

// NewInvitationRepository создаёт реализацию репозитория для AdminInvitation.
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepo{db: db}
}

func (r *invitationRepo) Create(ctx context.Context, inv *model.AdminInvitation) error {
	if inv.ID == "" {
		inv.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *invitationRepo) GetByID(ctx context.Context, id string) (*model.AdminInvitation, error) {
	var inv model.AdminInvitation
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepo) GetByToken(ctx context.Context, token string) (*model.AdminInvitation, error) {
	var inv model.AdminInvitation
	if err := r.db.WithContext(ctx).Where("invitation_token = ?", token).First(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepo) ListByWishlist(ctx context.Context, wishlistID string) ([]model.AdminInvitation, error) {
	var out []model.AdminInvitation
	err := r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *invitationRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AdminInvitation{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *invitationRepo) DeleteExpired(ctx context.Context, wishlistID string, now time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("wishlist_id = ? AND accepted = ? AND expires_at <= ?", wishlistID, false, now).
		Delete(&model.AdminInvitation{})
	return tx.RowsAffected, tx.Error
}

func (r *invitationRepo) DeleteByEmail(ctx context.Context, wishlistID, email string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("wishlist_id = ? AND email = ?", wishlistID, email).
		Delete(&model.AdminInvitation{})
	return tx.RowsAffected, tx.Error
}

func (r *invitationRepo) Accept(ctx context.Context, invitationID string, grant *model.WishlistAdmin) error {
	if grant.ID == "" {
		grant.ID = newID()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.AdminInvitation{}).
			Where("id = ? AND accepted = ?", invitationID, false).
			Update("accepted", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		var existing int64
		if err := tx.Model(&model.WishlistAdmin{}).Where("wishlist_id = ?", grant.WishlistID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicate
		}
		if err := tx.Create(grant).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
		return nil
	})
}
