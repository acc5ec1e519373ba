package repo

import (
	"GiftHunt/internal/model"
	"context"

	"gorm.io/gorm"
)

// AdminRepository — выданные доступы администраторов.
// Создание происходит только через InvitationRepository.Accept.
type AdminRepository interface {
	GetByWishlist(ctx context.Context, wishlistID string) (*model.WishlistAdmin, error)
	Delete(ctx context.Context, wishlistID string, adminID int64) error
}

type adminRepo struct {
	db *gorm.DB
}

// NewAdminRepository создаёт реализацию репозитория для WishlistAdmin.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) GetByWishlist(ctx context.Context, wishlistID string) (*model.WishlistAdmin, error) {
	var a model.WishlistAdmin
	if err := r.db.WithContext(ctx).Where("wishlist_id = ?", wishlistID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *adminRepo) Delete(ctx context.Context, wishlistID string, adminID int64) error {
	tx := r.db.WithContext(ctx).
		Where("wishlist_id = ? AND admin_id = ?", wishlistID, adminID).
		Delete(&model.WishlistAdmin{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
