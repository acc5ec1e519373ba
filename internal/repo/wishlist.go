package repo

import (
	"GiftHunt/internal/model"
	"context"

	"gorm.io/gorm"
)

// WishlistRepository — доступ к вишлистам.
type WishlistRepository interface {
	Create(ctx context.Context, w *model.Wishlist) error
	// GetByID возвращает gorm.ErrRecordNotFound, если вишлиста нет.
	GetByID(ctx context.Context, id string) (*model.Wishlist, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.Wishlist, error)
	// ListAdministered — вишлисты, где пользователь назначен администратором.
	ListAdministered(ctx context.Context, adminID int64) ([]model.Wishlist, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	// Delete удаляет вишлист вместе со всеми зависимыми записями в одной транзакции.
	Delete(ctx context.Context, id string) error
}

type wishlistRepo struct {
	db *gorm.DB
}

// NewWishlistRepository создаёт реализацию репозитория для Wishlist.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepo{db: db}
}

func (r *wishlistRepo) Create(ctx context.Context, w *model.Wishlist) error {
	if w.ID == "" {
		w.ID = newID()
	}
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *wishlistRepo) GetByID(ctx context.Context, id string) (*model.Wishlist, error) {
	var w model.Wishlist
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *wishlistRepo) ListByCreator(ctx context.Context, creatorID int64) ([]model.Wishlist, error) {
	var out []model.Wishlist
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *wishlistRepo) ListAdministered(ctx context.Context, adminID int64) ([]model.Wishlist, error) {
	var out []model.Wishlist
	err := r.db.WithContext(ctx).
		Joins("JOIN wishlist_admins ON wishlist_admins.wishlist_id = wishlists.id").
		Where("wishlist_admins.admin_id = ?", adminID).
		Order("wishlists.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *wishlistRepo) Update(ctx context.Context, id string, updates map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&model.Wishlist{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *wishlistRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemIDs []string
		if err := tx.Model(&model.WishlistItem{}).Where("wishlist_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
			return err
		}
		if len(itemIDs) > 0 {
			if err := tx.Where("item_id IN ?", itemIDs).Delete(&model.ItemClaim{}).Error; err != nil {
				return err
			}
		}
		// сначала зависимые записи, затем сам вишлист
		for _, dep := range []any{
			&model.WishlistItem{},
			&model.ShareLink{},
			&model.AdminInvitation{},
			&model.WishlistAdmin{},
		} {
			if err := tx.Where("wishlist_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&model.Wishlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
