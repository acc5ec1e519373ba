package repo

import (
	"GiftHunt/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// ItemRepository — доступ к подаркам вишлиста.
// Все операции ограничены wishlistID, чтобы нельзя было адресовать чужой подарок.
type ItemRepository interface {
	Create(ctx context.Context, it *model.WishlistItem) error
	GetByID(ctx context.Context, wishlistID, id string) (*model.WishlistItem, error)
	// ListByWishlist возвращает подарки по возрастанию created_at.
	ListByWishlist(ctx context.Context, wishlistID string) ([]model.WishlistItem, error)
	Update(ctx context.Context, wishlistID, id string, updates map[string]any) error
	Delete(ctx context.Context, wishlistID, id string) error
	// ConvertToRegular применяет updates и удаляет брони сертификата в одной транзакции.
	ConvertToRegular(ctx context.Context, wishlistID, id string, updates map[string]any) error

	// MarkTaken бронирует подарок только если он ещё свободен.
	// Возвращает ErrConflict, если подарок уже забронирован (или не найден).
	MarkTaken(ctx context.Context, wishlistID, id, takenBy string, at time.Time) error
	// Untake снимает бронь.
	Untake(ctx context.Context, wishlistID, id string) error
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для WishlistItem.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.WishlistItem) error {
	if it.ID == "" {
		it.ID = newID()
	}
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) GetByID(ctx context.Context, wishlistID, id string) (*model.WishlistItem, error) {
	var it model.WishlistItem
	if err := r.db.WithContext(ctx).Where("id = ? AND wishlist_id = ?", id, wishlistID).First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) ListByWishlist(ctx context.Context, wishlistID string) ([]model.WishlistItem, error) {
	var out []model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *itemRepo) Update(ctx context.Context, wishlistID, id string, updates map[string]any) error {
	tx := r.db.WithContext(ctx).Model(&model.WishlistItem{}).
		Where("id = ? AND wishlist_id = ?", id, wishlistID).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, wishlistID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND wishlist_id = ?", id, wishlistID).Delete(&model.WishlistItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("item_id = ?", id).Delete(&model.ItemClaim{}).Error
	})
}

func (r *itemRepo) ConvertToRegular(ctx context.Context, wishlistID, id string, updates map[string]any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.WishlistItem{}).
			Where("id = ? AND wishlist_id = ?", id, wishlistID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("item_id = ?", id).Delete(&model.ItemClaim{}).Error
	})
}

func (r *itemRepo) MarkTaken(ctx context.Context, wishlistID, id, takenBy string, at time.Time) error {
	tx := r.db.WithContext(ctx).Model(&model.WishlistItem{}).
		Where("id = ? AND wishlist_id = ? AND is_taken = ?", id, wishlistID, false).
		Updates(map[string]any{
			"is_taken":      true,
			"taken_by_name": takenBy,
			"taken_at":      at,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *itemRepo) Untake(ctx context.Context, wishlistID, id string) error {
	return r.Update(ctx, wishlistID, id, map[string]any{
		"is_taken":      false,
		"taken_by_name": nil,
		"taken_at":      nil,
	})
}
