package repo

import (
	"GiftHunt/internal/model"
	"context"

	"gorm.io/gorm"
)

// ShareLinkRepository — публичные ссылки вишлистов.
type ShareLinkRepository interface {
	Create(ctx context.Context, l *model.ShareLink) error
	GetByToken(ctx context.Context, token string) (*model.ShareLink, error)
	// FirstByWishlist возвращает самую раннюю ссылку вишлиста.
	FirstByWishlist(ctx context.Context, wishlistID string) (*model.ShareLink, error)
	ExistsForWishlist(ctx context.Context, wishlistID string) (bool, error)
	// DeleteByWishlist удаляет все ссылки вишлиста и возвращает их количество.
	DeleteByWishlist(ctx context.Context, wishlistID string) (int64, error)
}

type shareLinkRepo struct {
	db *gorm.DB
}

// NewShareLinkRepository создаёт реализацию репозитория для ShareLink.
func NewShareLinkRepository(db *gorm.DB) ShareLinkRepository {
	return &shareLinkRepo{db: db}
}

func (r *shareLinkRepo) Create(ctx context.Context, l *model.ShareLink) error {
	if l.ID == "" {
		l.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *shareLinkRepo) GetByToken(ctx context.Context, token string) (*model.ShareLink, error) {
	var l model.ShareLink
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *shareLinkRepo) FirstByWishlist(ctx context.Context, wishlistID string) (*model.ShareLink, error) {
	var l model.ShareLink
	err := r.db.WithContext(ctx).
		Where("wishlist_id = ?", wishlistID).
		Order("created_at ASC").
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *shareLinkRepo) ExistsForWishlist(ctx context.Context, wishlistID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ShareLink{}).Where("wishlist_id = ?", wishlistID).Count(&n).Error
	return n > 0, err
}

func (r *shareLinkRepo) DeleteByWishlist(ctx context.Context, wishlistID string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("wishlist_id = ?", wishlistID).Delete(&model.ShareLink{})
	return tx.RowsAffected, tx.Error
}
