package repo

import (
	"GiftHunt/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClaimRepository — брони подарочных сертификатов.
type ClaimRepository interface {
	// CreateIfAbsent пытается создать бронь. Если пара (item_id, claimer_name) уже есть, ничего не делает.
	// Возвращает created=true если запись была создана в этой операции.
	CreateIfAbsent(ctx context.Context, c *model.ItemClaim) (created bool, err error)

	CountByItem(ctx context.Context, itemID string) (int64, error)
	// CountByItems — количество броней по каждому подарку из списка.
	CountByItems(ctx context.Context, itemIDs []string) (map[string]int64, error)
	ListByItems(ctx context.Context, itemIDs []string) ([]model.ItemClaim, error)
	Delete(ctx context.Context, itemID, claimID string) error
}

type claimRepo struct {
	db *gorm.DB
}

// NewClaimRepository создаёт реализацию репозитория для ItemClaim.
func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepo{db: db}
}

func (r *claimRepo) CreateIfAbsent(ctx context.Context, c *model.ItemClaim) (bool, error) {
	if c.ID == "" {
		c.ID = newID()
	}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "claimer_name"}},
		DoNothing: true,
	}).Create(c)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return false, nil
		}
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *claimRepo) CountByItem(ctx context.Context, itemID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ItemClaim{}).Where("item_id = ?", itemID).Count(&n).Error
	return n, err
}

func (r *claimRepo) CountByItems(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		ItemID string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&model.ItemClaim{}).
		Select("item_id, COUNT(*) AS n").
		Where("item_id IN ?", itemIDs).
		Group("item_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ItemID] = row.N
	}
	return out, nil
}

func (r *claimRepo) ListByItems(ctx context.Context, itemIDs []string) ([]model.ItemClaim, error) {
	var out []model.ItemClaim
	if len(itemIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (r *claimRepo) Delete(ctx context.Context, itemID, claimID string) error {
	tx := r.db.WithContext(ctx).Where("id = ? AND item_id = ?", claimID, itemID).Delete(&model.ItemClaim{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
