package model

import "time"

// MaxPriority — верхняя граница приоритета подарка (0..3).
const MaxPriority = 3

// WishlistItem — серверная модель подарка в вишлисте.
type WishlistItem struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	WishlistID string `gorm:"type:uuid;not null;index"` // ссылка на wishlists.id

	Title       string `gorm:"not null"`
	Description *string
	Link        *string
	URL         *string // картинка товара
	PriceRange  *string
	Priority    *int

	// Эксклюзивная бронь обычного подарка
	IsTaken     bool `gorm:"not null;default:false"`
	TakenByName *string
	TakenAt     *time.Time

	// Подарочный сертификат: никогда не бронируется целиком, копит ItemClaim
	IsGiftcard bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ItemClaim — неэксклюзивная бронь подарочного сертификата.
type ItemClaim struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	ItemID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_item_claims_item_claimer"`
	ClaimerName string    `gorm:"not null;uniqueIndex:idx_item_claims_item_claimer"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
