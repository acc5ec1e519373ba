package model

import "time"

// AdminInvitation — приглашение стать администратором вишлиста.
// Жизненный цикл: pending -> accepted | expired (по времени) | удалено владельцем.
type AdminInvitation struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	WishlistID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_admin_invitations_wishlist_email"`
	Email           string    `gorm:"not null;uniqueIndex:idx_admin_invitations_wishlist_email"`
	InvitationToken string    `gorm:"not null;uniqueIndex"`
	InvitedBy       int64     `gorm:"not null"`
	Accepted        bool      `gorm:"not null;default:false"`
	ExpiresAt       time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsExpired сообщает, истёк ли срок приглашения на момент now.
func (i *AdminInvitation) IsExpired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// IsPending — не принято и не истекло.
func (i *AdminInvitation) IsPending(now time.Time) bool {
	return !i.Accepted && !i.IsExpired(now)
}

// WishlistAdmin — выданный доступ администратора. Не больше одного на вишлист.
type WishlistAdmin struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	WishlistID string    `gorm:"type:uuid;not null;uniqueIndex"`
	AdminID    int64     `gorm:"not null;index"` // ссылка на users.id
	InvitedBy  int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ShareLink — публичная ссылка для анонимного бронирования подарков.
type ShareLink struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	WishlistID string `gorm:"type:uuid;not null;index"`
	Token      string `gorm:"not null;uniqueIndex"`
	CreatedBy  int64  `gorm:"not null"`
	ExpiresAt  *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// IsExpired — ссылка без срока действия не истекает.
func (l *ShareLink) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && !now.Before(*l.ExpiresAt)
}
