package model

import "time"

// Wishlist — вишлист, принадлежит ровно одному создателю.
// Флаги Enable* управляют только отображением необязательных полей подарков.
type Wishlist struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatorID int64  `gorm:"not null;index"` // ссылка на users.id

	Title       string `gorm:"not null"`
	Description *string

	EnableLinks    bool `gorm:"not null"`
	EnablePrice    bool `gorm:"not null"`
	EnablePriority bool `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
