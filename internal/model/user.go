package model

import "time"

// User — профиль пользователя. Создаётся при регистрации, не удаляется.
type User struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"`
	Email    string  `gorm:"uniqueIndex;not null"` // используется как логин
	Password string  `gorm:"not null"`             // bcrypt-хеш
	FullName *string // отображаемое имя

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// DisplayName возвращает имя для показа другим пользователям.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}
