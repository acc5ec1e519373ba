package repo

import "gorm.io/gorm"

// Repositories — набор всех репозиториев поверх одного подключения.
type Repositories struct {
	Users       UserRepository
	Wishlists   WishlistRepository
	Items       ItemRepository
	Claims      ClaimRepository
	Invitations InvitationRepository
	Admins      AdminRepository
	ShareLinks  ShareLinkRepository
}

// NewRepositories собирает gorm-реализации репозиториев.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Wishlists:   NewWishlistRepository(db),
		Items:       NewItemRepository(db),
		Claims:      NewClaimRepository(db),
		Invitations: NewInvitationRepository(db),
		Admins:      NewAdminRepository(db),
		ShareLinks:  NewShareLinkRepository(db),
	}
}
