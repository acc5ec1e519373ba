package commands

import "time"

// Ответы API в том объёме, который нужен CLI.

type wishlistSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Role  string `json:"role"`
}

type wishlistDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type itemDTO struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type invitationDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Link      string    `json:"link"`
	ExpiresAt time.Time `json:"expires_at"`
}

type adminDTO struct {
	WishlistID string `json:"wishlist_id"`
	AdminID    int64  `json:"admin_id"`
}

type shareLinkDTO struct {
	Token     string     `json:"token"`
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type publicItemDTO struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Link       *string `json:"link"`
	PriceRange *string `json:"price_range"`
	IsGiftcard bool    `json:"is_giftcard"`
	IsTaken    bool    `json:"is_taken"`
	ClaimCount int64   `json:"claim_count"`
}

type publicWishlistDTO struct {
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	CreatorName string          `json:"creator_name"`
	Items       []publicItemDTO `json:"items"`
}

type claimResultDTO struct {
	IsGiftcard bool  `json:"is_giftcard"`
	IsTaken    bool  `json:"is_taken"`
	ClaimCount int64 `json:"claim_count"`
}
