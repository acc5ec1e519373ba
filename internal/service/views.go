package service

import (
	"GiftHunt/internal/model"
	"time"
)

// ItemView — подарок в вишлисте. Поля брони заполняются только для администратора.
type ItemView struct {
	ID          string      `json:"id"`
	WishlistID  string      `json:"wishlist_id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Link        *string     `json:"link"`
	URL         *string     `json:"url"`
	PriceRange  *string     `json:"price_range"`
	Priority    *int        `json:"priority"`
	IsGiftcard  bool        `json:"is_giftcard"`
	IsTaken     *bool       `json:"is_taken,omitempty"`
	TakenByName *string     `json:"taken_by_name,omitempty"`
	TakenAt     *time.Time  `json:"taken_at,omitempty"`
	ClaimCount  *int64      `json:"claim_count,omitempty"`
	Claims      []ClaimView `json:"claims,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ClaimView — бронь подарочного сертификата.
type ClaimView struct {
	ID          string    `json:"id"`
	ClaimerName string    `json:"claimer_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// WishlistSummary — строка в списке вишлистов пользователя.
type WishlistSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// WishlistView — вишлист глазами владельца или администратора.
type WishlistView struct {
	ID                string          `json:"id"`
	CreatorID         int64           `json:"creator_id"`
	CreatorName       string          `json:"creator_name"`
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	EnableLinks       bool            `json:"enable_links"`
	EnablePrice       bool            `json:"enable_price"`
	EnablePriority    bool            `json:"enable_priority"`
	Role              Role            `json:"role"`
	EditingRestricted bool            `json:"editing_restricted"`
	Admin             *AdminView      `json:"admin,omitempty"`
	PendingInvitation *InvitationView `json:"pending_invitation,omitempty"`
	Items             []ItemView      `json:"items"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// InvitationView — приглашение для владельца вишлиста.
type InvitationView struct {
	ID         string    `json:"id"`
	WishlistID string    `json:"wishlist_id"`
	Email      string    `json:"email"`
	Link       string    `json:"link"`
	Accepted   bool      `json:"accepted"`
	Expired    bool      `json:"expired"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// InvitationPreview — то, что видит приглашённый до принятия.
type InvitationPreview struct {
	WishlistID       string    `json:"wishlist_id"`
	WishlistTitle    string    `json:"wishlist_title"`
	InviterName      string    `json:"inviter_name"`
	Email            string    `json:"email"`
	ExpiresAt        time.Time `json:"expires_at"`
	Accepted         bool      `json:"accepted"`
	Expired          bool      `json:"expired"`
	CurrentUserEmail *string   `json:"current_user_email,omitempty"`
}

// AdminView — администратор вишлиста с профилем.
type AdminView struct {
	ID         string    `json:"id"`
	WishlistID string    `json:"wishlist_id"`
	AdminID    int64     `json:"admin_id"`
	Email      string    `json:"email,omitempty"`
	FullName   *string   `json:"full_name,omitempty"`
	InvitedBy  int64     `json:"invited_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// ShareLinkView — ссылка для гостей.
type ShareLinkView struct {
	Token      string     `json:"token"`
	URL        string     `json:"url"`
	WishlistID string     `json:"wishlist_id"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// PublicWishlist — вишлист по ссылке для гостей.
type PublicWishlist struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Description    *string      `json:"description"`
	CreatorName    string       `json:"creator_name"`
	EnableLinks    bool         `json:"enable_links"`
	EnablePrice    bool         `json:"enable_price"`
	EnablePriority bool         `json:"enable_priority"`
	Items          []PublicItem `json:"items"`
}

// PublicItem — подарок для гостя: только факт брони, без имён.
type PublicItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	URL         *string `json:"url"`
	PriceRange  *string `json:"price_range"`
	Priority    *int    `json:"priority"`
	IsGiftcard  bool    `json:"is_giftcard"`
	IsTaken     bool    `json:"is_taken"`
	ClaimCount  int64   `json:"claim_count"`
}

// ClaimResult — итог бронирования гостем.
type ClaimResult struct {
	ItemID     string `json:"item_id"`
	IsGiftcard bool   `json:"is_giftcard"`
	IsTaken    bool   `json:"is_taken"`
	ClaimCount int64  `json:"claim_count"`
}

// baseItemView копирует поля подарка с учётом флагов вишлиста, без данных брони.
func baseItemView(w *model.Wishlist, it *model.WishlistItem) ItemView {
	v := ItemView{
		ID:          it.ID,
		WishlistID:  it.WishlistID,
		Title:       it.Title,
		Description: it.Description,
		URL:         it.URL,
		IsGiftcard:  it.IsGiftcard,
		CreatedAt:   it.CreatedAt,
	}
	if w.EnableLinks {
		v.Link = it.Link
	}
	if w.EnablePrice {
		v.PriceRange = it.PriceRange
	}
	if w.EnablePriority {
		v.Priority = it.Priority
	}
	return v
}

func publicItem(w *model.Wishlist, it *model.WishlistItem, claims int64) PublicItem {
	v := baseItemView(w, it)
	p := PublicItem{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Link:        v.Link,
		URL:         v.URL,
		PriceRange:  v.PriceRange,
		Priority:    v.Priority,
		IsGiftcard:  it.IsGiftcard,
	}
	if it.IsGiftcard {
		p.ClaimCount = claims
	} else {
		p.IsTaken = it.IsTaken
	}
	return p
}

func invitationView(inv *model.AdminInvitation, link string, now time.Time) *InvitationView {
	return &InvitationView{
		ID:         inv.ID,
		WishlistID: inv.WishlistID,
		Email:      inv.Email,
		Link:       link,
		Accepted:   inv.Accepted,
		Expired:    !inv.Accepted && inv.IsExpired(now),
		ExpiresAt:  inv.ExpiresAt,
		CreatedAt:  inv.CreatedAt,
	}
}

func adminView(a *model.WishlistAdmin, u *model.User) *AdminView {
	v := &AdminView{
		ID:         a.ID,
		WishlistID: a.WishlistID,
		AdminID:    a.AdminID,
		InvitedBy:  a.InvitedBy,
		CreatedAt:  a.CreatedAt,
	}
	if u != nil {
		v.Email = u.Email
		v.FullName = u.FullName
	}
	return v
}
