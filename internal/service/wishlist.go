package service

import (
	"GiftHunt/internal/model"
	"GiftHunt/internal/repo"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	maxTitleLen = 200
	maxTextLen  = 2000
)

// WishlistInput — поля вишлиста; nil означает «не менять».
type WishlistInput struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	EnableLinks    *bool   `json:"enable_links"`
	EnablePrice    *bool   `json:"enable_price"`
	EnablePriority *bool   `json:"enable_priority"`
}

// ItemInput — поля подарка; nil означает «не менять», пустая строка очищает поле.
type ItemInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Link        *string `json:"link"`
	URL         *string `json:"url"`
	PriceRange  *string `json:"price_range"`
	Priority    *int    `json:"priority"`
	IsGiftcard  *bool   `json:"is_giftcard"`
}

// WishlistService — вишлисты и подарки для владельца и администратора.
type WishlistService struct {
	repos      *repo.Repositories
	acc        access
	appBaseURL string
	logger     *zap.SugaredLogger
	now        func() time.Time
}

func NewWishlistService(repos *repo.Repositories, appBaseURL string, logger *zap.SugaredLogger) *WishlistService {
	return &WishlistService{
		repos:      repos,
		acc:        access{repos: repos},
		appBaseURL: appBaseURL,
		logger:     logger,
		now:        utcNow,
	}
}

// Create создаёт вишлист. Флаги по умолчанию включены.
func (s *WishlistService) Create(ctx context.Context, userID int64, in WishlistInput) (*WishlistView, error) {
	if in.Title == nil {
		return nil, invalidInput("title is required")
	}
	title, err := requiredText(*in.Title, maxTitleLen, "title")
	if err != nil {
		return nil, err
	}
	desc, err := optionalText(in.Description, maxTextLen, "description")
	if err != nil {
		return nil, err
	}

	w := &model.Wishlist{
		CreatorID:      userID,
		Title:          title,
		Description:    desc,
		EnableLinks:    boolOr(in.EnableLinks, true),
		EnablePrice:    boolOr(in.EnablePrice, true),
		EnablePriority: boolOr(in.EnablePriority, true),
	}
	if err := s.repos.Wishlists.Create(ctx, w); err != nil {
		return nil, fmt.Errorf("create wishlist: %w", err)
	}
	s.logger.Infow("wishlist created", "wishlist_id", w.ID, "user_id", userID)
	return s.Get(ctx, userID, w.ID)
}

// List — свои вишлисты и те, где пользователь администратор.
func (s *WishlistService) List(ctx context.Context, userID int64) ([]WishlistSummary, error) {
	owned, err := s.repos.Wishlists.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned wishlists: %w", err)
	}
	administered, err := s.repos.Wishlists.ListAdministered(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list administered wishlists: %w", err)
	}

	out := make([]WishlistSummary, 0, len(owned)+len(administered))
	add := func(ws []model.Wishlist, role Role) {
		for _, w := range ws {
			out = append(out, WishlistSummary{
				ID:          w.ID,
				Title:       w.Title,
				Description: w.Description,
				Role:        role,
				CreatedAt:   w.CreatedAt,
			})
		}
	}
	add(owned, RoleOwner)
	add(administered, RoleAdmin)
	return out, nil
}

// Get собирает представление вишлиста под роль пользователя.
// Владелец не видит данных о бронях, администратор видит всё.
func (s *WishlistService) Get(ctx context.Context, userID int64, wishlistID string) (*WishlistView, error) {
	w, role, err := s.acc.require(ctx, wishlistID, userID, RoleOwner, RoleAdmin)
	if err != nil {
		return nil, err
	}

	items, err := s.repos.Items.ListByWishlist(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	restricted, err := s.acc.editingRestricted(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	creatorName, err := s.acc.displayName(ctx, w.CreatorID)
	if err != nil {
		s.logger.Warnw("load creator profile", "wishlist_id", w.ID, "error", err)
	}

	view := &WishlistView{
		ID:                w.ID,
		CreatorID:         w.CreatorID,
		CreatorName:       creatorName,
		Title:             w.Title,
		Description:       w.Description,
		EnableLinks:       w.EnableLinks,
		EnablePrice:       w.EnablePrice,
		EnablePriority:    w.EnablePriority,
		Role:              role,
		EditingRestricted: restricted,
		Items:             make([]ItemView, 0, len(items)),
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}

	switch role {
	case RoleOwner:
		for i := range items {
			view.Items = append(view.Items, baseItemView(w, &items[i]))
		}
		if err := s.fillOwnerExtras(ctx, view); err != nil {
			return nil, err
		}
	case RoleAdmin:
		claims, err := s.claimsByItem(ctx, items)
		if err != nil {
			return nil, err
		}
		for i := range items {
			view.Items = append(view.Items, adminItemView(w, &items[i], claims[items[i].ID]))
		}
	}
	return view, nil
}

func (s *WishlistService) fillOwnerExtras(ctx context.Context, view *WishlistView) error {
	admin, err := s.repos.Admins.GetByWishlist(ctx, view.ID)
	switch {
	case err == nil:
		u, uerr := s.repos.Users.GetUserByID(ctx, admin.AdminID)
		if uerr != nil && !repo.IsNotFound(uerr) {
			return fmt.Errorf("load admin profile: %w", uerr)
		}
		view.Admin = adminView(admin, u)
	case !repo.IsNotFound(err):
		return fmt.Errorf("load admin: %w", err)
	}

	invs, err := s.repos.Invitations.ListByWishlist(ctx, view.ID)
	if err != nil {
		return fmt.Errorf("list invitations: %w", err)
	}
	now := s.now()
	for i := range invs {
		if invs[i].IsPending(now) {
			view.PendingInvitation = invitationView(&invs[i], inviteLink(s.appBaseURL, invs[i].InvitationToken), now)
			break
		}
	}
	return nil
}

func (s *WishlistService) claimsByItem(ctx context.Context, items []model.WishlistItem) (map[string][]ClaimView, error) {
	var ids []string
	for _, it := range items {
		if it.IsGiftcard {
			ids = append(ids, it.ID)
		}
	}
	out := make(map[string][]ClaimView, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	claims, err := s.repos.Claims.ListByItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	for _, c := range claims {
		out[c.ItemID] = append(out[c.ItemID], ClaimView{ID: c.ID, ClaimerName: c.ClaimerName, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

func adminItemView(w *model.Wishlist, it *model.WishlistItem, claims []ClaimView) ItemView {
	v := baseItemView(w, it)
	if it.IsGiftcard {
		n := int64(len(claims))
		v.ClaimCount = &n
		v.Claims = claims
		return v
	}
	taken := it.IsTaken
	v.IsTaken = &taken
	v.TakenByName = it.TakenByName
	v.TakenAt = it.TakenAt
	return v
}

// Update меняет поля вишлиста. Только владелец.
func (s *WishlistService) Update(ctx context.Context, userID int64, wishlistID string, in WishlistInput) (*WishlistView, error) {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleOwner)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Title != nil {
		title, err := requiredText(*in.Title, maxTitleLen, "title")
		if err != nil {
			return nil, err
		}
		updates["title"] = title
	}
	if in.Description != nil {
		desc, err := optionalText(in.Description, maxTextLen, "description")
		if err != nil {
			return nil, err
		}
		updates["description"] = nullable(desc)
	}
	if in.EnableLinks != nil {
		updates["enable_links"] = *in.EnableLinks
	}
	if in.EnablePrice != nil {
		updates["enable_price"] = *in.EnablePrice
	}
	if in.EnablePriority != nil {
		updates["enable_priority"] = *in.EnablePriority
	}

	if len(updates) > 0 {
		if err := s.repos.Wishlists.Update(ctx, w.ID, updates); err != nil {
			if repo.IsNotFound(err) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("update wishlist: %w", err)
		}
	}
	return s.Get(ctx, userID, w.ID)
}

// Delete удаляет вишлист со всеми подарками, бронями, приглашениями и ссылками.
func (s *WishlistService) Delete(ctx context.Context, userID int64, wishlistID string) error {
	w, _, err := s.acc.require(ctx, wishlistID, userID, RoleOwner)
	if err != nil {
		return err
	}
	if err := s.repos.Wishlists.Delete(ctx, w.ID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete wishlist: %w", err)
	}
	s.logger.Infow("wishlist deleted", "wishlist_id", w.ID, "user_id", userID)
	return nil
}

// editableWishlist — владелец или администратор, владельцу мешает ссылка для гостей.
func (s *WishlistService) editableWishlist(ctx context.Context, userID int64, wishlistID string) (*model.Wishlist, Role, error) {
	w, role, err := s.acc.require(ctx, wishlistID, userID, RoleOwner, RoleAdmin)
	if err != nil {
		return nil, RoleNone, err
	}
	if role == RoleOwner {
		restricted, err := s.acc.editingRestricted(ctx, w.ID)
		if err != nil {
			return nil, RoleNone, err
		}
		if restricted {
			return nil, role, ErrEditingRestricted
		}
	}
	return w, role, nil
}

// AddItem добавляет подарок.
func (s *WishlistService) AddItem(ctx context.Context, userID int64, wishlistID string, in ItemInput) (*ItemView, error) {
	w, role, err := s.editableWishlist(ctx, userID, wishlistID)
	if err != nil {
		return nil, err
	}
	if in.Title == nil {
		return nil, invalidInput("title is required")
	}
	title, err := requiredText(*in.Title, maxTitleLen, "title")
	if err != nil {
		return nil, err
	}

	it := &model.WishlistItem{WishlistID: w.ID, Title: title, IsGiftcard: boolOr(in.IsGiftcard, false)}
	if it.Description, err = optionalText(in.Description, maxTextLen, "description"); err != nil {
		return nil, err
	}
	if it.Link, err = optionalURL(in.Link, "link"); err != nil {
		return nil, err
	}
	if it.URL, err = optionalURL(in.URL, "url"); err != nil {
		return nil, err
	}
	if it.PriceRange, err = optionalText(in.PriceRange, maxTitleLen, "price_range"); err != nil {
		return nil, err
	}
	if in.Priority != nil {
		if err := validatePriority(*in.Priority); err != nil {
			return nil, err
		}
		p := *in.Priority
		it.Priority = &p
	}

	if err := s.repos.Items.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return itemViewFor(role, w, it, nil), nil
}

// UpdateItem меняет поля подарка.
func (s *WishlistService) UpdateItem(ctx context.Context, userID int64, wishlistID, itemID string, in ItemInput) (*ItemView, error) {
	w, role, err := s.editableWishlist(ctx, userID, wishlistID)
	if err != nil {
		return nil, err
	}
	if err := checkIDs(itemID); err != nil {
		return nil, err
	}
	current, err := s.repos.Items.GetByID(ctx, w.ID, itemID)
	if repo.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}

	updates := map[string]any{}
	if in.Title != nil {
		title, err := requiredText(*in.Title, maxTitleLen, "title")
		if err != nil {
			return nil, err
		}
		updates["title"] = title
	}
	texts := []struct {
		column string
		value  *string
		url    bool
		max    int
	}{
		{"description", in.Description, false, maxTextLen},
		{"link", in.Link, true, 0},
		{"url", in.URL, true, 0},
		{"price_range", in.PriceRange, false, maxTitleLen},
	}
	for _, f := range texts {
		if f.value == nil {
			continue
		}
		var v *string
		if f.url {
			v, err = optionalURL(f.value, f.column)
		} else {
			v, err = optionalText(f.value, f.max, f.column)
		}
		if err != nil {
			return nil, err
		}
		updates[f.column] = nullable(v)
	}
	if in.Priority != nil {
		if err := validatePriority(*in.Priority); err != nil {
			return nil, err
		}
		updates["priority"] = *in.Priority
	}
	toRegular := false
	if in.IsGiftcard != nil && *in.IsGiftcard != current.IsGiftcard {
		updates["is_giftcard"] = *in.IsGiftcard
		if *in.IsGiftcard {
			// сертификат не бронируется целиком
			updates["is_taken"] = false
			updates["taken_by_name"] = nil
			updates["taken_at"] = nil
		} else {
			toRegular = true
		}
	}

	if toRegular {
		if err := s.repos.Items.ConvertToRegular(ctx, w.ID, current.ID, updates); err != nil {
			if repo.IsNotFound(err) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("convert item: %w", err)
		}
	} else if len(updates) > 0 {
		if err := s.repos.Items.Update(ctx, w.ID, current.ID, updates); err != nil {
			if repo.IsNotFound(err) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("update item: %w", err)
		}
	}

	updated, err := s.repos.Items.GetByID(ctx, w.ID, current.ID)
	if err != nil {
		return nil, fmt.Errorf("reload item: %w", err)
	}
	var claims []ClaimView
	if role == RoleAdmin && updated.IsGiftcard {
		byItem, err := s.claimsByItem(ctx, []model.WishlistItem{*updated})
		if err != nil {
			return nil, err
		}
		claims = byItem[updated.ID]
	}
	return itemViewFor(role, w, updated, claims), nil
}

// DeleteItem удаляет подарок вместе с его бронями.
func (s *WishlistService) DeleteItem(ctx context.Context, userID int64, wishlistID, itemID string) error {
	w, _, err := s.editableWishlist(ctx, userID, wishlistID)
	if err != nil {
		return err
	}
	if err := checkIDs(itemID); err != nil {
		return err
	}
	if err := s.repos.Items.Delete(ctx, w.ID, itemID); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func itemViewFor(role Role, w *model.Wishlist, it *model.WishlistItem, claims []ClaimView) *ItemView {
	var v ItemView
	if role == RoleAdmin {
		v = adminItemView(w, it, claims)
	} else {
		v = baseItemView(w, it)
	}
	return &v
}

func requiredText(raw string, max int, field string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", invalidInput(field + " is required")
	}
	if utf8.RuneCountInString(v) > max {
		return "", invalidInput(field + " is too long")
	}
	return v, nil
}

func optionalText(raw *string, max int, field string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*raw)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > max {
		return nil, invalidInput(field + " is too long")
	}
	return &v, nil
}

func optionalURL(raw *string, field string) (*string, error) {
	v, err := optionalText(raw, maxTextLen, field)
	if err != nil || v == nil {
		return v, err
	}
	u, err := url.Parse(*v)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, invalidInput(field + " must be an http(s) url")
	}
	return v, nil
}

func validatePriority(p int) error {
	if p < 0 || p > model.MaxPriority {
		return invalidInput(fmt.Sprintf("priority must be within 0..%d", model.MaxPriority))
	}
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// nullable превращает пустой указатель в NULL для map-обновлений gorm.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
