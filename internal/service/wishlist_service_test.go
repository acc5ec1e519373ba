package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService_CreateDefaultsAndList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")

	v, err := e.wishlists.Create(ctx, owner, WishlistInput{Title: ptr("  Birthday "), EnablePrice: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Birthday", v.Title)
	assert.Equal(t, RoleOwner, v.Role)
	assert.True(t, v.EnableLinks)
	assert.False(t, v.EnablePrice)
	assert.True(t, v.EnablePriority)
	assert.False(t, v.EditingRestricted)
	assert.Empty(t, v.Items)

	_, err = e.wishlists.Create(ctx, owner, WishlistInput{Title: ptr("   ")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.wishlists.Create(ctx, owner, WishlistInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	other := e.register(t, "other@x.com")
	theirs := e.wishlist(t, other, "Wedding")
	e.withAdmin(t, other, theirs, "owner2@x.com")
	adminID := e.withAdmin(t, owner, v.ID, "helper@x.com")

	list, err := e.wishlists.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, RoleOwner, list[0].Role)

	list, err = e.wishlists.List(ctx, adminID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, v.ID, list[0].ID)
	assert.Equal(t, RoleAdmin, list[0].Role)
}

func TestWishlistService_AccessByRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	stranger := e.register(t, "stranger@x.com")
	id := e.wishlist(t, owner, "Birthday")
	adminID := e.withAdmin(t, owner, id, "admin@x.com")

	// посторонний не видит вишлист вовсе
	_, err := e.wishlists.Get(ctx, stranger, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// администратор видит, но не меняет и не удаляет
	_, err = e.wishlists.Get(ctx, adminID, id)
	assert.NoError(t, err)
	_, err = e.wishlists.Update(ctx, adminID, id, WishlistInput{Title: ptr("Hacked")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, e.wishlists.Delete(ctx, adminID, id), ErrForbidden)

	_, err = e.wishlists.Get(ctx, owner, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWishlistService_UpdateFlagsHideFields(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")

	_, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{
		Title:      ptr("Headphones"),
		Link:       ptr("https://shop.example/h"),
		PriceRange: ptr("100-150"),
		Priority:   ptr(2),
	})
	require.NoError(t, err)

	v, err := e.wishlists.Update(ctx, owner, id, WishlistInput{EnableLinks: ptr(false), EnablePriority: ptr(false), Description: ptr("For June")})
	require.NoError(t, err)
	assert.False(t, v.EnableLinks)
	if assert.NotNil(t, v.Description) {
		assert.Equal(t, "For June", *v.Description)
	}
	require.Len(t, v.Items, 1)
	assert.Nil(t, v.Items[0].Link)
	assert.Nil(t, v.Items[0].Priority)
	if assert.NotNil(t, v.Items[0].PriceRange) {
		assert.Equal(t, "100-150", *v.Items[0].PriceRange)
	}

	// поле хранится: включили флаг обратно — ссылка снова видна
	v, err = e.wishlists.Update(ctx, owner, id, WishlistInput{EnableLinks: ptr(true), Description: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, v.Description)
	if assert.NotNil(t, v.Items[0].Link) {
		assert.Equal(t, "https://shop.example/h", *v.Items[0].Link)
	}
}

func TestWishlistService_ItemValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")

	_, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Lego"), Priority: ptr(4)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Lego"), Priority: ptr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Lego"), Link: ptr("javascript:alert(1)")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = e.wishlists.AddItem(ctx, owner, id, ItemInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	it, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Lego"), Priority: ptr(3), Description: ptr(" ")})
	require.NoError(t, err)
	assert.Nil(t, it.Description)
	if assert.NotNil(t, it.Priority) {
		assert.Equal(t, 3, *it.Priority)
	}

	updated, err := e.wishlists.UpdateItem(ctx, owner, id, it.ID, ItemInput{Title: ptr("Lego Technic"), Priority: ptr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Lego Technic", updated.Title)
	assert.Equal(t, 0, *updated.Priority)

	_, err = e.wishlists.UpdateItem(ctx, owner, id, "missing", ItemInput{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, e.wishlists.DeleteItem(ctx, owner, id, it.ID))
	assert.ErrorIs(t, e.wishlists.DeleteItem(ctx, owner, id, it.ID), ErrNotFound)
}

func TestWishlistService_EditingRestrictedWhileShared(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")
	it, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Book")})
	require.NoError(t, err)
	adminID := e.withAdmin(t, owner, id, "admin@x.com")

	_, _, err = e.shares.GetOrCreate(ctx, adminID, id)
	require.NoError(t, err)

	v, err := e.wishlists.Get(ctx, owner, id)
	require.NoError(t, err)
	assert.True(t, v.EditingRestricted)

	_, err = e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Pen")})
	assert.ErrorIs(t, err, ErrEditingRestricted)
	_, err = e.wishlists.UpdateItem(ctx, owner, id, it.ID, ItemInput{Title: ptr("Pen")})
	assert.ErrorIs(t, err, ErrEditingRestricted)
	assert.ErrorIs(t, e.wishlists.DeleteItem(ctx, owner, id, it.ID), ErrEditingRestricted)

	// администратор редактирует и при активной ссылке
	_, err = e.wishlists.AddItem(ctx, adminID, id, ItemInput{Title: ptr("Pen")})
	assert.NoError(t, err)

	// отзыв ссылки снимает ограничение
	require.NoError(t, e.shares.Delete(ctx, adminID, id))
	_, err = e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Mug")})
	assert.NoError(t, err)
}

func TestWishlistService_ViewsHideClaimsFromOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")
	book, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Book")})
	require.NoError(t, err)
	card, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Card"), IsGiftcard: ptr(true)})
	require.NoError(t, err)
	adminID := e.withAdmin(t, owner, id, "admin@x.com")

	link, _, err := e.shares.GetOrCreate(ctx, adminID, id)
	require.NoError(t, err)
	_, err = e.claims.ClaimItem(ctx, link.Token, book.ID, "Bob")
	require.NoError(t, err)
	_, err = e.claims.ClaimItem(ctx, link.Token, card.ID, "Eve")
	require.NoError(t, err)

	ownerView, err := e.wishlists.Get(ctx, owner, id)
	require.NoError(t, err)
	require.NotNil(t, ownerView.Admin)
	assert.Equal(t, adminID, ownerView.Admin.AdminID)
	assert.Equal(t, "admin@x.com", ownerView.Admin.Email)
	assert.Nil(t, ownerView.PendingInvitation)
	for _, it := range ownerView.Items {
		assert.Nil(t, it.IsTaken)
		assert.Nil(t, it.TakenByName)
		assert.Nil(t, it.TakenAt)
		assert.Nil(t, it.ClaimCount)
		assert.Empty(t, it.Claims)
	}

	adminView, err := e.wishlists.Get(ctx, adminID, id)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, adminView.Role)
	assert.Nil(t, adminView.Admin)
	byID := map[string]ItemView{}
	for _, it := range adminView.Items {
		byID[it.ID] = it
	}
	if assert.NotNil(t, byID[book.ID].IsTaken) {
		assert.True(t, *byID[book.ID].IsTaken)
	}
	if assert.NotNil(t, byID[book.ID].TakenByName) {
		assert.Equal(t, "Bob", *byID[book.ID].TakenByName)
	}
	if assert.NotNil(t, byID[card.ID].ClaimCount) {
		assert.Equal(t, int64(1), *byID[card.ID].ClaimCount)
	}
	if assert.Len(t, byID[card.ID].Claims, 1) {
		assert.Equal(t, "Eve", byID[card.ID].Claims[0].ClaimerName)
	}
}

func TestWishlistService_OwnerSeesPendingInvitation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")

	_, err := e.invitations.Create(ctx, owner, id, "friend@x.com")
	require.NoError(t, err)

	v, err := e.wishlists.Get(ctx, owner, id)
	require.NoError(t, err)
	require.NotNil(t, v.PendingInvitation)
	assert.Equal(t, "friend@x.com", v.PendingInvitation.Email)
	assert.Contains(t, v.PendingInvitation.Link, "http://app/invite/")
	assert.Nil(t, v.Admin)
}

func TestWishlistService_DeleteCascades(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")
	_, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Card"), IsGiftcard: ptr(true)})
	require.NoError(t, err)
	adminID := e.withAdmin(t, owner, id, "admin@x.com")
	link, _, err := e.shares.GetOrCreate(ctx, adminID, id)
	require.NoError(t, err)

	require.NoError(t, e.wishlists.Delete(ctx, owner, id))

	_, err = e.wishlists.Get(ctx, owner, id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.shares.Resolve(ctx, link.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := e.wishlists.List(ctx, adminID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWishlistService_GiftcardFlagDropsStaleClaims(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")
	card, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Card"), IsGiftcard: ptr(true)})
	require.NoError(t, err)
	adminID := e.withAdmin(t, owner, id, "admin@x.com")
	link, _, err := e.shares.GetOrCreate(ctx, adminID, id)
	require.NoError(t, err)

	_, err = e.claims.ClaimItem(ctx, link.Token, card.ID, "Bob")
	require.NoError(t, err)

	// сертификат стал обычным подарком: брони сертификата удалены
	_, err = e.wishlists.UpdateItem(ctx, adminID, id, card.ID, ItemInput{IsGiftcard: ptr(false)})
	require.NoError(t, err)
	n, err := e.repos.Claims.CountByItem(ctx, card.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	res, err := e.claims.ClaimItem(ctx, link.Token, card.ID, "Eve")
	require.NoError(t, err)
	assert.True(t, res.IsTaken)

	// обратно в сертификат: бронь Eve снята, старая бронь Bob не вернулась
	_, err = e.wishlists.UpdateItem(ctx, adminID, id, card.ID, ItemInput{IsGiftcard: ptr(true)})
	require.NoError(t, err)
	pub, err := e.shares.Resolve(ctx, link.Token)
	require.NoError(t, err)
	require.Len(t, pub.Items, 1)
	assert.False(t, pub.Items[0].IsTaken)
	assert.Zero(t, pub.Items[0].ClaimCount)

	res, err = e.claims.ClaimItem(ctx, link.Token, card.ID, "Bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ClaimCount)
}

func TestServices_MalformedIDsAreNotFound(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.register(t, "owner@x.com")
	id := e.wishlist(t, owner, "Birthday")
	book, err := e.wishlists.AddItem(ctx, owner, id, ItemInput{Title: ptr("Book")})
	require.NoError(t, err)
	adminID := e.withAdmin(t, owner, id, "admin@x.com")
	link, _, err := e.shares.GetOrCreate(ctx, adminID, id)
	require.NoError(t, err)

	cases := map[string]func(bad string) error{
		"get wishlist": func(bad string) error {
			_, err := e.wishlists.Get(ctx, owner, bad)
			return err
		},
		"update item": func(bad string) error {
			_, err := e.wishlists.UpdateItem(ctx, adminID, id, bad, ItemInput{Title: ptr("x")})
			return err
		},
		"delete item": func(bad string) error {
			return e.wishlists.DeleteItem(ctx, adminID, id, bad)
		},
		"claim item": func(bad string) error {
			_, err := e.claims.ClaimItem(ctx, link.Token, bad, "Bob")
			return err
		},
		"untake": func(bad string) error {
			return e.claims.Untake(ctx, adminID, id, bad)
		},
		"remove claim": func(bad string) error {
			return e.claims.RemoveClaim(ctx, adminID, id, book.ID, bad)
		},
		"remove invitation": func(bad string) error {
			return e.invitations.Remove(ctx, owner, bad)
		},
		"invitations of wishlist": func(bad string) error {
			_, err := e.invitations.List(ctx, owner, bad)
			return err
		},
	}
	bads := []string{"foo", "x", "", "{" + book.ID + "}", strings.ToUpper(book.ID), book.ID + "0"}
	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			for _, bad := range bads {
				assert.ErrorIs(t, call(bad), ErrNotFound, "id %q", bad)
			}
		})
	}
}
