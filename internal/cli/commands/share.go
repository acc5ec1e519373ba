package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"GiftHunt/internal/config"
)

type shareCmd struct{}

func (shareCmd) Name() string        { return "share" }
func (shareCmd) Description() string { return "Получить ссылку для гостей (только администратор)" }
func (shareCmd) Usage() string       { return "share <wishlist-id>" }

func (shareCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	var link shareLinkDTO
	resp, err := call(ctx, cfg, http.MethodPost, "/api/wishlists/"+url.PathEscape(args[0])+"/share", nil, true, &link)
	if statusIs(err, http.StatusForbidden) {
		return errors.New("only the wishlist admin can share it")
	}
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusCreated {
		fmt.Fprintln(Out, "Share link created:")
	} else {
		fmt.Fprintln(Out, "Share link:")
	}
	fmt.Fprintf(Out, "  url:   %s\n", link.URL)
	fmt.Fprintf(Out, "  token: %s\n", link.Token)
	if link.ExpiresAt != nil {
		fmt.Fprintf(Out, "  expires: %s\n", link.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

type viewCmd struct{}

func (viewCmd) Name() string        { return "view" }
func (viewCmd) Description() string { return "Открыть вишлист по ссылке для гостей" }
func (viewCmd) Usage() string       { return "view <share-token>" }

func (viewCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	var w publicWishlistDTO
	_, err := call(ctx, cfg, http.MethodGet, "/api/share/"+url.PathEscape(args[0]), nil, false, &w)
	if statusIs(err, http.StatusNotFound) || statusIs(err, http.StatusGone) {
		return errors.New("share link is invalid or expired")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "%s", w.Title)
	if w.CreatorName != "" {
		fmt.Fprintf(Out, " (by %s)", w.CreatorName)
	}
	fmt.Fprintln(Out)
	if w.Description != nil {
		fmt.Fprintln(Out, *w.Description)
	}
	if len(w.Items) == 0 {
		fmt.Fprintln(Out, "Нет подарков")
		return nil
	}
	for _, it := range w.Items {
		fmt.Fprintf(Out, "- %s  %s  %s\n", it.ID, it.Title, itemState(it))
	}
	return nil
}

func itemState(it publicItemDTO) string {
	var parts []string
	switch {
	case it.IsGiftcard:
		parts = append(parts, fmt.Sprintf("[gift card, claims: %d]", it.ClaimCount))
	case it.IsTaken:
		parts = append(parts, "[taken]")
	default:
		parts = append(parts, "[available]")
	}
	if it.PriceRange != nil {
		parts = append(parts, *it.PriceRange)
	}
	if it.Link != nil {
		parts = append(parts, *it.Link)
	}
	return strings.Join(parts, "  ")
}

type claimCmd struct{}

func (claimCmd) Name() string        { return "claim" }
func (claimCmd) Description() string { return "Забронировать подарок по ссылке для гостей" }
func (claimCmd) Usage() string       { return "claim <share-token> <item-id> <name>" }

func (claimCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 || args[0] == "" || args[1] == "" {
		return ErrUsage
	}
	path := "/api/share/" + url.PathEscape(args[0]) + "/items/" + url.PathEscape(args[1]) + "/claim"
	var res claimResultDTO
	_, err := call(ctx, cfg, http.MethodPost, path, map[string]string{"claimer_name": args[2]}, false, &res)
	switch {
	case statusIs(err, http.StatusConflict):
		return fmt.Errorf("cannot claim: %w", err)
	case statusIs(err, http.StatusNotFound), statusIs(err, http.StatusGone):
		return errors.New("share link or item not found")
	case err != nil:
		return err
	}
	if res.IsGiftcard {
		fmt.Fprintf(Out, "Gift card claimed, total claims: %d\n", res.ClaimCount)
		return nil
	}
	fmt.Fprintln(Out, "Item reserved")
	return nil
}

func init() {
	RegisterCmd(shareCmd{}, SectionWishlists)
	RegisterCmd(viewCmd{}, SectionGuests)
	RegisterCmd(claimCmd{}, SectionGuests)
}
