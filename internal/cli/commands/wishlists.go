package commands

import (
	"context"
	"fmt"
	"net/http"

	"GiftHunt/internal/config"
)

type wishlistsCmd struct{}

func (wishlistsCmd) Name() string        { return "wishlists" }
func (wishlistsCmd) Description() string { return "Показать свои вишлисты и те, где вы администратор" }
func (wishlistsCmd) Usage() string       { return "wishlists" }

func (wishlistsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var list []wishlistSummary
	if _, err := call(ctx, cfg, http.MethodGet, "/api/wishlists", nil, true, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет вишлистов")
		return nil
	}
	for _, w := range list {
		fmt.Fprintf(Out, "- %s  %s  (%s)\n", w.ID, w.Title, w.Role)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type wishlistCreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

type wishlistCreateCmd struct{}

func (wishlistCreateCmd) Name() string        { return "wishlist-create" }
func (wishlistCreateCmd) Description() string { return "Создать вишлист" }
func (wishlistCreateCmd) Usage() string       { return "wishlist-create <title> [description]" }

func (wishlistCreateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 || args[0] == "" {
		return ErrUsage
	}
	req := wishlistCreateRequest{Title: args[0]}
	if len(args) == 2 {
		req.Description = &args[1]
	}
	var w wishlistDTO
	if _, err := call(ctx, cfg, http.MethodPost, "/api/wishlists", req, true, &w); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:    %s\n", w.ID)
	fmt.Fprintf(Out, "  title: %s\n", w.Title)
	return nil
}

type itemAddRequest struct {
	Title string  `json:"title"`
	Link  *string `json:"link,omitempty"`
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Добавить подарок в вишлист" }
func (itemAddCmd) Usage() string       { return "item-add <wishlist-id> <title> [link]" }

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 || args[0] == "" || args[1] == "" {
		return ErrUsage
	}
	req := itemAddRequest{Title: args[1]}
	if len(args) == 3 {
		req.Link = &args[2]
	}
	var it itemDTO
	if _, err := call(ctx, cfg, http.MethodPost, "/api/wishlists/"+args[0]+"/items", req, true, &it); err != nil {
		if statusIs(err, http.StatusConflict) {
			return fmt.Errorf("вишлист открыт гостям, редактирование ограничено: %w", err)
		}
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:    %s\n", it.ID)
	fmt.Fprintf(Out, "  title: %s\n", it.Title)
	return nil
}

func init() {
	RegisterCmd(wishlistsCmd{}, SectionWishlists)
	RegisterCmd(wishlistCreateCmd{}, SectionWishlists)
	RegisterCmd(itemAddCmd{}, SectionWishlists)
}
