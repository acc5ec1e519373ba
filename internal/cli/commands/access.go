package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"GiftHunt/internal/config"
)

type inviteCmd struct{}

func (inviteCmd) Name() string        { return "invite" }
func (inviteCmd) Description() string { return "Пригласить администратора вишлиста по email" }
func (inviteCmd) Usage() string       { return "invite <wishlist-id> <email>" }

func (inviteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 || args[0] == "" {
		return ErrUsage
	}
	var inv invitationDTO
	_, err := call(ctx, cfg, http.MethodPost, "/api/wishlists/"+url.PathEscape(args[0])+"/invitations",
		map[string]string{"email": args[1]}, true, &inv)
	if statusIs(err, http.StatusConflict) {
		return fmt.Errorf("invitation not created: %w", err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Invitation sent to %s\n", inv.Email)
	fmt.Fprintf(Out, "  link:    %s\n", inv.Link)
	fmt.Fprintf(Out, "  expires: %s\n", inv.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

type acceptCmd struct{}

func (acceptCmd) Name() string        { return "accept" }
func (acceptCmd) Description() string { return "Принять приглашение и стать администратором" }
func (acceptCmd) Usage() string       { return "accept <token>" }

func (acceptCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return ErrUsage
	}
	var admin adminDTO
	_, err := call(ctx, cfg, http.MethodPost, "/api/invitations/token/"+url.PathEscape(args[0])+"/accept", nil, true, &admin)
	switch {
	case statusIs(err, http.StatusGone):
		return errors.New("invitation has expired")
	case statusIs(err, http.StatusNotFound):
		return errors.New("invitation not found")
	case err != nil:
		return err
	}
	fmt.Fprintf(Out, "You are now the admin of wishlist %s\n", admin.WishlistID)
	return nil
}

func init() {
	RegisterCmd(inviteCmd{}, SectionWishlists)
	RegisterCmd(acceptCmd{}, SectionWishlists)
}
