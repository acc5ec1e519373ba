package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"GiftHunt/internal/cli/api"
	"GiftHunt/internal/config"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	resp, err := call(ctx, cfg, http.MethodPost, "/api/user/login", LoginRequest{Email: args[0], Password: args[1]}, false, nil)
	if statusIs(err, http.StatusUnauthorized) {
		return errors.New("invalid email or password")
	}
	if err != nil {
		return err
	}
	if err := api.PersistAuthFromResponse(resp, tokenStore(cfg)); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}, SectionAccount) }

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored auth cookie" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := tokenStore(cfg).Clear(); err != nil {
		return fmt.Errorf("removing auth: %w", err)
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() { RegisterCmd(logoutCmd{}, SectionAccount) }
