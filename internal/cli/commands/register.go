package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"GiftHunt/internal/cli/api"
	"GiftHunt/internal/config"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Register a new account and store auth cookie" }
func (registerCmd) Usage() string       { return "register <email> <password> [name]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	req := RegisterRequest{Email: args[0], Password: args[1]}
	if len(args) == 3 {
		req.FullName = args[2]
	}
	resp, err := call(ctx, cfg, http.MethodPost, "/api/user/register", req, false, nil)
	switch {
	case statusIs(err, http.StatusConflict):
		return errors.New("email already registered")
	case err != nil:
		return err
	}
	if err := api.PersistAuthFromResponse(resp, tokenStore(cfg)); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintln(Out, "Registered and logged in")
	return nil
}

func init() { RegisterCmd(registerCmd{}, SectionAccount) }
