package commands

import (
	"context"
	"fmt"
	"net/http"

	"GiftHunt/internal/config"
)

type dataResponse struct {
	Result string `json:"result"`
}

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show who the server thinks you are" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	// без токена статус тоже показываем: сервер ответит anonymous
	withAuth := false
	if _, err := tokenStore(cfg).Load(); err == nil {
		withAuth = true
	}
	var dr dataResponse
	if _, err := call(ctx, cfg, http.MethodPost, "/api/user/test", nil, withAuth, &dr); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Status:", dr.Result)
	return nil
}

func init() { RegisterCmd(statusCmd{}, SectionAccount) }
