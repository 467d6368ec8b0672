package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"donee/internal/cli/service"
	"donee/internal/cli/view"
	"donee/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the stored token and check it against the server" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		fmt.Fprintf(Out, "server:    %s\n", cfg.ServerURL)
		fmt.Fprintf(Out, "store:     %s\n", cfg.TokenStore)

		info, err := svc.TokenInfo(ctx)
		switch {
		case errors.Is(err, service.ErrNotLoggedIn):
			fmt.Fprintln(Out, "token:     none")
			return nil
		case err != nil:
			// непрозрачный токен — не ошибка, просто без claims
			fmt.Fprintln(Out, "token:     present (opaque)")
		default:
			fmt.Fprintf(Out, "subject:   %s\n", info.Subject)
			if !info.ExpiresAt.IsZero() {
				exp := info.ExpiresAt.Format(time.RFC3339)
				if info.Expired(time.Now()) {
					exp += " " + view.RenderError("(expired)")
				}
				fmt.Fprintf(Out, "expires:   %s\n", exp)
			}
		}

		u, err := svc.Me(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, view.SuccessStyle.Render("authorized as "+u.Username))
		return nil
	})
}

func init() { RegisterCmd(statusCmd{}) }
