package commands

import (
	"context"
	"fmt"

	"donee/internal/cli/model"
	"donee/internal/cli/service"
	"donee/internal/cli/view"
	"donee/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the access token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	req := model.LoginRequest{Email: args[0], Password: args[1]}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		tr, err := svc.Login(ctx, req)
		if err != nil {
			return err
		}
		if tr.AccessToken == "" {
			fmt.Fprintln(Out, view.DimStyle.Render("server returned no access token; nothing stored"))
			return nil
		}
		fmt.Fprintln(Out, view.SuccessStyle.Render("Logged in successfully"))
		return nil
	})
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored access token (local only)" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		if err := svc.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Logged out")
		return nil
	})
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
}
