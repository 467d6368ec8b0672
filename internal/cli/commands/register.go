package commands

import (
	"context"
	"fmt"

	"donee/internal/cli/model"
	"donee/internal/cli/service"
	"donee/internal/cli/view"
	"donee/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create a new account" }
func (registerCmd) Usage() string       { return "register <email> <username> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	req := model.RegisterRequest{Email: args[0], Username: args[1], Password: args[2]}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		u, err := svc.Register(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, view.SuccessStyle.Render("Registered "+u.Username))
		printUser(u)
		return nil
	})
}

func printUser(u *model.User) {
	fmt.Fprintf(Out, "id:        %s\n", u.ID)
	fmt.Fprintf(Out, "email:     %s\n", u.Email)
	fmt.Fprintf(Out, "username:  %s\n", u.Username)
}

func init() { RegisterCmd(registerCmd{}) }
