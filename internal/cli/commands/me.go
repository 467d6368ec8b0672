package commands

import (
	"context"

	"donee/internal/cli/service"
	"donee/internal/config"
)

type meCmd struct{}

func (meCmd) Name() string        { return "me" }
func (meCmd) Description() string { return "Show the current user" }
func (meCmd) Usage() string       { return "me" }

func (meCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		u, err := svc.Me(ctx)
		if err != nil {
			return err
		}
		printUser(u)
		return nil
	})
}

func init() { RegisterCmd(meCmd{}) }
