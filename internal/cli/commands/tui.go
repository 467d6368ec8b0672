package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"donee/internal/cli/service"
	"donee/internal/cli/tui"
	"donee/internal/config"
)

type tuiCmd struct{}

func (tuiCmd) Name() string        { return "tui" }
func (tuiCmd) Description() string { return "Interactive login form" }
func (tuiCmd) Usage() string       { return "tui" }

func (tuiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		p := tea.NewProgram(tui.NewLoginModel(ctx, svc), tea.WithContext(ctx), tea.WithOutput(Out))
		final, err := p.Run()
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		if m, ok := final.(tui.LoginModel); ok && m.User != nil {
			fmt.Fprintf(Out, "Logged in as %s\n", m.User.Username)
		}
		return nil
	})
}

func init() { RegisterCmd(tuiCmd{}) }
