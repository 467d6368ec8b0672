package commands

import (
	"context"
	"fmt"

	"donee/internal/cli/model"
	"donee/internal/cli/service"
	"donee/internal/cli/view"
	"donee/internal/config"
)

// Три шага сброса пароля: запрос кода, проверка кода, установка нового пароля.

type forgotPasswordCmd struct{}

func (forgotPasswordCmd) Name() string        { return "forgot-password" }
func (forgotPasswordCmd) Description() string { return "Request a password reset code" }
func (forgotPasswordCmd) Usage() string       { return "forgot-password <email>" }

func (forgotPasswordCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		m, err := svc.ForgotPassword(ctx, model.ForgotPasswordRequest{Email: args[0]})
		if err != nil {
			return err
		}
		printMessage(m)
		return nil
	})
}

type verifyCodeCmd struct{}

func (verifyCodeCmd) Name() string        { return "verify-code" }
func (verifyCodeCmd) Description() string { return "Check a password reset code" }
func (verifyCodeCmd) Usage() string       { return "verify-code <email> <code>" }

func (verifyCodeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		m, err := svc.VerifyResetCode(ctx, model.VerifyResetCodeRequest{Email: args[0], Code: args[1]})
		if err != nil {
			return err
		}
		printMessage(m)
		return nil
	})
}

type resetPasswordCmd struct{}

func (resetPasswordCmd) Name() string        { return "reset-password" }
func (resetPasswordCmd) Description() string { return "Set a new password using a reset code" }
func (resetPasswordCmd) Usage() string       { return "reset-password <email> <code> <new_password>" }

func (resetPasswordCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	return withAuthService(ctx, cfg, func(svc service.AuthService) error {
		m, err := svc.ResetPassword(ctx, model.ResetPasswordRequest{Email: args[0], Code: args[1], NewPassword: args[2]})
		if err != nil {
			return err
		}
		printMessage(m)
		return nil
	})
}

func printMessage(m *model.MessageResponse) {
	msg := m.Message
	if msg == "" {
		msg = "OK"
	}
	fmt.Fprintln(Out, view.SuccessStyle.Render(msg))
	if m.DebugCode != "" {
		fmt.Fprintln(Out, view.DimStyle.Render("debug code: "+m.DebugCode))
	}
}

func init() {
	RegisterCmd(forgotPasswordCmd{})
	RegisterCmd(verifyCodeCmd{})
	RegisterCmd(resetPasswordCmd{})
}
