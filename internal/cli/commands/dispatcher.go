package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"donee/internal/cli/api"
	"donee/internal/cli/view"
	"donee/internal/config"
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	// If user passed global --help after flags parsing, show global usage
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" { // donee help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 0
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	default:
		logger.Debugw("command failed", "command", name, "status", api.StatusOf(err), "error", err)
		fmt.Fprintln(Out, renderCommandError(name, err))
		if api.StatusOf(err) == http.StatusUnauthorized && name != "login" {
			fmt.Fprintln(Out, view.DimStyle.Render("hint: run `donee login <email> <password>` first"))
		}
		return 1
	}
}

// renderCommandError выводит ошибку через тот же контейнер ошибок, что и формы.
func renderCommandError(name string, err error) string {
	box := view.NewElement("#error", view.KindError, "")
	view.ClearError(box)
	view.ShowError(box, fmt.Sprintf("%s error: %v", name, err))
	return view.NewDocument(box).Render()
}
