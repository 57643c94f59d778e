package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/AntonStoeckl/library-management-api/app/features/command/registeruser"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/config"
	"github.com/AntonStoeckl/library-management-api/app/shared/shell/jwtauth"
)

func createUser(
	ctx context.Context,
	cfg config.AppConfig,
	username string,
	in io.Reader,
	out io.Writer,
	now time.Time,
) error {

	if err := cfg.Validate(); err != nil {
		return err
	}

	password, err := readPassword(in, out)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	rt, err := openRuntime(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close(context.Background()) }()

	issuer, err := jwtauth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}

	result, err := registeruser.NewCommandHandler(rt.store, issuer).
		Handle(ctx, registeruser.BuildCommand(username, password, now))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "%s username=%s id=%d\n", result.Value.Message, result.Value.User.Username, result.Value.UserID)

	return err
}

// readPassword prompts without echo on a terminal and reads one line otherwise, so the command
// also works in scripts.
func readPassword(in io.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(out, "Password: ")

		password, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(out)

		return string(password), err
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
