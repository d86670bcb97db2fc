package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"readmark/internal/authgate"
	"readmark/internal/shared"
)

// AuthLogin authenticates against the backend and saves the session token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	password := cmd.String("password")
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password required", shared.ErrMissingArgument)
	}

	resp, err := r.library.Login(ctx, username, password)
	if err != nil {
		if shared.IsAuthRejected(err) {
			return fmt.Errorf("%w: incorrect username or password", shared.ErrNotAuthenticated)
		}
		return fmt.Errorf("login failed: %w", err)
	}

	session := &shared.Session{Token: resp.AccessToken, Username: resp.Username}
	if err := shared.SaveSession(r.config.Auth.SessionFile, session); err != nil {
		return err
	}

	r.logger.Info("logged in", "username", resp.Username)
	return r.writePlainln("session saved to %s", r.config.Auth.SessionFile)
}

// AuthVerify checks the saved session against the backend through the gate.
func (r *Runner) AuthVerify(ctx context.Context, cmd *cli.Command) error {
	session, err := r.loadSessionToken()
	if err != nil {
		return err
	}

	decision := r.newGate().Verify(ctx, session.Token)
	if decision == authgate.Allow {
		return r.writePlainln("session valid")
	}

	return fmt.Errorf("%w: session rejected, run 'readmark auth login'", shared.ErrNotAuthenticated)
}

// AuthImportCurl extracts a session token from a browser-copied cURL command.
func (r *Runner) AuthImportCurl(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("%w: path to a curl file", shared.ErrMissingArgument)
	}

	parsed, err := shared.ParseCurlFile(path)
	if err != nil {
		return err
	}

	session := &shared.Session{Token: parsed.Token}
	if err := shared.SaveSession(r.config.Auth.SessionFile, session); err != nil {
		return err
	}

	return r.writePlainln("session saved to %s", r.config.Auth.SessionFile)
}
