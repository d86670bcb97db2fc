package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"readmark/internal/shared"
)

// Cover resolves a cover image URL for the given title/author/ISBN.
func (r *Runner) Cover(ctx context.Context, cmd *cli.Command) error {
	title := cmd.Args().First()
	if title == "" {
		return fmt.Errorf("%w: book title", shared.ErrMissingArgument)
	}

	store, err := r.openCoverStore()
	if err != nil {
		return err
	}

	resolver := r.newResolver(store)
	coverURL := resolver.ResolveCoverURL(ctx, title, cmd.String("author"), cmd.String("isbn"))
	if coverURL == "" {
		return r.writePlainln("no cover found")
	}

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(coverURL); err != nil {
			r.logger.Warn("could not open browser", "err", err)
		}
	}

	return r.writePlainln("%s", coverURL)
}
