package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"readmark/internal/formatter"
	"readmark/internal/models"
	"readmark/internal/shared"
)

// BooksList prints the library's books as a table, JSON, or CSV.
func (r *Runner) BooksList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.loadSessionToken(); err != nil {
		return err
	}

	books, err := r.library.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(books, true)
	case cmd.Bool("csv"):
		data, err := formatter.BooksToCSV(books)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	default:
		for _, book := range books {
			if err := r.writePlainln("%4d  %s / %s (%d highlights)", book.ID, book.Title, book.Author, book.HighlightCount); err != nil {
				return err
			}
		}
		return nil
	}
}

// BookHighlights exports one book's highlights as Markdown, optionally with a
// resolved cover image.
func (r *Runner) BookHighlights(ctx context.Context, cmd *cli.Command) error {
	idArg := cmd.Args().First()
	if idArg == "" {
		return fmt.Errorf("%w: book id", shared.ErrMissingArgument)
	}
	bookID, err := strconv.Atoi(idArg)
	if err != nil {
		return fmt.Errorf("%w: book id must be a number", shared.ErrInvalidInput)
	}

	if _, err := r.loadSessionToken(); err != nil {
		return err
	}

	books, err := r.library.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to list books: %w", err)
	}

	var book *models.Book
	for i := range books {
		if books[i].ID == bookID {
			book = &books[i]
			break
		}
	}
	if book == nil {
		return fmt.Errorf("%w: no book with id %d", shared.ErrInvalidInput, bookID)
	}

	highlights, err := r.library.ListHighlights(ctx, bookID)
	if err != nil {
		return fmt.Errorf("failed to fetch highlights: %w", err)
	}

	coverURL := ""
	if cmd.Bool("cover") {
		store, err := r.openCoverStore()
		if err != nil {
			return err
		}
		coverURL = r.newResolver(store).ResolveCoverURL(ctx, book.Title, book.Author, book.ISBN)
	}

	_, err = r.output.Write(formatter.HighlightsToMarkdown(*book, highlights, coverURL))
	return err
}
