// package formatter provides functions to export library data to various formats (CSV, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"readmark/internal/models"
)

// BooksToCSV converts a book list to CSV with columns: ID, Title, Author, ISBN, Highlights
func BooksToCSV(books []models.Book) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Author", "ISBN", "Highlights"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, book := range books {
		record := []string{
			strconv.Itoa(book.ID),
			book.Title,
			book.Author,
			book.ISBN,
			strconv.Itoa(book.HighlightCount),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HighlightsToMarkdown renders a book's highlights as a Markdown document with
// an optional cover image.
func HighlightsToMarkdown(book models.Book, highlights []models.Highlight, coverURL string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", book.Title))

	if coverURL != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", coverURL))
	}

	if book.Author != "" {
		buf.WriteString(fmt.Sprintf("**Author**: %s\n\n", book.Author))
	}
	buf.WriteString(fmt.Sprintf("**Highlights**: %d\n\n", len(highlights)))

	for _, h := range highlights {
		buf.WriteString(fmt.Sprintf("> %s\n", h.Text))
		if h.Note != "" {
			buf.WriteString(fmt.Sprintf("\n— %s\n", h.Note))
		}
		if h.Chapter != "" {
			buf.WriteString(fmt.Sprintf("\n*%s*\n", h.Chapter))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// ToJSON marshals data, optionally indented.
func ToJSON(data any, pretty bool) ([]byte, error) {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return out, nil
}
