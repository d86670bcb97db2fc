package formatter

import (
	"strings"
	"testing"

	"readmark/internal/models"
)

func TestBooksToCSV(t *testing.T) {
	t.Run("Header And Rows", func(t *testing.T) {
		books := []models.Book{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", HighlightCount: 12},
			{ID: 2, Title: "The Trial", Author: "Franz Kafka", HighlightCount: 3},
		}

		out, err := BooksToCSV(books)
		if err != nil {
			t.Fatalf("BooksToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
		}
		if lines[0] != "ID,Title,Author,ISBN,Highlights" {
			t.Errorf("unexpected header %q", lines[0])
		}
		if lines[1] != "1,Dune,Frank Herbert,9780441013593,12" {
			t.Errorf("unexpected row %q", lines[1])
		}
	})

	t.Run("Quotes Embedded Commas", func(t *testing.T) {
		books := []models.Book{{ID: 1, Title: "Crime, and Punishment", Author: "Dostoevsky"}}
		out, err := BooksToCSV(books)
		if err != nil {
			t.Fatalf("BooksToCSV failed: %v", err)
		}
		if !strings.Contains(string(out), `"Crime, and Punishment"`) {
			t.Errorf("expected quoted title, got %q", out)
		}
	})

	t.Run("Empty List", func(t *testing.T) {
		out, err := BooksToCSV(nil)
		if err != nil {
			t.Fatalf("BooksToCSV failed: %v", err)
		}
		if strings.TrimSpace(string(out)) != "ID,Title,Author,ISBN,Highlights" {
			t.Errorf("expected header only, got %q", out)
		}
	})
}

func TestHighlightsToMarkdown(t *testing.T) {
	book := models.Book{ID: 1, Title: "Dune", Author: "Frank Herbert"}
	highlights := []models.Highlight{
		{ID: 10, BookID: 1, Text: "Fear is the mind-killer.", Chapter: "Chapter 1"},
		{ID: 11, BookID: 1, Text: "A beginning is a very delicate time.", Note: "opening line"},
	}

	t.Run("With Cover", func(t *testing.T) {
		out := string(HighlightsToMarkdown(book, highlights, "https://covers.example/dune.jpg"))
		if !strings.HasPrefix(out, "# Dune\n") {
			t.Errorf("expected title heading, got %q", out)
		}
		if !strings.Contains(out, "![Cover](https://covers.example/dune.jpg)") {
			t.Error("expected cover image line")
		}
		if !strings.Contains(out, "**Author**: Frank Herbert") {
			t.Error("expected author line")
		}
		if !strings.Contains(out, "> Fear is the mind-killer.") {
			t.Error("expected blockquoted highlight")
		}
		if !strings.Contains(out, "*Chapter 1*") {
			t.Error("expected chapter marker")
		}
		if !strings.Contains(out, "opening line") {
			t.Error("expected note text")
		}
	})

	t.Run("Without Cover", func(t *testing.T) {
		out := string(HighlightsToMarkdown(book, nil, ""))
		if strings.Contains(out, "![Cover]") {
			t.Error("expected no cover image line")
		}
		if !strings.Contains(out, "**Highlights**: 0") {
			t.Error("expected zero highlight count")
		}
	})
}

func TestToJSON(t *testing.T) {
	t.Run("Compact", func(t *testing.T) {
		out, err := ToJSON(map[string]int{"n": 1}, false)
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}
		if string(out) != `{"n":1}` {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		out, err := ToJSON(map[string]int{"n": 1}, true)
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}
		if !strings.Contains(string(out), "\n  \"n\": 1") {
			t.Errorf("expected indented output, got %q", out)
		}
	})

	t.Run("Unmarshalable Value", func(t *testing.T) {
		if _, err := ToJSON(func() {}, false); err == nil {
			t.Error("expected error for func value")
		}
	})
}
