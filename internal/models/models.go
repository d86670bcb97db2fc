package models

// Book represents a book in the reading library.
type Book struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	ISBN           string `json:"isbn,omitempty"`
	HighlightCount int    `json:"highlight_count"`
	LastRead       string `json:"last_read,omitempty"`
}

// Highlight represents an annotated passage from a book.
type Highlight struct {
	ID        int    `json:"id"`
	BookID    int    `json:"book_id"`
	Text      string `json:"text"`
	Note      string `json:"note,omitempty"`
	Chapter   string `json:"chapter,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}
