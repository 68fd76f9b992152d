package catalog

// Category is a named grouping a book may optionally belong to. Categories
// are read-only from the client's perspective.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"isim"`
}

// Book is the client's transient copy of a server-owned book record. The
// server assigns ID; the client never derives or caches extra fields.
type Book struct {
	ID        int64     `json:"id"`
	Title     string    `json:"isim"`
	Author    string    `json:"yazar"`
	PageCount int       `json:"sayfaSayisi"`
	Category  *Category `json:"category"`
}

// CategoryName returns the category label or an empty string when the book
// is uncategorised.
func (b Book) CategoryName() string {
	if b.Category == nil {
		return ""
	}
	return b.Category.Name
}

// Update returns the full field set of b as an update payload.
func (b Book) Update() BookUpdate {
	return BookUpdate{Title: b.Title, Author: b.Author, PageCount: b.PageCount}
}

// BookInput holds the fields of a book to create. A nil CategoryID is sent as
// a null reference.
type BookInput struct {
	Title      string `json:"isim" validate:"required" label:"Title"`
	Author     string `json:"yazar" validate:"required" label:"Author"`
	PageCount  int    `json:"sayfaSayisi" validate:"min=1" label:"Pages"`
	CategoryID *int64 `json:"categoryId"`
}

// BookUpdate carries the complete editable field set. Updates are never
// partial.
type BookUpdate struct {
	Title     string `json:"isim" validate:"required" label:"Title"`
	Author    string `json:"yazar" validate:"required" label:"Author"`
	PageCount int    `json:"sayfaSayisi" validate:"min=1" label:"Pages"`
}
