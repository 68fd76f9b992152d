package library

import (
	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	"github.com/alexisbeaulieu97/libris/internal/session"
)

// Screen determines which top-level view to render.
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenLibrary
)

// Authentication Messages

// LoggedInMsg indicates the session was populated.
type LoggedInMsg struct {
	Session session.Snapshot
}

// LoginFailedMsg indicates a rejected or unreachable login.
type LoginFailedMsg struct {
	Err error
}

// RegisteredMsg indicates the account was created.
type RegisteredMsg struct{}

// RegisterFailedMsg indicates registration failed.
type RegisterFailedMsg struct {
	Err error
}

// LoggedOutMsg indicates the session was cleared.
type LoggedOutMsg struct {
	Err error
}

// Book List Messages

// BooksLoadedMsg carries a fresh copy of the book list.
type BooksLoadedMsg struct {
	Books []catalog.Book
}

// BooksFailedMsg indicates the list fetch failed.
type BooksFailedMsg struct {
	Err error
}

// CatalogChangedMsg is the data-changed signal bridged from the event
// publisher.
type CatalogChangedMsg struct{}

// Book Form Messages

// CategoriesLoadedMsg carries the category choices for the form.
type CategoriesLoadedMsg struct {
	Categories []catalog.Category
}

// CategoriesFailedMsg indicates the category fetch failed.
type CategoriesFailedMsg struct {
	Err error
}

// BookCreatedMsg indicates the create call succeeded.
type BookCreatedMsg struct {
	Book catalog.Book
}

// BookCreateFailedMsg indicates the create call failed.
type BookCreateFailedMsg struct {
	Err error
}

// Book Row Messages

// BookUpdatedMsg indicates the update call succeeded.
type BookUpdatedMsg struct {
	ID   int64
	Book catalog.Book
}

// BookUpdateFailedMsg indicates the update call failed.
type BookUpdateFailedMsg struct {
	ID  int64
	Err error
}

// BookDeletedMsg indicates the delete call succeeded.
type BookDeletedMsg struct {
	ID int64
}

// BookDeleteFailedMsg indicates the delete call failed.
type BookDeleteFailedMsg struct {
	ID  int64
	Err error
}

// Notification Messages

// ToastExpiredMsg removes a toast.
type ToastExpiredMsg struct {
	ID int
}

// ThemeAppliedMsg indicates the visual class changed outside of Update,
// typically because the OS scheme flipped while in system mode.
type ThemeAppliedMsg struct{}
