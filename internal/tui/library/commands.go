package library

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
)

func (m Model) requestContext() context.Context {
	if m.ctx != nil {
		return m.ctx
	}
	return context.Background()
}

// loginCmd authenticates in the background.
func loginCmd(ctx context.Context, svc Service, creds catalog.Credentials) tea.Cmd {
	return func() tea.Msg {
		snapshot, err := svc.Login(ctx, creds)
		if err != nil {
			return LoginFailedMsg{Err: err}
		}
		return LoggedInMsg{Session: snapshot}
	}
}

// registerCmd creates an account in the background.
func registerCmd(ctx context.Context, svc Service, creds catalog.Credentials) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Register(ctx, creds); err != nil {
			return RegisterFailedMsg{Err: err}
		}
		return RegisteredMsg{}
	}
}

// logoutCmd clears the session.
func logoutCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		return LoggedOutMsg{Err: svc.Logout(ctx)}
	}
}

// fetchBooksCmd loads the whole list.
func fetchBooksCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		books, err := svc.ListBooks(ctx)
		if err != nil {
			return BooksFailedMsg{Err: err}
		}
		return BooksLoadedMsg{Books: books}
	}
}

// fetchCategoriesCmd loads the category choices for the create form.
func fetchCategoriesCmd(ctx context.Context, svc Service) tea.Cmd {
	return func() tea.Msg {
		categories, err := svc.ListCategories(ctx)
		if err != nil {
			return CategoriesFailedMsg{Err: err}
		}
		return CategoriesLoadedMsg{Categories: categories}
	}
}

// createBookCmd submits the create form.
func createBookCmd(ctx context.Context, svc Service, input catalog.BookInput) tea.Cmd {
	return func() tea.Msg {
		book, err := svc.CreateBook(ctx, input)
		if err != nil {
			return BookCreateFailedMsg{Err: err}
		}
		return BookCreatedMsg{Book: book}
	}
}

// updateBookCmd saves an inline edit.
func updateBookCmd(ctx context.Context, svc Service, id int64, update catalog.BookUpdate) tea.Cmd {
	return func() tea.Msg {
		book, err := svc.UpdateBook(ctx, id, update)
		if err != nil {
			return BookUpdateFailedMsg{ID: id, Err: err}
		}
		return BookUpdatedMsg{ID: id, Book: book}
	}
}

// deleteBookCmd removes a confirmed book.
func deleteBookCmd(ctx context.Context, svc Service, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeleteBook(ctx, id); err != nil {
			return BookDeleteFailedMsg{ID: id, Err: err}
		}
		return BookDeletedMsg{ID: id}
	}
}

// expireToastCmd fires once the toast's lifetime is over.
func expireToastCmd(id int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}
