package ports

import (
	"context"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
)

// LoginResult is the payload returned by the login endpoint.
type LoginResult struct {
	Token    string
	Username string
}

// CatalogAPI is the REST API consumed by the client. Implementations map
// transport failures to NetworkError and non-2xx responses to StatusError.
type CatalogAPI interface {
	Login(ctx context.Context, creds catalog.Credentials) (LoginResult, error)
	Register(ctx context.Context, creds catalog.Credentials) error
	ListBooks(ctx context.Context) ([]catalog.Book, error)
	CreateBook(ctx context.Context, input catalog.BookInput) (catalog.Book, error)
	UpdateBook(ctx context.Context, id int64, update catalog.BookUpdate) (catalog.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}
