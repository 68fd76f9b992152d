// Package catalog holds the use cases shared by the terminal UI and the CLI
// subcommands: authentication and book management against the REST API.
package catalog

import (
	"context"
	"errors"
	"fmt"

	domaincatalog "github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	"github.com/alexisbeaulieu97/libris/internal/logger"
	"github.com/alexisbeaulieu97/libris/internal/ports"
	"github.com/alexisbeaulieu97/libris/internal/session"
)

// ErrMissingToken is returned when a login succeeded at the HTTP level but
// the response carried no token.
var ErrMissingToken = errors.New("login response did not include a token")

// Service coordinates the REST API, the session and the event publisher.
type Service struct {
	api     ports.CatalogAPI
	session *session.Store
	events  ports.EventPublisher
	logger  ports.Logger
}

// NewService constructs a Service with dependencies injected.
func NewService(api ports.CatalogAPI, sess *session.Store, events ports.EventPublisher, log ports.Logger) *Service {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Service{api: api, session: sess, events: events, logger: log}
}

// Login authenticates and, on success, makes the returned token the active
// session. The username stored is the one echoed by the server, or the
// submitted one when the server omitted it.
func (s *Service) Login(ctx context.Context, creds domaincatalog.Credentials) (session.Snapshot, error) {
	if err := domaincatalog.Validate(creds); err != nil {
		return session.Snapshot{}, err
	}

	s.logger.Info(ctx, "logging in", "username", creds.Username)
	result, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logger.Warn(ctx, "login failed", "username", creds.Username, "error", err)
		return session.Snapshot{}, err
	}
	if result.Token == "" {
		s.logger.Warn(ctx, "login response without token", "username", creds.Username)
		return session.Snapshot{}, ErrMissingToken
	}

	username := result.Username
	if username == "" {
		username = creds.Username
	}
	if err := s.session.Login(result.Token, username); err != nil {
		return session.Snapshot{}, fmt.Errorf("login: %w", err)
	}

	publishEvent(ctx, s.events, s.logger, ports.EventLoggedIn, map[string]interface{}{
		"username": username,
	})
	return s.session.Snapshot(), nil
}

// Register creates an account. It never authenticates.
func (s *Service) Register(ctx context.Context, creds domaincatalog.Credentials) error {
	if err := domaincatalog.Validate(creds); err != nil {
		return err
	}

	s.logger.Info(ctx, "registering", "username", creds.Username)
	if err := s.api.Register(ctx, creds); err != nil {
		s.logger.Warn(ctx, "registration failed", "username", creds.Username, "error", err)
		return err
	}
	return nil
}

// Logout clears the session from memory and durable storage.
func (s *Service) Logout(ctx context.Context) error {
	username := s.session.Username()
	if err := s.session.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info(ctx, "logged out", "username", username)
	publishEvent(ctx, s.events, s.logger, ports.EventLoggedOut, map[string]interface{}{
		"username": username,
	})
	return nil
}

// ListBooks fetches every book.
func (s *Service) ListBooks(ctx context.Context) ([]domaincatalog.Book, error) {
	books, err := s.api.ListBooks(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to fetch books", "error", err)
		return nil, err
	}
	s.logger.Debug(ctx, "fetched books", "count", len(books))
	return books, nil
}

// ListCategories fetches the category choices.
func (s *Service) ListCategories(ctx context.Context) ([]domaincatalog.Category, error) {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to fetch categories", "error", err)
		return nil, err
	}
	return categories, nil
}

// CreateBook validates input, creates the book and signals a catalog change.
func (s *Service) CreateBook(ctx context.Context, input domaincatalog.BookInput) (domaincatalog.Book, error) {
	if err := domaincatalog.Validate(input); err != nil {
		return domaincatalog.Book{}, err
	}

	book, err := s.api.CreateBook(ctx, input)
	if err != nil {
		s.logger.Warn(ctx, "failed to add book", "title", input.Title, "error", err)
		return domaincatalog.Book{}, err
	}

	s.logger.Info(ctx, "book added", "book_id", book.ID, "title", input.Title)
	s.changed(ctx, ports.EventBookCreated, map[string]interface{}{
		"book_id": book.ID,
		"title":   input.Title,
	})
	return book, nil
}

// UpdateBook validates the full field set, updates the book and signals a
// catalog change.
func (s *Service) UpdateBook(ctx context.Context, id int64, update domaincatalog.BookUpdate) (domaincatalog.Book, error) {
	if err := domaincatalog.Validate(update); err != nil {
		return domaincatalog.Book{}, err
	}

	book, err := s.api.UpdateBook(ctx, id, update)
	if err != nil {
		s.logger.Warn(ctx, "failed to update book", "book_id", id, "error", err)
		return domaincatalog.Book{}, err
	}

	s.logger.Info(ctx, "book updated", "book_id", id)
	s.changed(ctx, ports.EventBookUpdated, map[string]interface{}{
		"book_id": id,
	})
	return book, nil
}

// DeleteBook removes the book and signals a catalog change.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	if err := s.api.DeleteBook(ctx, id); err != nil {
		s.logger.Warn(ctx, "failed to delete book", "book_id", id, "error", err)
		return err
	}

	s.logger.Info(ctx, "book deleted", "book_id", id)
	s.changed(ctx, ports.EventBookDeleted, map[string]interface{}{
		"book_id": id,
	})
	return nil
}

func (s *Service) changed(ctx context.Context, eventType string, payload map[string]interface{}) {
	publishEvent(ctx, s.events, s.logger, eventType, payload)
	publishEvent(ctx, s.events, s.logger, ports.EventCatalogChanged, map[string]interface{}{
		"cause": eventType,
	})
}
