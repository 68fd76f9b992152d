// Package library is the interactive terminal interface: the authentication
// view and, once signed in, the book list with its create form, inline row
// editing and delete confirmation.
package library

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	"github.com/alexisbeaulieu97/libris/internal/logger"
	"github.com/alexisbeaulieu97/libris/internal/ports"
	"github.com/alexisbeaulieu97/libris/internal/session"
	"github.com/alexisbeaulieu97/libris/internal/theme"
)

// Service is the subset of the catalog use cases the interface drives.
type Service interface {
	Login(ctx context.Context, creds catalog.Credentials) (session.Snapshot, error)
	Register(ctx context.Context, creds catalog.Credentials) error
	Logout(ctx context.Context) error
	ListBooks(ctx context.Context) ([]catalog.Book, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateBook(ctx context.Context, input catalog.BookInput) (catalog.Book, error)
	UpdateBook(ctx context.Context, id int64, update catalog.BookUpdate) (catalog.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// Options configures a Model.
type Options struct {
	Service Service
	// Session is read once to decide the initial screen.
	Session session.Snapshot
	Events  ports.EventPublisher
	Relay   *Relay
	Theme   *theme.Store
	Logger  ports.Logger
	// Context is passed to every request. Defaults to context.Background.
	Context  context.Context
	ToastTTL time.Duration
}

// Model is the root bubbletea model.
type Model struct {
	// Dependencies
	service Service
	events  ports.EventPublisher
	relay   *Relay
	theme   *theme.Store
	logger  ports.Logger
	ctx     context.Context

	// Session state
	screen   Screen
	username string
	changes  ports.Subscription

	// Views
	auth authView
	list bookList
	form bookForm
	rows bookRows

	// Component state
	spinner spinner.Model
	toasts  toasts
	styles  styles

	// Dimensions
	width  int
	height int
}

// NewModel creates the root model. An authenticated snapshot starts on the
// library screen.
func NewModel(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOp()
	}

	m := Model{
		service: opts.Service,
		events:  opts.Events,
		relay:   opts.Relay,
		theme:   opts.Theme,
		logger:  log.With("component", "tui"),
		ctx:     opts.Context,
		screen:  ScreenAuth,
		auth:    newAuthView(),
		form:    newBookForm(),
		rows:    newBookRows(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		toasts:  toasts{ttl: opts.ToastTTL},
		width:   80,
		height:  24,
	}
	m.refreshStyles()

	if opts.Session.Authenticated() {
		m.screen = ScreenLibrary
		m.username = opts.Session.Username
		m.changes = subscribeCatalogChanges(m.events, m.relay)
		m.list.pending = 1
	}
	return m
}

// Init loads the list when already signed in.
func (m Model) Init() tea.Cmd {
	if m.screen != ScreenLibrary {
		return m.auth.focusCmd()
	}
	return tea.Batch(m.spinner.Tick, fetchBooksCmd(m.requestContext(), m.service))
}

// Close releases the data-changed subscription. The caller invokes it on the
// final model once the program exits.
func (m Model) Close() {
	if m.changes != nil {
		m.changes.Unsubscribe()
	}
}

// Screen reports the active top-level view.
func (m Model) Screen() Screen {
	return m.screen
}

// Username reports the signed-in user shown in the header.
func (m Model) Username() string {
	return m.username
}

// Books returns the list as last fetched.
func (m Model) Books() []catalog.Book {
	return m.list.books
}

// Toasts returns the visible notification texts.
func (m Model) Toasts() []string {
	return m.toasts.texts()
}

// enterLibrary switches to the signed-in state, subscribes to data changes
// and loads the list.
func (m *Model) enterLibrary() tea.Cmd {
	m.screen = ScreenLibrary
	if m.changes == nil {
		m.changes = subscribeCatalogChanges(m.events, m.relay)
	}
	return tea.Batch(m.spinner.Tick, m.fetchBooks())
}

func (m *Model) leaveLibrary() tea.Cmd {
	if m.changes != nil {
		m.changes.Unsubscribe()
		m.changes = nil
	}
	m.screen = ScreenAuth
	m.username = ""
	m.list = bookList{}
	m.form = newBookForm()
	m.rows = newBookRows()
	m.auth = newAuthView()
	return m.auth.focusCmd()
}

func (m *Model) fetchBooks() tea.Cmd {
	m.list.pending++
	return fetchBooksCmd(m.requestContext(), m.service)
}

func (m *Model) refreshStyles() {
	class := theme.ClassLight
	if m.theme != nil {
		class = m.theme.Applied()
	}
	m.styles = newStyles(theme.PaletteFor(class))
	m.spinner.Style = m.styles.spinner
}

func (m Model) themeMode() theme.Mode {
	if m.theme == nil {
		return theme.ModeSystem
	}
	return m.theme.Mode()
}
