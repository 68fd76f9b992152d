// Package apitest provides an in-memory fake of the library REST API for
// tests, routed with gorilla/mux and served through httptest.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
)

// Token is the bearer token issued by the fake for every successful login.
const Token = "test-token"

// Failure is a canned error response for a route.
type Failure struct {
	Status int
	// Body is written verbatim. Empty means no body.
	Body string
}

// Server is a stateful fake library API.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	users      map[string]string
	books      []catalog.Book
	categories []catalog.Category
	nextID     int64
	calls      map[string]int
	failures   map[string]Failure
	noToken    bool
	lastAuth   string
}

// NewServer starts a fake server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		users:    make(map[string]string),
		nextID:   1,
		calls:    make(map[string]int),
		failures: make(map[string]Failure),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// Route names accepted by Calls and Fail.
const (
	RouteLogin          = "login"
	RouteRegister       = "register"
	RouteListBooks      = "list-books"
	RouteAddBook        = "add-book"
	RouteUpdateBook     = "update-book"
	RouteDeleteBook     = "delete-book"
	RouteListCategories = "list-categories"
)

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", s.track(RouteLogin, false, s.handleLogin)).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/register", s.track(RouteRegister, false, s.handleRegister)).Methods(http.MethodPost)
	r.HandleFunc("/api/kitaplar", s.track(RouteListBooks, true, s.handleListBooks)).Methods(http.MethodGet)
	r.HandleFunc("/api/kitaplar/addBook", s.track(RouteAddBook, true, s.handleAddBook)).Methods(http.MethodPost)
	r.HandleFunc("/api/kitaplar/update/{id:[0-9]+}", s.track(RouteUpdateBook, true, s.handleUpdateBook)).Methods(http.MethodPut)
	r.HandleFunc("/api/kitaplar/delete/{id:[0-9]+}", s.track(RouteDeleteBook, true, s.handleDeleteBook)).Methods(http.MethodDelete)
	r.HandleFunc("/api/kategoriler", s.track(RouteListCategories, true, s.handleListCategories)).Methods(http.MethodGet)
	return r
}

func (s *Server) track(route string, auth bool, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[route]++
		failure, failing := s.failures[route]
		if auth {
			s.lastAuth = r.Header.Get("Authorization")
		}
		s.mu.Unlock()

		if failing {
			if failure.Body != "" {
				w.Header().Set("Content-Type", "application/json")
			}
			w.WriteHeader(failure.Status)
			_, _ = w.Write([]byte(failure.Body))
			return
		}
		if auth && r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		next(w, r)
	}
}

// AddUser registers credentials the fake accepts at login.
func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// AddCategory seeds a category.
func (s *Server) AddCategory(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, catalog.Category{ID: id, Name: name})
}

// AddBook seeds a book and returns its assigned id.
func (s *Server) AddBook(book catalog.Book) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	book.ID = s.nextID
	s.nextID++
	s.books = append(s.books, book)
	return book.ID
}

// Books returns a copy of the stored books.
func (s *Server) Books() []catalog.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]catalog.Book{}, s.books...)
}

// Fail makes every call to route return the given failure.
func (s *Server) Fail(route string, failure Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure
}

// OmitToken makes successful logins respond without a token.
func (s *Server) OmitToken() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noToken = true
}

// Calls returns how many requests reached route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// LastAuthorization returns the Authorization header of the latest
// authenticated request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	password, ok := s.users[creds.Username]
	noToken := s.noToken
	s.mu.Unlock()

	if !ok || password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad credentials"})
		return
	}
	if noToken {
		writeJSON(w, http.StatusOK, map[string]string{"username": creds.Username})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": Token, "username": creds.Username})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[creds.Username]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already exists"})
		return
	}
	s.users[creds.Username] = creds.Password
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("User registered successfully"))
}

func (s *Server) handleListBooks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Books())
}

type bookBody struct {
	Title      string `json:"isim"`
	Author     string `json:"yazar"`
	PageCount  int    `json:"sayfaSayisi"`
	CategoryID *int64 `json:"categoryId"`
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var body bookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	book := catalog.Book{
		ID:        s.nextID,
		Title:     body.Title,
		Author:    body.Author,
		PageCount: body.PageCount,
		Category:  s.categoryLocked(body.CategoryID),
	}
	s.nextID++
	s.books = append(s.books, book)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	var body bookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID != id {
			continue
		}
		s.books[i].Title = body.Title
		s.books[i].Author = body.Author
		s.books[i].PageCount = body.PageCount
		writeJSON(w, http.StatusOK, s.books[i])
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			w.WriteHeader(http.StatusOK)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Book not found"})
}

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	categories := append([]catalog.Category{}, s.categories...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) categoryLocked(id *int64) *catalog.Category {
	if id == nil {
		return nil
	}
	for _, category := range s.categories {
		if category.ID == *id {
			c := category
			return &c
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
