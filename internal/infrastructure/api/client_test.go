package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	"github.com/alexisbeaulieu97/libris/internal/infrastructure/api/apitest"
	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestLoginReturnsTokenAndUsername(t *testing.T) {
	t.Parallel()

	server := apitest.NewServer(t)
	server.AddUser("alice", "secret1")

	client := NewClient(server.URL)
	result, err := client.Login(context.Background(), catalog.Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, apitest.Token, result.Token)
	assert.Equal(t, "alice", result.Username)
}

func TestLoginMapsServerMessage(t *testing.T) {
	t.Parallel()

	server := apitest.NewServer(t)

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), catalog.Credentials{Username: "alice", Password: "wrongpw"})
	require.Error(t, err)

	var statusErr *librisErrors.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "bad credentials", statusErr.Message)
}

func TestStatusErrorWithoutJSONBodyHasEmptyMessage(t *testing.T) {
	t.Parallel()

	server := apitest.NewServer(t)
	server.Fail(apitest.RouteRegister, apitest.Failure{Status: http.StatusInternalServerError, Body: "<html>oops</html>"})

	client := NewClient(server.URL)
	err := client.Register(context.Background(), catalog.Credentials{Username: "alice", Password: "secret1"})

	var statusErr *librisErrors.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Empty(t, statusErr.Message)
	assert.Equal(t, "fallback", librisErrors.UserMessage(err, "fallback"))
}

func TestRegisterAcceptsNonJSONSuccessBody(t *testing.T) {
	t.Parallel()

	server := apitest.NewServer(t)

	client := NewClient(server.URL)
	err := client.Register(context.Background(), catalog.Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, 1, server.Calls(apitest.RouteRegister))
}

func TestAuthenticatedCallsSendBearerToken(t *testing.T) {
	t.Parallel()

	server := apitest.NewServer(t)
	server.AddBook(catalog.Book{Title: "Dune", Author: "Herbert", PageCount: 412})

	client := NewClient(server.URL, WithTokenSource(staticToken(apitest.Token)))
	books, err := client.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Bearer "+apitest.Token, server.LastAuthorization())
}

func TestMissingTokenIsRejected(t *testing.T) {
	t.Parallel()

	server := apitest.NewServer(t)

	client := NewClient(server.URL, WithTokenSource(staticToken("")))
	_, err := client.ListBooks(context.Background())
	assert.True(t, librisErrors.IsStatus(err, http.StatusUnauthorized))
	assert.Empty(t, server.LastAuthorization())
}

func TestCreateBookSendsWireFields(t *testing.T) {
	t.Parallel()

	var received map[string]interface{}
	router := mux.NewRouter()
	router.HandleFunc("/api/kitaplar/addBook", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":9,"isim":"Dune","yazar":"Herbert","sayfaSayisi":412,"category":{"id":2,"isim":"Sci-Fi"}}`))
	}).Methods(http.MethodPost)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, WithTokenSource(staticToken("tok")))
	categoryID := int64(2)
	book, err := client.CreateBook(context.Background(), catalog.BookInput{
		Title: "Dune", Author: "Herbert", PageCount: 412, CategoryID: &categoryID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dune", received["isim"])
	assert.Equal(t, "Herbert", received["yazar"])
	assert.Equal(t, float64(412), received["sayfaSayisi"])
	assert.Equal(t, float64(2), received["categoryId"])
	assert.Equal(t, int64(9), book.ID)
	assert.Equal(t, "Sci-Fi", book.CategoryName())
}

func TestCreateBookSendsNullCategory(t *testing.T) {
	t.Parallel()

	var received map[string]interface{}
	router := mux.NewRouter()
	router.HandleFunc("/api/kitaplar/addBook", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodPost)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := NewClient(server.URL)
	_, err := client.CreateBook(context.Background(), catalog.BookInput{Title: "Dune", Author: "Herbert", PageCount: 412})
	require.NoError(t, err)

	value, present := received["categoryId"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestUpdateAndDeleteUseIDInPath(t *testing.T) {
	t.Parallel()

	server := apitest.NewServer(t)
	id := server.AddBook(catalog.Book{Title: "Dune", Author: "Herbert", PageCount: 412})

	client := NewClient(server.URL, WithTokenSource(staticToken(apitest.Token)))
	updated, err := client.UpdateBook(context.Background(), id, catalog.BookUpdate{Title: "Dune", Author: "Frank Herbert", PageCount: 500})
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", updated.Author)
	assert.Equal(t, 500, updated.PageCount)

	require.NoError(t, client.DeleteBook(context.Background(), id))
	assert.Empty(t, server.Books())

	err = client.DeleteBook(context.Background(), id)
	assert.True(t, librisErrors.IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "Book not found", librisErrors.UserMessage(err, ""))
}

func TestListCategories(t *testing.T) {
	t.Parallel()

	server := apitest.NewServer(t)
	server.AddCategory(1, "Fiction")
	server.AddCategory(2, "Science")

	client := NewClient(server.URL, WithTokenSource(staticToken(apitest.Token)))
	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Science", categories[1].Name)
}

func TestListBooksNullBodyIsEmpty(t *testing.T) {
	t.Parallel()

	router := mux.NewRouter()
	router.HandleFunc("/api/kitaplar", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("null"))
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	books, err := NewClient(server.URL).ListBooks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, WithTimeout(time.Second))
	_, err := client.ListCategories(context.Background())
	require.Error(t, err)
	assert.True(t, librisErrors.IsNetwork(err))
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultBaseURL, NewClient("  ").BaseURL())
	assert.Equal(t, "http://example.test", NewClient("http://example.test/").BaseURL())
}
