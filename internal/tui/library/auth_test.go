package library

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	"github.com/alexisbeaulieu97/libris/internal/infrastructure/api/apitest"
	"github.com/alexisbeaulieu97/libris/internal/ports"
)

func (h *harness) fillAuth(username, password string) {
	h.model.auth.inputs[authFieldUsername].SetValue(username)
	h.model.auth.inputs[authFieldPassword].SetValue(password)
}

func TestLoginSuccessEntersLibrary(t *testing.T) {
	h := newHarness(t)
	h.server.AddBook(bookFixture("Dune"))

	h.fillAuth("alice", "secret1")
	h.key("enter")

	assert.Equal(t, ScreenLibrary, h.model.Screen())
	assert.Equal(t, "alice", h.model.Username())
	assert.Equal(t, apitest.Token, h.session.Token())
	assert.Equal(t, "alice", h.session.Username())
	assert.Equal(t, 1, h.server.Calls(apitest.RouteListBooks))
	assert.Len(t, h.model.Books(), 1)
	assert.Equal(t, 1, h.publisher.SubscriberCount(ports.EventCatalogChanged))
	assert.Contains(t, h.model.View(), "Welcome, alice")
}

func TestLoginBadCredentialsShowsServerMessage(t *testing.T) {
	h := newHarness(t)

	h.fillAuth("alice", "wrongpw")
	h.key("enter")

	assert.Equal(t, ScreenAuth, h.model.Screen())
	assert.Equal(t, "bad credentials", h.model.auth.message)
	assert.Equal(t, messageError, h.model.auth.kind)
	assert.False(t, h.model.auth.submitting)
	assert.False(t, h.session.Authenticated())
	_, stored := h.store.Get(ports.KeyToken)
	assert.False(t, stored)
}

func TestLoginWithoutServerMessageUsesFallback(t *testing.T) {
	h := newHarness(t)
	h.server.Fail(apitest.RouteLogin, apitest.Failure{Status: http.StatusInternalServerError})

	h.fillAuth("alice", "secret1")
	h.key("enter")

	assert.Equal(t, catalog.MsgInvalidCredentials, h.model.auth.message)
}

func TestLoginWithoutTokenIsFailure(t *testing.T) {
	h := newHarness(t)
	h.server.OmitToken()

	h.fillAuth("alice", "secret1")
	h.key("enter")

	assert.Equal(t, ScreenAuth, h.model.Screen())
	assert.Equal(t, catalog.MsgInvalidCredentials, h.model.auth.message)
	assert.False(t, h.session.Authenticated())
}

func TestLoginNetworkFailure(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()

	h := newHarness(t, withBaseURL(url))
	h.fillAuth("alice", "secret1")
	h.key("enter")

	assert.Equal(t, catalog.MsgConnectFailed, h.model.auth.message)
	assert.False(t, h.session.Authenticated())
}

func TestLoginValidationNeverReachesNetwork(t *testing.T) {
	h := newHarness(t)

	h.fillAuth("al", "secret1")
	h.key("enter")
	assert.Equal(t, "Username must be at least 3 characters", h.model.auth.message)

	h.fillAuth("alice", "123")
	h.key("enter")
	assert.Equal(t, "Password must be at least 6 characters", h.model.auth.message)

	assert.Equal(t, 0, h.server.Calls(apitest.RouteLogin))
}

func TestSubmitIgnoredWhileInFlight(t *testing.T) {
	h := newHarness(t)
	h.fillAuth("alice", "secret1")
	h.model.auth.submitting = true

	_, cmd := h.model.Update(keyMsg("enter"))
	assert.Nil(t, cmd)
}

func TestToggleModeClearsMessageAndPassword(t *testing.T) {
	h := newHarness(t)
	h.fillAuth("alice", "wrongpw")
	h.key("enter")
	require.NotEmpty(t, h.model.auth.message)

	h.key("ctrl+r")

	assert.True(t, h.model.auth.registering)
	assert.Empty(t, h.model.auth.message)
	assert.Empty(t, h.model.auth.inputs[authFieldPassword].Value())
	assert.Equal(t, "alice", h.model.auth.inputs[authFieldUsername].Value())
	assert.Contains(t, h.model.View(), "Register")
}

func TestRegisterSuccessReturnsToLogin(t *testing.T) {
	h := newHarness(t)
	h.key("ctrl+r")
	h.fillAuth("bob", "hunter22")
	h.key("enter")

	assert.Equal(t, 1, h.server.Calls(apitest.RouteRegister))
	assert.False(t, h.model.auth.registering)
	assert.Equal(t, catalog.MsgRegistrationComplete, h.model.auth.message)
	assert.Equal(t, messageSuccess, h.model.auth.kind)
	assert.Empty(t, h.model.auth.inputs[authFieldPassword].Value())
	assert.False(t, h.session.Authenticated())
}

func TestRegisterConflictShowsServerMessage(t *testing.T) {
	h := newHarness(t)
	h.key("ctrl+r")
	h.fillAuth("alice", "secret1")
	h.key("enter")

	assert.True(t, h.model.auth.registering)
	assert.Equal(t, "Username already exists", h.model.auth.message)
}

func TestTabMovesFocus(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, authFieldUsername, h.model.auth.focus)

	h.key("tab")
	assert.Equal(t, authFieldPassword, h.model.auth.focus)
	assert.True(t, h.model.auth.inputs[authFieldPassword].Focused())

	h.key("tab")
	assert.Equal(t, authFieldUsername, h.model.auth.focus)
}

func TestTypingGoesToFocusedInput(t *testing.T) {
	h := newHarness(t)

	h.key("a", "l", "i", "c", "e")
	assert.Equal(t, "alice", h.model.auth.inputs[authFieldUsername].Value())
}
