package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	"github.com/alexisbeaulieu97/libris/internal/infrastructure/api/apitest"
)

func TestLoginStoresTokenAndUsernameTogether(t *testing.T) {
	h := newCLI(t)
	h.login()

	token, ok := h.storedValue("token")
	require.True(t, ok)
	require.Equal(t, apitest.Token, token)
	username, ok := h.storedValue("username")
	require.True(t, ok)
	require.Equal(t, testUser, username)

	out, err := h.run("", "whoami")
	require.NoError(t, err)
	require.Equal(t, "alice\n", out)
}

func TestLoginPromptsForUsername(t *testing.T) {
	h := newCLI(t)
	h.server.AddUser(testUser, testPassword)

	out, err := h.run(testUser+"\n"+testPassword+"\n", "login")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as alice")
}

func TestLoginShowsServerMessageAndLeavesSessionUnset(t *testing.T) {
	h := newCLI(t)
	h.server.AddUser(testUser, testPassword)

	_, err := h.run("wrong-password\n", "login", "-u", testUser)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to log in: bad credentials")

	_, ok := h.storedValue("token")
	require.False(t, ok)
	_, ok = h.storedValue("username")
	require.False(t, ok)

	out, err := h.run("", "whoami")
	require.NoError(t, err)
	require.Equal(t, "Not logged in\n", out)
}

func TestLoginFallsBackWhenServerSendsNoMessage(t *testing.T) {
	h := newCLI(t)
	h.server.Fail(apitest.RouteLogin, apitest.Failure{Status: http.StatusUnauthorized})

	_, err := h.run(testPassword+"\n", "login", "-u", testUser)
	require.Error(t, err)
	require.Contains(t, err.Error(), catalog.MsgInvalidCredentials)
}

func TestLoginWithoutTokenFails(t *testing.T) {
	h := newCLI(t)
	h.server.AddUser(testUser, testPassword)
	h.server.OmitToken()

	_, err := h.run(testPassword+"\n", "login", "-u", testUser)
	require.Error(t, err)
	require.Contains(t, err.Error(), catalog.MsgInvalidCredentials)

	_, ok := h.storedValue("token")
	require.False(t, ok)
}

func TestLoginReportsUnreachableServer(t *testing.T) {
	h := newCLI(t)
	h.server.Close()

	_, err := h.run(testPassword+"\n", "login", "-u", testUser)
	require.Error(t, err)
	require.Contains(t, err.Error(), catalog.MsgConnectFailed)
}

func TestLoginRejectsShortPasswordWithoutRequest(t *testing.T) {
	h := newCLI(t)

	_, err := h.run("abc\n", "login", "-u", testUser)
	require.Error(t, err)
	require.Equal(t, 0, h.server.Calls(apitest.RouteLogin))
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	h := newCLI(t)

	out, err := h.run(testPassword+"\n", "register", "-u", testUser)
	require.NoError(t, err)
	require.Contains(t, out, catalog.MsgRegistrationComplete)

	_, ok := h.storedValue("token")
	require.False(t, ok)

	out, err = h.run(testPassword+"\n", "login", "-u", testUser)
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as alice")
}

func TestRegisterShowsConflictMessage(t *testing.T) {
	h := newCLI(t)
	h.server.AddUser(testUser, testPassword)

	_, err := h.run(testPassword+"\n", "register", "-u", testUser)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Username already exists")
}

func TestLogoutClearsTokenAndUsername(t *testing.T) {
	h := newCLI(t)
	h.login()

	out, err := h.run("", "logout")
	require.NoError(t, err)
	require.Equal(t, "Logged out\n", out)

	_, ok := h.storedValue("token")
	require.False(t, ok)
	_, ok = h.storedValue("username")
	require.False(t, ok)

	out, err = h.run("", "logout")
	require.NoError(t, err)
	require.Equal(t, "Not logged in\n", out)
}

func TestEphemeralSessionIsNotPersisted(t *testing.T) {
	h := newCLI(t)
	h.server.AddUser(testUser, testPassword)

	_, err := h.run(testPassword+"\n", "login", "-u", testUser, "--ephemeral")
	require.NoError(t, err)

	_, ok := h.storedValue("token")
	require.False(t, ok)
}

func TestMissingExplicitConfigFails(t *testing.T) {
	h := newCLI(t)

	_, err := h.run("", "whoami", "--config", h.home+"/nope.yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "loading configuration")
}
