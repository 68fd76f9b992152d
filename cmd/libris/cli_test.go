package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/libris/internal/infrastructure/api/apitest"
	"github.com/alexisbeaulieu97/libris/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/libris/internal/theme"
)

const (
	testUser     = "alice"
	testPassword = "secret1"
)

// cliHarness runs commands the way separate invocations would: each run gets
// a fresh AppContext sharing only the state file and the fake API.
type cliHarness struct {
	t      *testing.T
	server *apitest.Server
	home   string
	state  string
	apiURL string
}

func newCLI(t *testing.T) *cliHarness {
	t.Helper()

	server := apitest.NewServer(t)
	home := t.TempDir()
	return &cliHarness{
		t:      t,
		server: server,
		home:   home,
		state:  filepath.Join(home, "state.yaml"),
		apiURL: server.URL,
	}
}

func (h *cliHarness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()

	app := &AppContext{
		HomeDir:   h.home,
		EnvFile:   filepath.Join(h.home, "absent.env"),
		LookupEnv: func(string) (string, bool) { return "", false },
		LogWriter: io.Discard,
		Scheme:    theme.NewStaticScheme(false),
	}
	h.t.Cleanup(app.Close)

	root := newRootCmd(app)
	stdout := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--api-url", h.apiURL, "--state", h.state))

	err := root.Execute()
	return stdout.String(), err
}

func (h *cliHarness) login() {
	h.t.Helper()

	h.server.AddUser(testUser, testPassword)
	out, err := h.run(testPassword+"\n", "login", "--username", testUser)
	require.NoError(h.t, err)
	require.Contains(h.t, out, "Logged in as alice")
}

func (h *cliHarness) storedValue(key string) (string, bool) {
	h.t.Helper()

	store, err := storage.NewFileStore(h.state)
	require.NoError(h.t, err)
	return store.Get(key)
}
