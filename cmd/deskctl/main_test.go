package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/librarian/internal/service"
	"github.com/mmynk/librarian/internal/storage/sqlite"
	"github.com/mmynk/librarian/pkg/api"
)

func newTestServer(t *testing.T) string {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle(api.NewBookServiceHandler(service.NewBookService(store)))
	mux.Handle(api.NewUserServiceHandler(service.NewUserService(store)))
	mux.Handle(api.NewLoanServiceHandler(service.NewLoanService(store, nil)))
	mux.Handle(api.NewStatsServiceHandler(service.NewStatsService(store)))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server.URL
}

func run(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--server", url, "--locale", "en"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestDeskctlLoanFlow(t *testing.T) {
	url := newTestServer(t)

	_, err := run(t, url, "books", "add", "--title", "The Hobbit", "--author", "Tolkien")
	require.NoError(t, err)
	_, err = run(t, url, "books", "add", "--title", "Dune", "--author", "Herbert")
	require.NoError(t, err)
	_, err = run(t, url, "users", "add", "--name", "Sara", "--phone", "0551234567")
	require.NoError(t, err)

	out, err := run(t, url, "loans", "issue", "--scan", "999", "--user", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No book found with code: 999")

	out, err = run(t, url, "loans", "issue", "--book", "hobbit", "--user", "0551", "--due", "2024-03-01")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"The Hobbit" to Sara, due 2024-03-01`)

	out, err = run(t, url, "loans", "list", "--overdue")
	require.NoError(t, err)
	assert.Contains(t, out, "overdue")
	assert.Contains(t, out, "The Hobbit")

	_, err = run(t, url, "users", "add", "--name", "Omar")
	require.NoError(t, err)
	out, err = run(t, url, "loans", "list", "--user", "sara")
	require.NoError(t, err)
	assert.Contains(t, out, "The Hobbit")
	out, err = run(t, url, "loans", "list", "--user", "2")
	require.NoError(t, err)
	assert.NotContains(t, out, "The Hobbit")

	_, err = run(t, url, "loans", "issue", "--scan", "1", "--user", "1")
	require.Error(t, err)
	assert.Equal(t, "Error: Book is already loaned", err.Error())

	out, err = run(t, url, "loans", "return", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Returned loan 1")

	out, err = run(t, url, "loans", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "The Hobbit")
	out, err = run(t, url, "loans", "list", "--user", "1", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "returned")

	out, err = run(t, url, "stats")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "2"), out)
}

func TestDeskctlValidation(t *testing.T) {
	url := newTestServer(t)

	out, err := run(t, url, "books", "add", "--title", "No author")
	require.Error(t, err)
	assert.Contains(t, out, "author: field required")

	_, err = run(t, url, "loans", "issue", "--book", "nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no book matches "nothing"`)

	_, err = run(t, url, "loans", "issue", "--days", "10")
	require.Error(t, err)
}
