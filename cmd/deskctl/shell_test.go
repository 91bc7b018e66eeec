package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/librarian/internal/circulation"
	"github.com/mmynk/librarian/internal/client"
)

func TestShellSession(t *testing.T) {
	url := newTestServer(t)
	_, err := run(t, url, "books", "add", "--title", "Emma", "--author", "Austen")
	require.NoError(t, err)
	_, err = run(t, url, "books", "add", "--title", "Persuasion", "--author", "Austen")
	require.NoError(t, err)
	_, err = run(t, url, "users", "add", "--name", "Omar")
	require.NoError(t, err)

	var out bytes.Buffer
	a := &app{
		client: client.New(nil, url, 0),
		cat:    circulation.NewCatalog("en"),
		out:    &out,
	}
	ctx := context.Background()
	desk, err := a.loadDesk(ctx)
	require.NoError(t, err)
	s := &shell{app: a, desk: desk}

	exec := func(line string) error {
		t.Helper()
		out.Reset()
		quit, err := s.exec(ctx, line)
		assert.False(t, quit)
		return err
	}

	require.NoError(t, exec("days 7"))
	require.NoError(t, exec("due 2024-03-01"))
	assert.Contains(t, out.String(), "2024-03-01 (custom)")

	err = exec("issue")
	require.Error(t, err)
	assert.Contains(t, out.String(), "! book_id: Please select a book")
	assert.Contains(t, out.String(), "! user_id: Please select a user")

	require.NoError(t, exec("book austen"))
	require.NoError(t, exec("book per"))
	require.NoError(t, exec("pick 1"))
	assert.Contains(t, out.String(), "#2 Persuasion")

	require.NoError(t, exec("user omar"))
	assert.Contains(t, out.String(), "#1 Omar")

	require.NoError(t, exec("issue"))
	assert.Contains(t, out.String(), "issued, due 2024-03-01")

	require.NoError(t, exec("show"))
	assert.Contains(t, out.String(), "book: -")
	assert.Contains(t, out.String(), "(14)")

	require.NoError(t, exec("overdue"))
	assert.Contains(t, out.String(), "Persuasion")

	assert.EqualError(t, exec("scan 77"), "No book found with code: 77")
	require.NoError(t, exec("scan 2"))
	assert.Contains(t, out.String(), "warning: This book is currently on loan")

	require.NoError(t, exec("return 1"))
	require.NoError(t, exec("loans"))
	assert.NotContains(t, out.String(), "Persuasion")

	assert.Error(t, exec("frobnicate"))

	quit, err := s.exec(ctx, "exit")
	assert.NoError(t, err)
	assert.True(t, quit)
}
