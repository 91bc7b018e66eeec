package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/librarian/pkg/api"
)

func TestCollect(t *testing.T) {
	ctx := context.Background()
	rows := make([]int, 23)
	for i := range rows {
		rows[i] = i + 1
	}

	serve := func(pages *[]api.PageRequest) func(context.Context, api.PageRequest) ([]int, error) {
		return func(_ context.Context, page api.PageRequest) ([]int, error) {
			*pages = append(*pages, page)
			end := min(page.Skip+page.Limit, len(rows))
			if page.Skip >= end {
				return nil, nil
			}
			return rows[page.Skip:end], nil
		}
	}

	t.Run("pages until a short page", func(t *testing.T) {
		var pages []api.PageRequest
		got, err := collect(ctx, 10, serve(&pages))
		require.NoError(t, err)
		assert.Equal(t, rows, got)
		assert.Equal(t, []api.PageRequest{{Skip: 0, Limit: 10}, {Skip: 10, Limit: 10}, {Skip: 20, Limit: 10}}, pages)
	})

	t.Run("exact multiple asks once more", func(t *testing.T) {
		var pages []api.PageRequest
		got, err := collect(ctx, 23, serve(&pages))
		require.NoError(t, err)
		assert.Len(t, got, 23)
		assert.Len(t, pages, 2)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		got, err := collect(ctx, 10, func(context.Context, api.PageRequest) ([]int, error) { return nil, nil })
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("error stops paging", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		_, err := collect(ctx, 10, func(context.Context, api.PageRequest) ([]int, error) {
			calls++
			if calls == 2 {
				return nil, boom
			}
			return rows[:10], nil
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, calls)
	})
}
