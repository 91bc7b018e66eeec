package errmap

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Run("structured failure maps to fields", func(t *testing.T) {
		err := &RemoteError{Violations: []Violation{
			{Loc: []string{"body", "due_date"}, Msg: "required"},
		}}

		got := Classify(err)
		assert.Equal(t, Fields, got.Kind)
		assert.Equal(t, map[string]string{"due_date": "required"}, got.Fields)
	})

	t.Run("last write wins", func(t *testing.T) {
		err := &RemoteError{Violations: []Violation{
			{Loc: []string{"body", "book_id"}, Msg: "first"},
			{Loc: []string{"body", "user_id"}, Msg: "user"},
			{Loc: []string{"query", "book_id"}, Msg: "second"},
		}}

		got := Classify(err)
		assert.Equal(t, map[string]string{"book_id": "second", "user_id": "user"}, got.Fields)
	})

	t.Run("unstructured failure is a notice", func(t *testing.T) {
		err := fmt.Errorf("create loan: %w", &RemoteError{Message: "Book is already loaned"})

		got := Classify(err)
		assert.Equal(t, Notice, got.Kind)
		assert.Equal(t, "Book is already loaned", got.Message)
		assert.Nil(t, got.Fields)
	})

	t.Run("transport failure is generic", func(t *testing.T) {
		got := Classify(errors.New("dial tcp: connection refused"))
		assert.Equal(t, Generic, got.Kind)
		assert.Empty(t, got.Message)
	})

	t.Run("empty remote error is generic", func(t *testing.T) {
		assert.Equal(t, Generic, Classify(&RemoteError{}).Kind)
	})

	t.Run("violations without location fall back to message", func(t *testing.T) {
		err := &RemoteError{Violations: []Violation{{Msg: "bad"}}, Message: "Invalid request"}
		got := Classify(err)
		assert.Equal(t, Notice, got.Kind)
		assert.Equal(t, "Invalid request", got.Message)
	})
}

func TestRemoteErrorString(t *testing.T) {
	err := &RemoteError{Violations: []Violation{
		{Loc: []string{"body", "book_id"}, Msg: "field required"},
		{Loc: []string{"body", "due_date"}, Msg: "invalid date"},
	}}
	assert.Equal(t, "book_id: field required; due_date: invalid date", err.Error())
}
