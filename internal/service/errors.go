package service

import (
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/librarian/internal/storage"
	"github.com/mmynk/librarian/pkg/api"
)

const msgFieldRequired = "field required"

// storeError converts a storage failure into the Connect error returned to
// the desk. notFound is the message used for storage.ErrNotFound and
// duplicate for storage.ErrDuplicate.
func storeError(err error, notFound, duplicate string) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, errors.New(notFound))
	case errors.Is(err, storage.ErrDuplicate):
		return connect.NewError(connect.CodeAlreadyExists, errors.New(duplicate))
	case errors.Is(err, storage.ErrBookUnavailable):
		return connect.NewError(connect.CodeFailedPrecondition, errors.New("Book is already loaned"))
	case errors.Is(err, storage.ErrLoanReturned):
		return connect.NewError(connect.CodeFailedPrecondition, errors.New("Loan already returned"))
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// required appends a violation for each blank field, in the order given.
func required(violations []api.Violation, fields ...[2]string) []api.Violation {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			violations = append(violations, api.BodyViolation(f[0], msgFieldRequired))
		}
	}
	return violations
}

// positiveID validates a reference to another record.
func positiveID(violations []api.Violation, field string, id int64) []api.Violation {
	if id <= 0 {
		return append(violations, api.BodyViolation(field, msgFieldRequired))
	}
	return violations
}
