package circulation

import (
	"maps"
	"slices"
	"strings"
)

// Field names used in form errors.
const (
	FieldBookID  = "book_id"
	FieldUserID  = "user_id"
	FieldDueDate = "due_date"
)

// Operations named in notices.
const (
	OpLoad       = "load"
	OpCreateLoan = "create loan"
	OpReturnLoan = "return loan"
)

// ValidationError carries field-scoped messages. Remote is false when the
// draft was rejected locally and nothing was sent.
type ValidationError struct {
	Fields map[string]string
	Remote bool
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "invalid loan: " + strings.Join(parts, ", ")
}

// Notice is an operation-scoped failure shown to the librarian and then
// dismissed. Err is the underlying cause, if any.
type Notice struct {
	Op      string
	Message string
	Err     error
}

func (n *Notice) Error() string {
	return n.Message
}

func (n *Notice) Unwrap() error {
	return n.Err
}
