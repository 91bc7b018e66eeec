// Package errmap classifies rejections from the persistence boundary into
// field errors, notices or generic failures.
package errmap

import (
	"errors"
	"strings"
)

// Violation is one structured rejection entry. The last segment of Loc names
// the offending field.
type Violation struct {
	Loc []string
	Msg string
}

// Field returns the last segment of Loc, or "" when Loc is empty.
func (v Violation) Field() string {
	if len(v.Loc) == 0 {
		return ""
	}
	return v.Loc[len(v.Loc)-1]
}

// RemoteError is a rejection the persistence boundary answered with. Either
// Violations (structured) or Message (unstructured) is set. Err is the
// transport-level error it was decoded from, if any.
type RemoteError struct {
	Violations []Violation
	Message    string
	Err        error
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field()+": "+v.Msg)
	}
	return strings.Join(msgs, "; ")
}

// Kind says how a failure should be surfaced.
type Kind int

const (
	// Generic is a transport or unknown failure with nothing to show but
	// the name of the attempted operation.
	Generic Kind = iota
	// Fields is a structured failure mapped onto form fields.
	Fields
	// Notice is a single server message not tied to any field.
	Notice
)

func (k Kind) String() string {
	switch k {
	case Fields:
		return "fields"
	case Notice:
		return "notice"
	default:
		return "generic"
	}
}

// Result is the classified form of a failure.
type Result struct {
	Kind    Kind
	Fields  map[string]string // set for Fields
	Message string            // set for Notice
}

// Classify inspects err for a *RemoteError anywhere in its chain.
func Classify(err error) Result {
	var remote *RemoteError
	if !errors.As(err, &remote) {
		return Result{Kind: Generic}
	}

	if fields := FieldErrors(remote.Violations); len(fields) > 0 {
		return Result{Kind: Fields, Fields: fields}
	}
	if remote.Message != "" {
		return Result{Kind: Notice, Message: remote.Message}
	}
	return Result{Kind: Generic}
}

// FieldErrors maps each violation to its field. Later entries for the same
// field overwrite earlier ones; entries without a location are dropped.
func FieldErrors(violations []Violation) map[string]string {
	fields := make(map[string]string, len(violations))
	for _, v := range violations {
		if f := v.Field(); f != "" {
			fields[f] = v.Msg
		}
	}
	return fields
}
