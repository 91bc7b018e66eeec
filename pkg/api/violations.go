package api

import (
	"errors"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

// Violation is one field-level rejection. Loc is the path to the offending
// value, e.g. ["body", "due_date"]; the last segment names the field.
type Violation struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// BodyViolation is a Violation on a top-level request field.
func BodyViolation(field, msg string) Violation {
	return Violation{Loc: []string{"body", field}, Msg: msg}
}

// NewValidationError returns an InvalidArgument error carrying the
// violations as a {"detail": [{"loc": [...], "msg": "..."}]} struct detail.
func NewValidationError(violations []Violation) *connect.Error {
	err := connect.NewError(connect.CodeInvalidArgument, errors.New("request validation failed"))

	items := make([]any, len(violations))
	for i, v := range violations {
		loc := make([]any, len(v.Loc))
		for j, seg := range v.Loc {
			loc[j] = seg
		}
		items[i] = map[string]any{"loc": loc, "msg": v.Msg}
	}

	st, serr := structpb.NewStruct(map[string]any{"detail": items})
	if serr != nil {
		return err
	}
	if detail, derr := connect.NewErrorDetail(st); derr == nil {
		err.AddDetail(detail)
	}

	return err
}

// ViolationsFromError extracts the violations attached by NewValidationError.
// The boolean is false when err carries no such detail.
func ViolationsFromError(err error) ([]Violation, bool) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return nil, false
	}

	for _, detail := range connectErr.Details() {
		msg, derr := detail.Value()
		if derr != nil {
			continue
		}
		st, ok := msg.(*structpb.Struct)
		if !ok {
			continue
		}
		list := st.GetFields()["detail"].GetListValue()
		if list == nil {
			continue
		}

		violations := make([]Violation, 0, len(list.GetValues()))
		for _, item := range list.GetValues() {
			fields := item.GetStructValue().GetFields()
			v := Violation{Msg: fields["msg"].GetStringValue()}
			for _, seg := range fields["loc"].GetListValue().GetValues() {
				v.Loc = append(v.Loc, seg.GetStringValue())
			}
			violations = append(violations, v)
		}
		return violations, true
	}

	return nil, false
}
