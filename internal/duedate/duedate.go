// Package duedate turns a loan duration selection into a due date.
package duedate

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/mmynk/librarian/internal/models"
)

// Duration is a loan length selection. Custom means the caller supplies
// the date.
type Duration int

const (
	Custom   Duration = 0
	OneWeek  Duration = 7
	TwoWeeks Duration = 14
	OneMonth Duration = 30
)

// Default is the selection a fresh loan form starts with.
const Default = TwoWeeks

// Durations lists the fixed selections in display order.
var Durations = []Duration{OneWeek, TwoWeeks, OneMonth}

// ParseDuration accepts "7", "14", "30" or "custom".
func ParseDuration(s string) (Duration, error) {
	if s == "custom" {
		return Custom, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d := Duration(n); slices.Contains(Durations, d) {
		return d, nil
	}
	return 0, fmt.Errorf("invalid duration %q: must be 7, 14, 30 or custom", s)
}

func (d Duration) String() string {
	if d == Custom {
		return "custom"
	}
	return strconv.Itoa(int(d))
}

// IsCustom reports whether no date is computed for d.
func (d Duration) IsCustom() bool {
	return d == Custom
}

// Resolve returns today plus d calendar days in models.DateLayout. The
// second result is false for Custom.
func Resolve(today time.Time, d Duration) (string, bool) {
	if d.IsCustom() {
		return "", false
	}
	return today.AddDate(0, 0, int(d)).Format(models.DateLayout), true
}
