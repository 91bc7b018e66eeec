package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/mmynk/librarian/internal/circulation"
	"github.com/mmynk/librarian/internal/directory"
	"github.com/mmynk/librarian/internal/duedate"
)

const shellHelp = `Commands:
  book TEXT      search books; an exact ID selects the book
  pick N         select the Nth book match shown by the last search
  user TEXT      search borrowers; an exact ID selects the borrower
  scan PAYLOAD   select a book from a decoded code
  days 7|14|30   set the loan length
  due DATE       set the due date (switches the length to custom)
  show           show the draft
  issue          submit the draft
  reset          clear the draft
  loans [TEXT]   list active loans, optionally filtered
  overdue        list overdue loans
  return ID      mark a loan returned
  refresh        refetch loans, books and users
  exit           leave the desk`

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "desk",
		Short: "Open an interactive circulation desk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			desk, err := a.loadDesk(ctx)
			if err != nil {
				return err
			}

			home, err := os.UserHomeDir()
			if err != nil {
				home = "."
			}
			rl, err := readline.NewEx(&readline.Config{
				Prompt:            "desk> ",
				HistoryFile:       filepath.Join(home, ".deskctl_history"),
				InterruptPrompt:   "^C",
				EOFPrompt:         "exit",
				HistorySearchFold: true,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize readline: %w", err)
			}
			defer rl.Close()

			s := &shell{app: a, desk: desk}
			fmt.Fprintln(a.out, "Circulation desk. Type 'help' for commands.")
			for {
				line, err := rl.Readline()
				if err != nil {
					if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
						return nil
					}
					return err
				}
				quit, err := s.exec(ctx, line)
				if err != nil {
					fmt.Fprintln(a.out, "error:", err)
				}
				if quit {
					return nil
				}
			}
		},
	}
}

// shell holds one desk session; the draft survives between commands.
type shell struct {
	app  *app
	desk *circulation.Desk
}

// exec runs one command line. It reports whether the session should end.
func (s *shell) exec(ctx context.Context, line string) (bool, error) {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	form := s.desk.Form()
	out := s.app.out

	switch strings.ToLower(verb) {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(out, shellHelp)
	case "book":
		form.SetBookSearch(arg)
		if form.BookID() == 0 {
			for i, b := range form.BookMatches() {
				fmt.Fprintf(out, "  %d) #%d %s - %s%s\n", i+1, b.ID, b.Title, b.Author, unavailableMark(b.IsAvailable))
			}
		}
		s.show()
	case "pick":
		var n int
		matches := form.BookMatches()
		if _, err := fmt.Sscan(arg, &n); err != nil || n < 1 || n > len(matches) {
			return false, fmt.Errorf("pick a number between 1 and %d", len(matches))
		}
		form.SelectBook(matches[n-1])
		s.show()
	case "user":
		form.SetUserSearch(arg)
		if form.UserID() == 0 {
			matches := form.UserMatches()
			if len(matches) == 1 {
				form.SelectUser(matches[0])
			} else {
				for _, u := range matches {
					fmt.Fprintf(out, "  #%d %s %s\n", u.ID, u.Name, u.Phone)
				}
			}
		}
		s.show()
	case "scan":
		if err := form.ApplyScan(arg); err != nil {
			var miss *directory.LookupMiss
			if errors.As(err, &miss) {
				return false, errors.New(s.desk.Catalog().Text(circulation.MsgBookNotFound, miss.Input))
			}
			return false, err
		}
		s.show()
	case "days":
		d, err := duedate.ParseDuration(arg)
		if err != nil {
			return false, err
		}
		form.SelectDuration(d)
		s.show()
	case "due":
		form.EditDueDate(arg)
		s.show()
	case "show":
		s.show()
	case "reset":
		form.Reset()
		s.show()
	case "issue":
		loan, err := s.desk.CreateLoan(ctx)
		if err != nil {
			s.show()
			return false, s.app.describe("create loan", err)
		}
		fmt.Fprintf(out, "Loan %d issued, due %s\n", loan.ID, loan.DueDate)
	case "loans":
		s.app.renderLoans(s.desk, s.desk.ActiveLoans(arg), time.Now())
	case "overdue":
		now := time.Now()
		s.app.renderLoans(s.desk, s.desk.OverdueLoans(now), now)
	case "return":
		id, err := parseID(arg)
		if err != nil {
			return false, err
		}
		if _, err := s.desk.ReturnLoan(ctx, id); err != nil {
			return false, s.app.describe("return loan", err)
		}
		fmt.Fprintf(out, "Loan %d returned\n", id)
	case "refresh":
		if err := s.desk.Load(ctx); err != nil {
			return false, s.app.describe("refresh", err)
		}
	default:
		return false, fmt.Errorf("unknown command %q; type 'help'", verb)
	}
	return false, nil
}

// show prints the draft and any field errors or warnings.
func (s *shell) show() {
	form := s.desk.Form()
	out := s.app.out

	book, user := "-", "-"
	if id := form.BookID(); id != 0 {
		book = fmt.Sprintf("#%d %s", id, s.desk.Title(id))
	}
	if id := form.UserID(); id != 0 {
		user = fmt.Sprintf("#%d %s", id, s.desk.Borrower(id))
	}
	fmt.Fprintf(out, "  book: %s\n  user: %s\n  due:  %s (%s)\n", book, user, form.DueDate(), form.Duration())

	if warning, ok := form.Warning(); ok {
		fmt.Fprintln(out, "  warning:", warning)
	}
	errs := form.Errors()
	for _, field := range slices.Sorted(maps.Keys(errs)) {
		fmt.Fprintf(out, "  ! %s: %s\n", field, errs[field])
	}
}

func unavailableMark(available bool) string {
	if available {
		return ""
	}
	return " (on loan)"
}
