package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/librarian/internal/circulation"
	"github.com/mmynk/librarian/internal/directory"
	"github.com/mmynk/librarian/internal/duedate"
	"github.com/mmynk/librarian/internal/models"
)

func newLoansCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Issue, list and return loans",
	}
	cmd.AddCommand(newLoansListCmd(a), newLoansIssueCmd(a), newLoansReturnCmd(a))
	return cmd
}

// loadDesk returns a desk with loans, books and users fetched.
func (a *app) loadDesk(ctx context.Context) (*circulation.Desk, error) {
	desk := circulation.NewDesk(a.client, circulation.WithCatalog(a.cat))
	if err := desk.Load(ctx); err != nil {
		return nil, a.describe("load", err)
	}
	return desk, nil
}

func newLoansListCmd(a *app) *cobra.Command {
	var (
		query   string
		user    string
		overdue bool
		all     bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			desk, err := a.loadDesk(cmd.Context())
			if err != nil {
				return err
			}

			now := time.Now()
			var loans []models.Loan
			switch {
			case user != "":
				borrower, err := findUser(desk.Directory().Users(), user)
				if err != nil {
					return err
				}
				loans, err = a.client.BorrowerLoans(cmd.Context(), borrower.ID, !all)
				if err != nil {
					return a.describe("list loans", err)
				}
				if overdue {
					loans = slices.DeleteFunc(loans, func(l models.Loan) bool { return !desk.IsOverdue(l, now) })
				}
			case all:
				loans = desk.Loans()
			case overdue:
				loans = desk.OverdueLoans(now)
			default:
				loans = desk.ActiveLoans(query)
			}

			a.renderLoans(desk, loans, now)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "filter by loan ID, book title or borrower name")
	cmd.Flags().StringVar(&user, "user", "", "only this borrower's loans: ID or search text")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "only overdue loans")
	cmd.Flags().BoolVar(&all, "all", false, "include returned loans")
	cmd.MarkFlagsMutuallyExclusive("user", "query")
	return cmd
}

func (a *app) renderLoans(desk *circulation.Desk, loans []models.Loan, now time.Time) {
	t := a.newTable("ID", "Book", "Borrower", "Due", "Status")
	for _, l := range loans {
		t.AppendRow([]any{l.ID, desk.Title(l.BookID), desk.Borrower(l.UserID), l.DueDate, loanStatus(desk, l, now)})
	}
	t.Render()
}

func loanStatus(desk *circulation.Desk, l models.Loan, now time.Time) string {
	switch {
	case !l.Active():
		return "returned"
	case desk.IsOverdue(l, now):
		return "overdue"
	default:
		return "active"
	}
}

func newLoansIssueCmd(a *app) *cobra.Command {
	var (
		book, user, due, scan, days string
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Lend a book to a borrower",
		Long: "Lend a book to a borrower. --book and --user accept an ID or search text;\n" +
			"search text must match exactly one record. --scan takes a decoded code payload.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			desk, err := a.loadDesk(ctx)
			if err != nil {
				return err
			}
			form := desk.Form()

			if days != "" {
				d, err := duedate.ParseDuration(days)
				if err != nil {
					return err
				}
				form.SelectDuration(d)
			}
			if due != "" {
				form.EditDueDate(due)
			}

			if scan != "" {
				if err := form.ApplyScan(scan); err != nil {
					var miss *directory.LookupMiss
					if errors.As(err, &miss) {
						return errors.New(a.cat.Text(circulation.MsgBookNotFound, miss.Input))
					}
					return err
				}
			} else if book != "" {
				form.SetBookSearch(book)
				if form.BookID() == 0 {
					if err := pickOne(form.BookMatches(), "book", book, form.SelectBook); err != nil {
						return err
					}
				}
			}

			if user != "" {
				form.SetUserSearch(user)
				if form.UserID() == 0 {
					if err := pickOne(form.UserMatches(), "user", user, form.SelectUser); err != nil {
						return err
					}
				}
			}

			if warning, ok := form.Warning(); ok {
				fmt.Fprintln(os.Stderr, "warning:", warning)
			}

			loan, err := desk.CreateLoan(ctx)
			if err != nil {
				return a.describe("create loan", err)
			}
			fmt.Fprintf(a.out, "Loan %d: %q to %s, due %s\n",
				loan.ID, desk.Title(loan.BookID), desk.Borrower(loan.UserID), loan.DueDate)
			return nil
		},
	}
	cmd.Flags().StringVar(&book, "book", "", "book ID or search text")
	cmd.Flags().StringVar(&user, "user", "", "borrower ID or search text")
	cmd.Flags().StringVar(&scan, "scan", "", "decoded book code payload")
	cmd.Flags().StringVar(&days, "days", "", "loan length: 7, 14 or 30 (default 14)")
	cmd.Flags().StringVar(&due, "due", "", "explicit due date, YYYY-MM-DD")
	cmd.MarkFlagsMutuallyExclusive("book", "scan")
	cmd.MarkFlagsMutuallyExclusive("days", "due")
	return cmd
}

// findUser resolves an ID or a search text matching exactly one borrower.
func findUser(users []models.User, text string) (models.User, error) {
	if u, ok := directory.ExactUser(users, text); ok {
		return u, nil
	}
	var found models.User
	err := pickOne(directory.FilterUsers(users, text), "user", text, func(u models.User) { found = u })
	return found, err
}

// pickOne selects the single search match, or explains why it cannot.
func pickOne[T any](matches []T, kind, text string, selectFn func(T)) error {
	switch len(matches) {
	case 0:
		return fmt.Errorf("no %s matches %q", kind, text)
	case 1:
		selectFn(matches[0])
		return nil
	default:
		return fmt.Errorf("%d %ss match %q; use the ID", len(matches), kind, text)
	}
}

func newLoansReturnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "return ID",
		Short: "Mark a loan as returned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			desk, err := a.loadDesk(cmd.Context())
			if err != nil {
				return err
			}
			loan, err := desk.ReturnLoan(cmd.Context(), id)
			if err != nil {
				return a.describe("return loan", err)
			}
			fmt.Fprintf(a.out, "Returned loan %d (%s)\n", loan.ID, desk.Title(loan.BookID))
			return nil
		},
	}
}
