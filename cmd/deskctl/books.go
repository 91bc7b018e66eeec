package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/librarian/pkg/api"
)

func newBooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Manage the book collection",
	}

	var query string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := a.client.SearchBooks(cmd.Context(), query, limit)
			if err != nil {
				return a.describe("list books", err)
			}
			t := a.newTable("ID", "Title", "Author", "ISBN", "Available")
			for _, b := range books {
				t.AppendRow([]any{b.ID, b.Title, b.Author, b.ISBN, yesNo(b.IsAvailable)})
			}
			t.Render()
			return nil
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "filter by title, author or ISBN")
	list.Flags().IntVar(&limit, "limit", 0, "maximum number of books (server default 100)")

	var req api.CreateBookRequest
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := a.client.CreateBook(cmd.Context(), req)
			if err != nil {
				return a.describe("add book", err)
			}
			fmt.Fprintf(a.out, "Added book %d: %s\n", book.ID, book.Title)
			return nil
		},
	}
	add.Flags().StringVar(&req.Title, "title", "", "book title")
	add.Flags().StringVar(&req.Author, "author", "", "book author")
	add.Flags().StringVar(&req.ISBN, "isbn", "", "ISBN")
	add.Flags().StringVar(&req.CoverImageURL, "cover", "", "cover image URL")
	add.Flags().StringVar(&req.Summary, "summary", "", "short summary")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a book and its loan history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.DeleteBook(cmd.Context(), id); err != nil {
				return a.describe("delete book", err)
			}
			fmt.Fprintf(a.out, "Deleted book %d\n", id)
			return nil
		},
	}

	code := &cobra.Command{
		Use:   "code ID",
		Short: "Print the payload for a book's code label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload, err := a.client.BookCode(cmd.Context(), id)
			if err != nil {
				return a.describe("book code", err)
			}
			fmt.Fprintln(a.out, payload)
			return nil
		},
	}

	cmd.AddCommand(list, add, del, code)
	return cmd
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
