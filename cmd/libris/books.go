package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
	"github.com/alexisbeaulieu97/libris/pkg/diff"
	librisErrors "github.com/alexisbeaulieu97/libris/pkg/errors"
)

func newBooksCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "books",
		Aliases: []string{"book"},
		Short:   "List and manage books",
	}

	cmd.AddCommand(newBooksListCmd(app, flags))
	cmd.AddCommand(newBooksAddCmd(app, flags))
	cmd.AddCommand(newBooksEditCmd(app, flags))
	cmd.AddCommand(newBooksDeleteCmd(app, flags))

	return cmd
}

type listOptions struct {
	jsonOutput bool
}

func newBooksListCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every book",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openAuthenticated(app, flags, "list books"); err != nil {
				return err
			}
			ctx, _ := app.CommandContext(cmd, "command.books.list")

			books, err := app.Catalog.ListBooks(ctx)
			if err != nil {
				return requestError("list books", err, "Failed to load books")
			}

			if opts.jsonOutput {
				return renderBooksJSON(cmd, books)
			}
			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), catalog.MsgEmptyList)
				return nil
			}
			return renderBooksTable(cmd, books)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type addOptions struct {
	title    string
	author   string
	pages    int
	category string
}

func newBooksAddCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Example: `  libris books add --title Dune --author Herbert --pages 412
  libris books add --title Emma --author Austen --pages 474 --category Novel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openAuthenticated(app, flags, "add book"); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.books.add")

			input := catalog.BookInput{
				Title:     strings.TrimSpace(opts.title),
				Author:    strings.TrimSpace(opts.author),
				PageCount: opts.pages,
			}
			if err := catalog.Validate(input); err != nil {
				return requestError("add book", err, "Failed to add book")
			}

			if strings.TrimSpace(opts.category) != "" {
				id, err := resolveCategory(ctx, app.Catalog, opts.category)
				if err != nil {
					return err
				}
				input.CategoryID = &id
			}

			book, err := app.Catalog.CreateBook(ctx, input)
			if err != nil {
				log.Warn(ctx, "create book failed", "error", err)
				return requestError("add book", err, "Failed to add book")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d %s)\n", catalog.MsgBookAdded, book.ID, book.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "Book title (required)")
	cmd.Flags().StringVar(&opts.author, "author", "", "Book author (required)")
	cmd.Flags().IntVar(&opts.pages, "pages", 0, "Page count, at least 1 (required)")
	cmd.Flags().StringVar(&opts.category, "category", "", "Category ID or name")

	return cmd
}

type editOptions struct {
	title  string
	author string
	pages  int
	dryRun bool
}

func newBooksEditCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a book",
		Long:  "Edit a book. Fields without a flag keep their current value; the full field set is always sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}
			if err := openAuthenticated(app, flags, "edit book"); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.books.edit")

			changed := cmd.Flags().Changed
			update := catalog.BookUpdate{Title: opts.title, Author: opts.author, PageCount: opts.pages}
			var current *catalog.Book
			if opts.dryRun || !changed("title") || !changed("author") || !changed("pages") {
				book, err := findBook(ctx, app.Catalog, id)
				if err != nil {
					return err
				}
				current = &book
				base := book.Update()
				if !changed("title") {
					update.Title = base.Title
				}
				if !changed("author") {
					update.Author = base.Author
				}
				if !changed("pages") {
					update.PageCount = base.PageCount
				}
			}
			update.Title = strings.TrimSpace(update.Title)
			update.Author = strings.TrimSpace(update.Author)

			if err := catalog.Validate(update); err != nil {
				return requestError("edit book", err, "Failed to update book")
			}

			if opts.dryRun {
				change := diff.Unified(bookFields(current.Update()), bookFields(update), fmt.Sprintf("book %d", id), fmt.Sprintf("book %d (edited)", id))
				if change == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "No changes")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), change)
				return nil
			}

			book, err := app.Catalog.UpdateBook(ctx, id, update)
			if err != nil {
				log.Warn(ctx, "update book failed", "book_id", id, "error", err)
				return requestError("edit book", err, "Failed to update book")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d %s)\n", catalog.MsgBookUpdated, id, book.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.author, "author", "", "New author")
	cmd.Flags().IntVar(&opts.pages, "pages", 0, "New page count, at least 1")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show the change without sending it")

	return cmd
}

type deleteOptions struct {
	yes bool
}

func newBooksDeleteCmd(app *AppContext, flags *rootFlags) *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a book",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseBookID(args[0])
			if err != nil {
				return err
			}
			if err := openAuthenticated(app, flags, "delete book"); err != nil {
				return err
			}
			ctx, log := app.CommandContext(cmd, "command.books.delete")

			if !opts.yes {
				book, err := findBook(ctx, app.Catalog, id)
				if err != nil {
					return err
				}
				ok, err := newPrompter(cmd).confirm(catalog.ConfirmDeleteMessage(book.Title))
				if err != nil {
					return newCommandError("delete book", "reading confirmation", err, "Pass --yes to skip the prompt.")
				}
				if !ok {
					log.Info(ctx, "delete declined", "book_id", id)
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			if err := app.Catalog.DeleteBook(ctx, id); err != nil {
				log.Warn(ctx, "delete book failed", "book_id", id, "error", err)
				return requestError("delete book", err, "Failed to delete book")
			}

			fmt.Fprintln(cmd.OutOrStdout(), catalog.MsgBookDeleted)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Delete without asking for confirmation")

	return cmd
}

type bookLister interface {
	ListBooks(ctx context.Context) ([]catalog.Book, error)
}

type categoryLister interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
}

func openAuthenticated(app *AppContext, flags *rootFlags, operation string) error {
	if err := app.Open(flags); err != nil {
		return err
	}
	return app.RequireSession(operation)
}

func parseBookID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, newCommandError("parse book ID", fmt.Sprintf("%q is not a book ID", arg), err, "Run 'libris books list' to see book IDs.")
	}
	return id, nil
}

func findBook(ctx context.Context, books bookLister, id int64) (catalog.Book, error) {
	all, err := books.ListBooks(ctx)
	if err != nil {
		return catalog.Book{}, requestError("load book", err, "Failed to load books")
	}
	for _, book := range all {
		if book.ID == id {
			return book, nil
		}
	}
	return catalog.Book{}, newCommandError("load book", fmt.Sprintf("book %d not found", id), nil, "Run 'libris books list' to see book IDs.")
}

// resolveCategory accepts a category ID or a case-insensitive name.
func resolveCategory(ctx context.Context, categories categoryLister, value string) (int64, error) {
	value = strings.TrimSpace(value)
	all, err := categories.ListCategories(ctx)
	if err != nil {
		return 0, requestError("load categories", err, "Failed to load categories")
	}

	id, parseErr := strconv.ParseInt(value, 10, 64)
	names := make([]string, 0, len(all))
	for _, category := range all {
		if parseErr == nil && category.ID == id {
			return category.ID, nil
		}
		if strings.EqualFold(category.Name, value) {
			return category.ID, nil
		}
		names = append(names, category.Name)
	}

	suggestion := "Run 'libris categories list' to see the available categories."
	if len(names) > 0 {
		suggestion = "Available categories: " + strings.Join(names, ", ")
	}
	return 0, newCommandError("resolve category", fmt.Sprintf("unknown category %q", value), nil, suggestion)
}

// requestError renders a failed API call: server message when present,
// otherwise fallback, and a network message when the server was unreachable.
func requestError(operation string, err error, fallback string) error {
	if librisErrors.IsNetwork(err) {
		return newCommandError(operation, catalog.MsgNetworkError, err, "Check that the API is running or pass --api-url.")
	}
	if librisErrors.IsStatus(err, http.StatusUnauthorized) || librisErrors.IsStatus(err, http.StatusForbidden) {
		return newCommandError(operation, librisErrors.UserMessage(err, "session rejected by server"), err, "Run 'libris login' to sign in again.")
	}
	return newCommandError(operation, librisErrors.UserMessage(err, fallback), err, "")
}

func renderBooksTable(cmd *cobra.Command, books []catalog.Book) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tTITLE\tAUTHOR\tPAGES\tCATEGORY")
	for _, b := range books {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%d\t%s\n",
			b.ID,
			b.Title,
			b.Author,
			b.PageCount,
			valueOrFallback(b.CategoryName(), "-"),
		)
	}

	return writer.Flush()
}

type booksJSONPayload struct {
	Count int            `json:"count"`
	Books []catalog.Book `json:"books"`
}

func renderBooksJSON(cmd *cobra.Command, books []catalog.Book) error {
	if books == nil {
		books = []catalog.Book{}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(booksJSONPayload{Count: len(books), Books: books})
}

func bookFields(update catalog.BookUpdate) string {
	return fmt.Sprintf("title: %s\nauthor: %s\npages: %d\n", update.Title, update.Author, update.PageCount)
}

func valueOrFallback(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
