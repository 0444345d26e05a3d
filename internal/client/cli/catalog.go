package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/services"
)

var getInt = GetInt

func (a *App) Sellers(ctx context.Context) error {
	list, err := a.catalog.Sellers(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No sellers\n")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, s := range list {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\n", s.ID, s.FirstName, s.LastName, s.Email)
	}
	return tw.Flush()
}

func (a *App) Seller(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return fmt.Errorf("invalid seller id %q", rawID)
	}

	s, err := a.catalog.Seller(ctx, id)
	if err != nil {
		return a.explain(err)
	}

	a.printf("#%d %s %s <%s>\n", s.ID, s.FirstName, s.LastName, s.Email)
	if len(s.Books) == 0 {
		a.printf("No books\n")
		return nil
	}
	return a.printBooks(s.Books)
}

func (a *App) Books(ctx context.Context) error {
	list, err := a.catalog.Books(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No books\n")
		return nil
	}
	return a.printBooks(list)
}

// AddBook prompts for the book fields, owner included.
func (a *App) AddBook(ctx context.Context) error {
	var in models.BookInput
	var err error

	if in.Title, err = getRequiredText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Author, err = getRequiredText(a.reader, "Author", a.out); err != nil {
		return err
	}
	year, err := getInt(a.reader, "Year", a.out)
	if err != nil {
		return err
	}
	pages, err := getInt(a.reader, "Pages", a.out)
	if err != nil {
		return err
	}
	if in.SellerID, err = getInt(a.reader, "Seller ID", a.out); err != nil {
		return err
	}
	in.Year, in.CountPages = int(year), int(pages)

	b, err := a.catalog.AddBook(ctx, in)
	if err != nil {
		return a.explain(err)
	}
	a.printf("Added book #%d %q\n", b.ID, b.Title)
	return nil
}

// Delete removes a seller together with their books.
func (a *App) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return fmt.Errorf("invalid seller id %q", rawID)
	}
	if err := a.catalog.DeleteSeller(ctx, id); err != nil {
		return a.explain(err)
	}
	a.printf("Deleted seller #%d and their books\n", id)
	return nil
}

func (a *App) DeleteBook(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return fmt.Errorf("invalid book id %q", rawID)
	}
	if err := a.catalog.DeleteBook(ctx, id); err != nil {
		return a.explain(err)
	}
	a.printf("Deleted book #%d\n", id)
	return nil
}

func (a *App) printBooks(list []models.Book) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tYEAR\tPAGES\tSELLER")
	for _, b := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n", b.ID, b.Title, b.Author, b.Year, b.CountPages, b.SellerID)
	}
	return tw.Flush()
}

// explain adds a hint to session errors and keeps the prompt in sync.
func (a *App) explain(err error) error {
	switch {
	case errors.Is(err, services.ErrNoSession):
		a.setEmail("")
		return fmt.Errorf("%w: run 'login' first", err)
	case errors.Is(err, client.ErrUnauthorized):
		a.setEmail("")
		return fmt.Errorf("%w: session ended, run 'login' again", err)
	}
	return err
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
