// Package report prints what a site offers without downloading anything.
package report

import (
	"context"
	"fmt"
	"io"

	"github.com/brogergvhs/komikd/internal/providers"
)

type Source interface {
	providers.Scraper
	providers.Lister
}

// MangaChapters prints the series title followed by every discovered
// chapter in ascending order.
func MangaChapters(ctx context.Context, w io.Writer, src Source, mangaURL string) error {
	title, err := src.GetTitle(ctx, mangaURL)
	if err != nil {
		return fmt.Errorf("read title: %w", err)
	}
	fmt.Fprintf(w, "\nTitle: %s\n", title)

	refs, err := src.GetChapters(ctx, mangaURL)
	if err != nil {
		return fmt.Errorf("list chapters: %w", err)
	}

	fmt.Fprintf(w, "Total %d chapters found:\n", len(refs))
	for _, r := range refs {
		fmt.Fprintf(w, "  Chapter %s: %s\n", r.Label(), r.URL)
	}

	return nil
}

// Titles prints every series entry of a listing page.
func Titles(ctx context.Context, w io.Writer, src providers.Lister, listURL string) error {
	titles, err := src.ListTitles(ctx, listURL)
	if err != nil {
		return fmt.Errorf("list titles: %w", err)
	}

	fmt.Fprintf(w, "\nFound %d manga titles on this page:\n", len(titles))
	for i, t := range titles {
		fmt.Fprintf(w, "%d. %s - %s\n", i+1, t.Name, t.URL)
	}

	return nil
}
