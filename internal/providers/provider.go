package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/brogergvhs/komikd/internal/chapters"
)

// ErrNoReaderArea is returned when a chapter page has no image container.
var ErrNoReaderArea = errors.New("reader area not found")

// Image is one page of a chapter. Ordinal is 1-based and counts every image
// element in the reader area, including the ones without a usable source.
type Image struct {
	Ordinal int
	URL     string
}

func (i Image) FileName() string {
	return fmt.Sprintf("%03d.webp", i.Ordinal)
}

type Title struct {
	Name string
	URL  string
}

type Scraper interface {
	GetChapters(ctx context.Context, mangaURL string) ([]chapters.Reference, error)
	GetImages(ctx context.Context, chapterURL string) ([]Image, error)
}

type Lister interface {
	GetTitle(ctx context.Context, mangaURL string) (string, error)
	ListTitles(ctx context.Context, listURL string) ([]Title, error)
}
