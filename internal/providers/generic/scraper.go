package generic

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/brogergvhs/komikd/internal/render"
)

const (
	DefaultReaderID     = "readerarea"
	DefaultListSelector = "div.bsx > a"

	unknownTitle = "Unknown Title"
)

type Options struct {
	ChapterToken string
	ReaderID     string
	ListSelector string
	// WaitForReader replaces the settle delay on chapter pages with a wait
	// for the reader area.
	WaitForReader bool
}

// Logger is the part of ui.Logger the scraper writes to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type Scraper struct {
	renderer render.Renderer
	opts     Options
	log      Logger
}

var (
	_ providers.Scraper = (*Scraper)(nil)
	_ providers.Lister  = (*Scraper)(nil)
)

func NewScraper(r render.Renderer, opts Options, log Logger) *Scraper {
	if opts.ChapterToken == "" {
		opts.ChapterToken = chapters.DefaultToken
	}
	if opts.ReaderID == "" {
		opts.ReaderID = DefaultReaderID
	}
	if opts.ListSelector == "" {
		opts.ListSelector = DefaultListSelector
	}

	return &Scraper{renderer: r, opts: opts, log: log}
}

func (s *Scraper) debugf(format string, args ...any) {
	if s.log != nil {
		s.log.Debugf(format, args...)
	}
}

func (s *Scraper) fetchDOM(ctx context.Context, target string, opts ...render.Option) (*goquery.Document, error) {
	html, err := s.renderer.Render(ctx, target, opts...)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}

	return doc, nil
}

// GetChapters returns the chapter links of a series page, deduplicated and
// sorted by chapter number.
func (s *Scraper) GetChapters(ctx context.Context, mangaURL string) ([]chapters.Reference, error) {
	doc, err := s.fetchDOM(ctx, mangaURL)
	if err != nil {
		return nil, err
	}

	return s.chapterLinks(doc, mangaURL), nil
}

func (s *Scraper) chapterLinks(doc *goquery.Document, pageURL string) []chapters.Reference {
	token := strings.ToLower(s.opts.ChapterToken)

	var out []chapters.Reference
	seen := map[string]bool{}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		u, ok := resolve(pageURL, href)
		if !ok || !strings.Contains(strings.ToLower(u), token) {
			return
		}

		ref := chapters.NewReference(u)
		if seen[ref.URL] {
			return
		}
		seen[ref.URL] = true

		out = append(out, ref)
	})

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].URL < out[j].URL
	})

	s.debugf("Found %d chapter links on %s\n", len(out), pageURL)

	return out
}

// GetImages lists the page images of a chapter. It returns
// providers.ErrNoReaderArea when the page has no reader container.
func (s *Scraper) GetImages(ctx context.Context, chapterURL string) ([]providers.Image, error) {
	selector := "#" + s.opts.ReaderID

	var opts []render.Option
	if s.opts.WaitForReader {
		opts = append(opts, render.WaitFor(selector))
	}

	doc, err := s.fetchDOM(ctx, chapterURL, opts...)
	if err != nil {
		return nil, err
	}

	reader := doc.Find(selector).First()
	if reader.Length() == 0 {
		return nil, fmt.Errorf("%s: %w", chapterURL, providers.ErrNoReaderArea)
	}

	images, total := collectImages(reader, chapterURL)
	if s.log != nil {
		s.log.Infof("Found %d images.\n", total)
		if skipped := total - len(images); skipped > 0 {
			s.log.Warnf("%d images on %s have no usable source\n", skipped, chapterURL)
		}
	}

	return images, nil
}

// GetTitle returns the text of the first h1 on the series page.
func (s *Scraper) GetTitle(ctx context.Context, mangaURL string) (string, error) {
	doc, err := s.fetchDOM(ctx, mangaURL)
	if err != nil {
		return "", err
	}

	return pageTitle(doc), nil
}

func pageTitle(doc *goquery.Document) string {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return unknownTitle
	}

	return strings.TrimSpace(h1.Text())
}

// ListTitles returns the series entries of a listing page.
func (s *Scraper) ListTitles(ctx context.Context, listURL string) ([]providers.Title, error) {
	doc, err := s.fetchDOM(ctx, listURL)
	if err != nil {
		return nil, err
	}

	out := []providers.Title{}
	doc.Find(s.opts.ListSelector).Each(func(_ int, a *goquery.Selection) {
		name, ok := attrValue(a, "title")
		if !ok {
			name = strings.TrimSpace(a.Text())
		}

		href, _ := a.Attr("href")
		out = append(out, providers.Title{Name: name, URL: href})
	})

	return out, nil
}
