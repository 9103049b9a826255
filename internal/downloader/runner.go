package downloader

import (
	"context"
	"errors"
	"fmt"

	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/brogergvhs/komikd/internal/ui"
)

// Runner drives the scraper and the downloader over a series.
type Runner struct {
	Scraper    providers.Scraper
	Downloader *Downloader
	Output     string
	Token      string
	Log        *ui.Logger

	// Progress returns a tracker for one chapter. Nil disables progress.
	Progress func(label string) Tracker
}

// Plan returns the chapters of mangaURL that DownloadManga would fetch.
func (r *Runner) Plan(ctx context.Context, mangaURL string, sel chapters.Selection) ([]chapters.Reference, error) {
	all, err := r.Scraper.GetChapters(ctx, mangaURL)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	r.Log.Infof("Found %d chapters.\n", len(all))

	if sel.Empty() {
		return all, nil
	}

	selected := chapters.Filter(all, sel)
	r.Log.Infof("Downloading %d chapters matching %s\n", len(selected), sel)

	return selected, nil
}

// DownloadManga downloads the selected chapters in ascending order, one at a
// time. A chapter that cannot be rendered stops the run.
func (r *Runner) DownloadManga(ctx context.Context, mangaURL string, sel chapters.Selection) ([]Result, error) {
	selected, err := r.Plan(ctx, mangaURL, sel)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(selected))
	for _, ch := range selected {
		res, err := r.DownloadChapter(ctx, ch.URL)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

// DownloadChapter saves the images of one chapter. A page without reader
// area is logged and skipped with no error and nothing written.
func (r *Runner) DownloadChapter(ctx context.Context, chapterURL string) (Result, error) {
	ref := chapters.NewReference(chapterURL)
	r.Log.Infof("=== Chapter: %s ===\n", ref.URL)

	images, err := r.Scraper.GetImages(ctx, ref.URL)
	if errors.Is(err, providers.ErrNoReaderArea) {
		r.Log.Errorf("No reader area found on %s\n", ref.URL)
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("chapter %s: %w", ref.Label(), err)
	}

	var tr Tracker
	if r.Progress != nil {
		tr = r.Progress("Ch." + ref.Label())
	}

	dir := ref.OutputDir(r.Output, r.Token)
	res, err := r.Downloader.SaveImages(ctx, images, dir, tr)
	if err != nil {
		r.Log.Errorf("Chapter %s: %v\n", ref.Label(), err)
		return res, nil
	}

	r.Log.Infof("-> Done: %s (%d saved, %d failed)\n", dir, res.Saved, res.Failed)

	return res, nil
}
