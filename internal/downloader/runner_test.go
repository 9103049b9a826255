package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/brogergvhs/komikd/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockScraper struct {
	getChaptersFunc func(mangaURL string) ([]chapters.Reference, error)
	getImagesFunc   func(chapterURL string) ([]providers.Image, error)
	imageCalls      []string
}

func (m *mockScraper) GetChapters(_ context.Context, mangaURL string) ([]chapters.Reference, error) {
	if m.getChaptersFunc != nil {
		return m.getChaptersFunc(mangaURL)
	}
	return nil, nil
}

func (m *mockScraper) GetImages(_ context.Context, chapterURL string) ([]providers.Image, error) {
	m.imageCalls = append(m.imageCalls, chapterURL)
	if m.getImagesFunc != nil {
		return m.getImagesFunc(chapterURL)
	}
	return nil, nil
}

func chapterURL(n int) string {
	return fmt.Sprintf("https://komik.example/series-x-chapter-%d", n)
}

func sixChapters(string) ([]chapters.Reference, error) {
	var out []chapters.Reference
	for n := 1; n <= 6; n++ {
		out = append(out, chapters.NewReference(chapterURL(n)+"/"))
	}
	return out, nil
}

func newTestRunner(t *testing.T, s providers.Scraper) (*Runner, *bytes.Buffer) {
	t.Helper()

	logs := &bytes.Buffer{}
	log := &ui.Logger{Out: logs}

	return &Runner{
		Scraper:    s,
		Downloader: newTestDownloader(t, log),
		Output:     t.TempDir(),
		Token:      chapters.DefaultToken,
		Log:        log,
	}, logs
}

func TestDownloadMangaSelection(t *testing.T) {
	s := &mockScraper{
		getChaptersFunc: sixChapters,
		getImagesFunc: func(string) ([]providers.Image, error) {
			return []providers.Image{}, nil
		},
	}
	r, _ := newTestRunner(t, s)

	results, err := r.DownloadManga(context.Background(), "https://komik.example/manga/series-x/", chapters.Selection{5, 3})
	require.NoError(t, err)

	assert.Len(t, results, 2)
	assert.Equal(t, []string{chapterURL(3), chapterURL(5)}, s.imageCalls)
	assert.DirExists(t, filepath.Join(r.Output, "series-x", "Ch3.0"))
	assert.DirExists(t, filepath.Join(r.Output, "series-x", "Ch5.0"))
	assert.NoDirExists(t, filepath.Join(r.Output, "series-x", "Ch4.0"))
}

func TestDownloadMangaAll(t *testing.T) {
	s := &mockScraper{getChaptersFunc: sixChapters}
	r, _ := newTestRunner(t, s)

	_, err := r.DownloadManga(context.Background(), "https://komik.example/manga/series-x/", nil)
	require.NoError(t, err)
	assert.Len(t, s.imageCalls, 6)
}

func TestDownloadMangaLocatorError(t *testing.T) {
	s := &mockScraper{getChaptersFunc: func(string) ([]chapters.Reference, error) {
		return nil, errors.New("browser crashed")
	}}
	r, _ := newTestRunner(t, s)

	_, err := r.DownloadManga(context.Background(), "https://komik.example/manga/series-x/", nil)
	assert.ErrorContains(t, err, "browser crashed")
	assert.Empty(t, s.imageCalls)
}

func TestDownloadMangaContinuesAfterMissingReader(t *testing.T) {
	s := &mockScraper{
		getChaptersFunc: sixChapters,
		getImagesFunc: func(u string) ([]providers.Image, error) {
			if u == chapterURL(2) {
				return nil, providers.ErrNoReaderArea
			}
			return nil, nil
		},
	}
	r, logs := newTestRunner(t, s)

	results, err := r.DownloadManga(context.Background(), "https://komik.example/manga/series-x/", chapters.Selection{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Len(t, s.imageCalls, 3)
	assert.Contains(t, logs.String(), "No reader area")
}

func TestDownloadMangaStopsOnRenderError(t *testing.T) {
	s := &mockScraper{
		getChaptersFunc: sixChapters,
		getImagesFunc: func(u string) ([]providers.Image, error) {
			if u == chapterURL(2) {
				return nil, errors.New("navigation timeout")
			}
			return nil, nil
		},
	}
	r, _ := newTestRunner(t, s)

	results, err := r.DownloadManga(context.Background(), "https://komik.example/manga/series-x/", nil)
	assert.ErrorContains(t, err, "navigation timeout")
	assert.Len(t, results, 1)
	assert.Len(t, s.imageCalls, 2)
}

func TestDownloadChapterWithoutReaderWritesNothing(t *testing.T) {
	s := &mockScraper{getImagesFunc: func(string) ([]providers.Image, error) {
		return nil, fmt.Errorf("wrapped: %w", providers.ErrNoReaderArea)
	}}
	r, _ := newTestRunner(t, s)

	res, err := r.DownloadChapter(context.Background(), chapterURL(7)+"/")
	require.NoError(t, err)
	assert.Zero(t, res.Saved)

	entries, err := os.ReadDir(r.Output)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownloadChapterLayout(t *testing.T) {
	srv := newImageServer(t)
	s := &mockScraper{getImagesFunc: func(string) ([]providers.Image, error) {
		return []providers.Image{
			{Ordinal: 1, URL: srv.URL + "/1.webp"},
			{Ordinal: 2, URL: srv.URL + "/2.webp"},
			{Ordinal: 3, URL: srv.URL + "/3.webp"},
		}, nil
	}}
	r, _ := newTestRunner(t, s)

	var labels []string
	tr := &countingTracker{}
	r.Progress = func(label string) Tracker {
		labels = append(labels, label)
		return tr
	}

	res, err := r.DownloadChapter(context.Background(), "https://komik.example/series-x-chapter-7/")
	require.NoError(t, err)

	dir := filepath.Join(r.Output, "series-x", "Ch7.0")
	assert.Equal(t, dir, res.Dir)
	assert.Equal(t, []string{"Ch.7.0"}, labels)
	assert.FileExists(t, filepath.Join(dir, "001.webp"))
	assert.NoFileExists(t, filepath.Join(dir, "002.webp"))
	assert.FileExists(t, filepath.Join(dir, "003.webp"))
	assert.Equal(t, 1, tr.done)
}

func TestDownloadChapterUnknownNumber(t *testing.T) {
	s := &mockScraper{getImagesFunc: func(string) ([]providers.Image, error) {
		return []providers.Image{}, nil
	}}
	r, _ := newTestRunner(t, s)

	res, err := r.DownloadChapter(context.Background(), "https://komik.example/series-x-chapter-extra")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Output, "series-x", "Chunknown"), res.Dir)
}
