package report

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	title    string
	refs     []chapters.Reference
	titles   []providers.Title
	err      error
	imageHit bool
}

func (s *stubSource) GetChapters(context.Context, string) ([]chapters.Reference, error) {
	return s.refs, s.err
}

func (s *stubSource) GetImages(context.Context, string) ([]providers.Image, error) {
	s.imageHit = true
	return nil, nil
}

func (s *stubSource) GetTitle(context.Context, string) (string, error) {
	return s.title, s.err
}

func (s *stubSource) ListTitles(context.Context, string) ([]providers.Title, error) {
	return s.titles, s.err
}

func TestMangaChapters(t *testing.T) {
	src := &stubSource{
		title: "Series X",
		refs: []chapters.Reference{
			chapters.NewReference("https://komik.example/series-x-chapter-1"),
			chapters.NewReference("https://komik.example/series-x-chapter-1.5"),
		},
	}

	var out bytes.Buffer
	require.NoError(t, MangaChapters(context.Background(), &out, src, "https://komik.example/manga/series-x/"))

	assert.Equal(t, "\nTitle: Series X\n"+
		"Total 2 chapters found:\n"+
		"  Chapter 1.0: https://komik.example/series-x-chapter-1\n"+
		"  Chapter 1.5: https://komik.example/series-x-chapter-1.5\n", out.String())
	assert.False(t, src.imageHit)
}

func TestTitles(t *testing.T) {
	src := &stubSource{titles: []providers.Title{
		{Name: "Series X", URL: "https://komik.example/manga/series-x/"},
		{Name: "Series Y", URL: "https://komik.example/manga/series-y/"},
	}}

	var out bytes.Buffer
	require.NoError(t, Titles(context.Background(), &out, src, "https://komik.example/list/"))

	assert.Equal(t, "\nFound 2 manga titles on this page:\n"+
		"1. Series X - https://komik.example/manga/series-x/\n"+
		"2. Series Y - https://komik.example/manga/series-y/\n", out.String())
}

func TestReportErrors(t *testing.T) {
	src := &stubSource{err: errors.New("chrome not found")}

	assert.ErrorContains(t, MangaChapters(context.Background(), &bytes.Buffer{}, src, "u"), "chrome not found")
	assert.ErrorContains(t, Titles(context.Background(), &bytes.Buffer{}, src, "u"), "chrome not found")
}

func TestMangaChaptersUnnumbered(t *testing.T) {
	src := &stubSource{
		title: "Series X",
		refs:  []chapters.Reference{chapters.NewReference("https://komik.example/series-x-chapter-extra/")},
	}

	var out bytes.Buffer
	require.NoError(t, MangaChapters(context.Background(), &out, src, "https://komik.example/manga/series-x/"))
	assert.Contains(t, out.String(), "  Chapter unknown: https://komik.example/series-x-chapter-extra\n")
}
