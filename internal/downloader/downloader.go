package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/brogergvhs/komikd/internal/providers"
	"github.com/brogergvhs/komikd/internal/ui"
	"github.com/brogergvhs/komikd/internal/util"
)

// Tracker receives per-chapter progress. ui.ProgressHandle satisfies it.
type Tracker interface {
	Update(done, total int, bytes int64)
	MarkDone()
}

type nopTracker struct{}

func (nopTracker) Update(int, int, int64) {}
func (nopTracker) MarkDone()              {}

type Downloader struct {
	client *http.Client
	log    *ui.Logger
}

func New(c *http.Client, log *ui.Logger) *Downloader {
	return &Downloader{
		client: c,
		log:    log,
	}
}

type Result struct {
	Dir    string
	Saved  int
	Failed int
	Bytes  int64
}

// SaveImages fetches the images one by one into dir. A failed image is
// logged and skipped; it never stops the remaining ones. The only error
// returned is a failure to create dir.
func (d *Downloader) SaveImages(ctx context.Context, images []providers.Image, dir string, tr Tracker) (Result, error) {
	res := Result{Dir: dir}
	if tr == nil {
		tr = nopTracker{}
	}
	defer tr.MarkDone()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return res, fmt.Errorf("create %s: %w", dir, err)
	}

	total := len(images)
	tr.Update(0, total, 0)

	for i, img := range images {
		d.log.Infof("Download %s\n", img.URL)

		path := filepath.Join(dir, img.FileName())
		base := res.Bytes

		n, err := d.download(ctx, img.URL, path, func(done int64) {
			tr.Update(i, total, base+done)
		})
		if err != nil {
			d.log.Errorf("%s: %v\n", img.FileName(), err)
			res.Failed++
		} else {
			res.Saved++
			res.Bytes += n
		}

		tr.Update(i+1, total, res.Bytes)
	}

	return res, nil
}

// download streams u into output. The body goes to output+".part" first and
// is renamed once complete, so an interrupted run leaves no truncated image
// under the final name.
func (d *Downloader) download(
	ctx context.Context,
	u, output string,
	progress func(done int64),
) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	tmp := output + util.PartSuffix
	f, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	pw := &progressWriter{report: progress}
	written, err := io.Copy(io.MultiWriter(f, pw), resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return written, err
	}

	if err := os.Rename(tmp, output); err != nil {
		_ = os.Remove(tmp)
		return written, err
	}

	return written, nil
}

// progressWriter reports the running byte count of a stream it observes.
type progressWriter struct {
	n      int64
	report func(done int64)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	if w.report != nil {
		w.report(w.n)
	}

	return len(p), nil
}
