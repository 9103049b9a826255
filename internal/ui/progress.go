package ui

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/komikd/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

const (
	barWidth    = 52
	barRefresh  = 120 * time.Millisecond
	pagesFormat = " | %d/%d pages"
)

// MPBProgressManager owns the terminal area the chapter bars are drawn in.
type MPBProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager() *MPBProgressManager {
	return &MPBProgressManager{
		p: mpb.New(
			mpb.WithWidth(barWidth),
			mpb.WithOutput(os.Stdout),
			mpb.WithRefreshRate(barRefresh),
		),
	}
}

// Close blocks until every bar has been drawn for the last time.
func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

// Register adds a bar for one chapter. Chapters are downloaded one after
// another, so at most one bar is moving at a time.
func (pm *MPBProgressManager) Register(label string) *ProgressHandle {
	h := &ProgressHandle{}

	h.bar = pm.p.New(0,
		mpb.BarStyle().Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(label+"  "),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(pagesFormat, decor.WCSyncWidth),
			decor.Any(func(decor.Statistics) string {
				return " | " + util.Human(h.bytes.Load())
			}),
			decor.OnComplete(decor.Elapsed(decor.ET_STYLE_GO), " done"),
		),
	)

	return h
}

// ProgressHandle is the bar of one chapter. Its counters are page based;
// bytes are only shown.
type ProgressHandle struct {
	bar   *mpb.Bar
	total atomic.Int64
	bytes atomic.Int64
	done  atomic.Bool
}

func (h *ProgressHandle) Update(done, total int, bytes int64) {
	if h.done.Load() {
		return
	}

	if total > 0 && int64(total) != h.total.Load() {
		h.total.Store(int64(total))
		h.bar.SetTotal(int64(total), false)
	}

	h.bytes.Store(bytes)
	h.bar.SetCurrent(int64(done))
}

// MarkDone completes the bar even when some pages failed.
func (h *ProgressHandle) MarkDone() {
	if h.done.Swap(true) {
		return
	}

	total := h.total.Load()
	h.bar.SetCurrent(total)
	h.bar.SetTotal(total, true)
}
