package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	DefaultSettleDelay = 2 * time.Second
	DefaultWaitTimeout = 15 * time.Second
)

// Chrome starts a fresh headless browser for every Render call and shuts it
// down before returning.
type Chrome struct {
	execPath    string
	userAgent   string
	settle      time.Duration
	waitTimeout time.Duration
	log         Logger
}

func NewChrome(opts Options) *Chrome {
	settle := opts.SettleDelay
	if settle < 0 {
		settle = 0
	}

	wait := opts.WaitTimeout
	if wait <= 0 {
		wait = DefaultWaitTimeout
	}

	return &Chrome{
		execPath:    opts.ChromePath,
		userAgent:   opts.UserAgent,
		settle:      settle,
		waitTimeout: wait,
		log:         opts.Log,
	}
}

func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
	)

	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	if c.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(c.userAgent))
	}

	return opts
}

func (c *Chrome) Render(ctx context.Context, url string, opts ...Option) (string, error) {
	o := collect(opts)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	if c.log != nil {
		c.log.Debugf("Rendering %s (wait_for=%q)\n", url, o.waitFor)
	}

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return c.settleDown(ctx, o.waitFor)
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	return html, nil
}

// settleDown waits for the selector when one is given, falling through to
// whatever the page holds once waitTimeout passes.
func (c *Chrome) settleDown(ctx context.Context, waitFor string) error {
	if waitFor == "" {
		return chromedp.Sleep(c.settle).Do(ctx)
	}

	wctx, cancel := context.WithTimeout(ctx, c.waitTimeout)
	defer cancel()

	err := chromedp.WaitReady(waitFor, chromedp.ByQuery).Do(wctx)
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		if c.log != nil {
			c.log.Warnf("Timed out waiting for %s, using page as is\n", waitFor)
		}
		return nil
	}

	return err
}
