// Package render turns a page URL into HTML. Chrome executes the page's
// scripts in a headless browser; Static returns the raw server response.
package render

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

type Renderer interface {
	Render(ctx context.Context, url string, opts ...Option) (string, error)
}

type renderOptions struct {
	waitFor string
}

type Option func(*renderOptions)

// WaitFor asks the renderer to wait until selector is present instead of
// sleeping for the settle delay. Renderers that do not run scripts ignore it.
func WaitFor(selector string) Option {
	return func(o *renderOptions) {
		o.waitFor = selector
	}
}

func collect(opts []Option) renderOptions {
	var o renderOptions
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

type Options struct {
	Kind        string
	ChromePath  string
	UserAgent   string
	SettleDelay time.Duration
	WaitTimeout time.Duration
	Client      *http.Client
	Log         Logger
}

// Logger is the part of ui.Logger the renderers write to.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// New builds the renderer named by opts.Kind ("chrome" or "http").
func New(opts Options) (Renderer, error) {
	switch opts.Kind {
	case "", "chrome":
		return NewChrome(opts), nil
	case "http", "static":
		if opts.Client == nil {
			return nil, fmt.Errorf("static renderer needs an HTTP client")
		}
		return NewStatic(opts.Client), nil
	default:
		return nil, fmt.Errorf("unknown renderer %q", opts.Kind)
	}
}
