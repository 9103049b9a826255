package cmd

import (
	"fmt"
	"net/http"

	"github.com/brogergvhs/komikd/internal/config"
	"github.com/brogergvhs/komikd/internal/downloader"
	"github.com/brogergvhs/komikd/internal/providers/generic"
	"github.com/brogergvhs/komikd/internal/render"
	"github.com/brogergvhs/komikd/internal/ui"
	"github.com/brogergvhs/komikd/internal/util"

	"github.com/kr/pretty"
)

// session holds everything a command needs, built once from the merged
// config.
type session struct {
	cfg      *config.Config
	usedPath string
	log      *ui.Logger
	client   *http.Client
	scraper  *generic.Scraper
}

func newSession() (*session, error) {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		Output:           flagOutput,
		ChapterToken:     flagChapterToken,
		UserAgent:        flagUserAgent,
		Renderer:         flagRenderer,
		ChromePath:       flagChromePath,
		SettleDelay:      flagSettleDelay,
		WaitForReader:    flagWaitForReader,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		CloudflareBypass: flagCloudflare,
	})
	if err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.Debugf("Effective config: %# v\n", pretty.Formatter(cfg))

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:          cfg.HTTPTimeout,
		UserAgent:        util.PickUserAgent(cfg.UserAgent),
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      logSvc,
	})
	if err != nil {
		return nil, err
	}

	r, err := render.New(render.Options{
		Kind:        cfg.Renderer,
		ChromePath:  cfg.ChromePath,
		UserAgent:   cfg.UserAgent,
		SettleDelay: cfg.SettleDelay,
		WaitTimeout: cfg.WaitTimeout,
		Client:      client,
		Log:         logSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	scr := generic.NewScraper(r, generic.Options{
		ChapterToken:  cfg.ChapterToken,
		ReaderID:      cfg.ReaderID,
		ListSelector:  cfg.ListSelector,
		WaitForReader: cfg.WaitForReader,
	}, logSvc)

	return &session{
		cfg:      cfg,
		usedPath: usedPath,
		log:      logSvc,
		client:   client,
		scraper:  scr,
	}, nil
}

func (s *session) runner(pm *ui.MPBProgressManager) *downloader.Runner {
	r := &downloader.Runner{
		Scraper:    s.scraper,
		Downloader: downloader.New(s.client, s.log),
		Output:     s.cfg.Output,
		Token:      s.cfg.ChapterToken,
		Log:        s.log,
	}

	if pm != nil {
		r.Progress = func(label string) downloader.Tracker {
			return pm.Register(label)
		}
	}

	return r
}
