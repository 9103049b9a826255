package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/brogergvhs/komikd/internal/chapters"
	"github.com/brogergvhs/komikd/internal/providers/generic"
	"github.com/brogergvhs/komikd/internal/render"
	"github.com/brogergvhs/komikd/internal/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output       string `yaml:"output"`
	ChapterToken string `yaml:"chapter_token"`
	UserAgent    string `yaml:"user_agent"`
	Debug        bool   `yaml:"debug"`

	ReaderID     string `yaml:"reader_id"`
	ListSelector string `yaml:"list_selector"`

	Renderer      string        `yaml:"renderer"`
	ChromePath    string        `yaml:"chrome_path"`
	SettleDelay   time.Duration `yaml:"settle_delay"`
	WaitForReader bool          `yaml:"wait_for_reader"`
	WaitTimeout   time.Duration `yaml:"wait_timeout"`

	HTTPTimeout      time.Duration `yaml:"http_timeout"`
	Cookie           string        `yaml:"cookie"`
	CookieFile       string        `yaml:"cookie_file"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	ChapterToken     string
	UserAgent        string
	Renderer         string
	ChromePath       string
	SettleDelay      time.Duration
	WaitForReader    bool
	Cookie           string
	CookieFile       string
	CloudflareBypass bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:        "downloads",
		ChapterToken:  chapters.DefaultToken,
		UserAgent:     util.DefaultUserAgent,
		ReaderID:      generic.DefaultReaderID,
		ListSelector:  generic.DefaultListSelector,
		Renderer:      "chrome",
		SettleDelay:   render.DefaultSettleDelay,
		WaitTimeout:   render.DefaultWaitTimeout,
		HTTPTimeout:   30 * time.Second,
		WaitForReader: false,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	return DefaultStore().Load(opts)
}

// Load reads the active profile and applies opts on top. Without an active
// profile the defaults are used.
func (s *Store) Load(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := s.ActivePath()
	if errors.Is(err, ErrNoConfig) {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `komikd config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.ChapterToken != "" {
		c.ChapterToken = o.ChapterToken
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.Renderer != "" {
		c.Renderer = o.Renderer
	}
	if o.ChromePath != "" {
		c.ChromePath = o.ChromePath
	}
	if o.SettleDelay > 0 {
		c.SettleDelay = o.SettleDelay
	}
	if o.WaitForReader {
		c.WaitForReader = true
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.Output == "" {
		c.Output = def.Output
	}
	if c.ChapterToken == "" {
		c.ChapterToken = def.ChapterToken
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.ReaderID == "" {
		c.ReaderID = def.ReaderID
	}
	if c.ListSelector == "" {
		c.ListSelector = def.ListSelector
	}
	if c.Renderer == "" {
		c.Renderer = def.Renderer
	}
	if c.WaitTimeout <= 0 {
		c.WaitTimeout = def.WaitTimeout
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = def.HTTPTimeout
	}
}

func (c *Config) Print(w io.Writer) {
	fmt.Fprintf(w, " -output: %s\n", c.Output)
	fmt.Fprintf(w, " -chapter_token: %s\n", c.ChapterToken)
	fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	fmt.Fprintf(w, " -reader_id: %s\n", c.ReaderID)
	fmt.Fprintf(w, " -list_selector: %s\n", c.ListSelector)
	fmt.Fprintf(w, " -renderer: %s\n", c.Renderer)
	if c.ChromePath != "" {
		fmt.Fprintf(w, " -chrome_path: %s\n", c.ChromePath)
	}
	if c.WaitForReader {
		fmt.Fprintf(w, " -wait_for_reader: %t (timeout %s)\n", c.WaitForReader, c.WaitTimeout)
	} else {
		fmt.Fprintf(w, " -settle_delay: %s\n", c.SettleDelay)
	}
	fmt.Fprintf(w, " -http_timeout: %s\n", c.HTTPTimeout)
	if c.Debug {
		fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if c.CookieFile != "" {
		fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.CloudflareBypass {
		fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
}
