package util

import (
	"bufio"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

type HTTPClientOptions struct {
	Timeout   time.Duration
	UserAgent string

	// Cookie is sent as is; the first non-blank line of CookieFile is
	// appended to it.
	Cookie     string
	CookieFile string

	// CloudflareBypass mimics a browser TLS fingerprint.
	CloudflareBypass bool

	// Transport replaces the default transport, mostly for tests.
	Transport   http.RoundTripper
	DebugLogger interface {
		Debugf(string, ...any)
	}
}

// NewHTTPClient builds the client used for image downloads and the static
// renderer. Every request carries the configured User-Agent and cookies.
func NewHTTPClient(opts HTTPClientOptions) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	base := opts.Transport
	if base == nil {
		base = &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			ForceAttemptHTTP2: true,
		}
	}
	if opts.CloudflareBypass {
		base = cloudflarebp.AddCloudFlareByPass(base)
	}

	cookie := strings.TrimSpace(opts.Cookie)
	if line := firstLine(opts.CookieFile); line != "" {
		cookie = joinCookie(cookie, line)
	}

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client ready (timeout=%s, ua=%q, cookie_file=%q, cloudflare=%t)\n",
			opts.Timeout, opts.UserAgent, opts.CookieFile, opts.CloudflareBypass)
	}

	return &http.Client{
		Timeout: opts.Timeout,
		Jar:     jar,
		Transport: headerTransport{
			base:   base,
			ua:     opts.UserAgent,
			cookie: cookie,
			log:    opts.DebugLogger,
		},
	}, nil
}

type headerTransport struct {
	base   http.RoundTripper
	ua     string
	cookie string
	log    interface{ Debugf(string, ...any) }
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.ua != "" {
		req.Header.Set("User-Agent", t.ua)
	}
	if t.cookie != "" && req.Header.Get("Cookie") == "" {
		req.Header.Set("Cookie", t.cookie)
	}

	if t.log != nil {
		t.log.Debugf("HTTP %s %s\n", req.Method, req.URL)
	}

	return t.base.RoundTrip(req)
}

// firstLine returns the first non-blank line of path, or "" when the file
// is missing or empty.
func firstLine(path string) string {
	if path == "" {
		return ""
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() {
		_ = f.Close()
	}()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line
		}
	}

	return ""
}

func joinCookie(a, b string) string {
	a = strings.TrimSpace(a)
	if a == "" {
		return b
	}

	return a + "; " + b
}

func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return DefaultUserAgent
}
