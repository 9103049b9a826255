package render

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><body><h1>Series X</h1></body></html>`)
	}))
	defer srv.Close()

	r := NewStatic(srv.Client())

	html, err := r.Render(context.Background(), srv.URL+"/manga/series-x", WaitFor("#readerarea"))
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Series X</h1>")

	_, err = r.Render(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestNew(t *testing.T) {
	r, err := New(Options{Kind: "http", Client: http.DefaultClient})
	require.NoError(t, err)
	assert.IsType(t, &Static{}, r)

	r, err = New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &Chrome{}, r)

	_, err = New(Options{Kind: "http"})
	assert.Error(t, err)

	_, err = New(Options{Kind: "lynx"})
	assert.ErrorContains(t, err, "unknown renderer")
}

func TestCollectOptions(t *testing.T) {
	o := collect([]Option{WaitFor("#readerarea")})
	assert.Equal(t, "#readerarea", o.waitFor)
	assert.Empty(t, collect(nil).waitFor)
}

func TestNewChromeDefaults(t *testing.T) {
	c := NewChrome(Options{SettleDelay: -1})
	assert.Zero(t, c.settle)
	assert.Equal(t, DefaultWaitTimeout, c.waitTimeout)
	assert.Len(t, c.allocatorOptions(), len(NewChrome(Options{}).allocatorOptions()))

	withPath := NewChrome(Options{ChromePath: "/usr/bin/chromium", UserAgent: "komikd-test"})
	assert.Len(t, withPath.allocatorOptions(), len(c.allocatorOptions())+2)
}
