package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Static fetches the document with a single GET. Scripts are not executed.
type Static struct {
	client *http.Client
}

func NewStatic(c *http.Client) *Static {
	return &Static{client: c}
}

func (s *Static) Render(ctx context.Context, url string, _ ...Option) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("render %s: HTTP %d", url, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	return string(b), nil
}
