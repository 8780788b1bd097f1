package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPHealthFetcher retrieves component health payloads from the status
// endpoints configured per landscape
type HTTPHealthFetcher struct {
	landscapes map[string]string // landscape name -> base URL
	client     *http.Client
}

func NewHTTPHealthFetcher(landscapes map[string]string) *HTTPHealthFetcher {
	return &HTTPHealthFetcher{
		landscapes: landscapes,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchHealth fetches the raw health document for a component
func (f *HTTPHealthFetcher) FetchHealth(ctx context.Context, component, landscape string) ([]byte, error) {
	base, ok := f.landscapes[landscape]
	if !ok {
		return nil, fmt.Errorf("unknown landscape: %s", landscape)
	}

	url := fmt.Sprintf("%s/%s/health", base, component)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create health request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call health endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read health response: %w", err)
	}
	return body, nil
}
