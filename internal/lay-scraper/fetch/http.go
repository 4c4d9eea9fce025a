package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// HTTPFetcher faz um único GET por ciclo. Sem retry: falha de rede ou status
// de erro aborta o ciclo e o próximo tick tenta de novo.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", defaultUserAgent).
		SetRetryCount(0)

	return &HTTPFetcher{client: c}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}
