package fetch

import "context"

// Fetcher busca o markup de uma página de mercado da exchange.
// Implementações: HTTP puro (resty) e browser headless (chromedp) pra páginas
// que só montam as odds via JS.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}
