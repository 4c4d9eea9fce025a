package fetch

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renderiza a página num Chrome headless antes de devolver o DOM.
// Necessário quando a exchange monta a tabela de runners via JS.
// WaitSelector é o elemento aguardado antes de capturar o HTML.
type BrowserFetcher struct {
	WaitSelector string
}

func NewBrowserFetcher(waitSelector string) *BrowserFetcher {
	return &BrowserFetcher{WaitSelector: waitSelector}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Setup explícito pra evitar fallback pra versão mobile do site
	actx, cancelAlloc := chromedp.NewExecAllocator(
		ctx,
		chromedp.Headless,
		chromedp.Flag("force-device-scale-factor", "1"),
		chromedp.Flag("window-size", "1920,1080"),
	)
	defer cancelAlloc()

	bctx, cancelCtx := chromedp.NewContext(actx)
	defer cancelCtx()

	var dom string
	err := chromedp.Run(
		bctx,
		chromedp.Navigate(url),
		chromedp.WaitReady(f.WaitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &dom, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("browser fetch %s: %w", url, err)
	}

	return dom, nil
}
