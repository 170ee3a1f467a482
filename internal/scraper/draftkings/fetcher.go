package draftkings

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultBaseURL      = "https://sportsbook.draftkings.com/leagues/baseball/mlb"
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	defaultPageSettle   = 10 * time.Second
	defaultFetchTimeout = 45 * time.Second
)

// fetcher renders market pages in a headless browser. The prop tables only
// exist after the page's scripts run, so a plain HTTP GET gets an empty
// shell.
type fetcher struct {
	baseURL      string
	userAgent    string
	pageSettle   time.Duration
	fetchTimeout time.Duration
}

// marketURL builds the category page URL. Category names go through query
// encoding so "hits-+-runs-+-rbis" keeps its literal plus signs.
func (f *fetcher) marketURL(mainCategory, subCategory string) string {
	q := url.Values{}
	q.Set("category", mainCategory)
	q.Set("sub_category", subCategory)
	return f.baseURL + "?" + q.Encode()
}

// fetchHTML loads the page in a fresh browser process and returns the
// rendered DOM. After navigation the tab is left alone for the settle time
// before the DOM is read; waiting on the event selector instead would turn
// legitimately empty pages into timeouts.
func (f *fetcher) fetchHTML(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-logging", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("allow-running-insecure-content", true),
		chromedp.UserAgent(f.userAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...any) {
		slog.Debug(fmt.Sprintf("chromedp: "+format, v...))
	}))
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(f.pageSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp navigation: %w", err)
	}
	return html, nil
}
