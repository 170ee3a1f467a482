package draftkings

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Vodeneev/dkprops/internal/pkg/config"
	"github.com/Vodeneev/dkprops/internal/pkg/interfaces"
	"github.com/Vodeneev/dkprops/internal/scraper"
)

const SourceName = "draftkings"

// Source scrapes MLB player-prop odds from the DraftKings sportsbook.
type Source struct {
	fetcher *fetcher
}

func NewSource(cfg *config.Config) *Source {
	baseURL := cfg.Scraper.DraftKings.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := cfg.Browser.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	settle := cfg.Browser.PageSettle
	if settle <= 0 {
		settle = defaultPageSettle
	}
	timeout := cfg.Browser.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Source{
		fetcher: &fetcher{
			baseURL:      baseURL,
			userAgent:    userAgent,
			pageSettle:   settle,
			fetchTimeout: timeout,
		},
	}
}

func (s *Source) Name() string {
	return SourceName
}

// FetchMarketPage loads and parses one category page. The capture moment
// anchors the page's relative game dates ("Today", "Tomorrow").
func (s *Source) FetchMarketPage(ctx context.Context, mainCategory, subCategory string) (interfaces.MarketPage, error) {
	pageURL := s.fetcher.marketURL(mainCategory, subCategory)
	start := time.Now()

	html, err := s.fetcher.fetchHTML(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", mainCategory, subCategory, err)
	}
	fetchedAt := time.Now()

	page, err := parseMarketPage(html, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parse %s/%s: %w", mainCategory, subCategory, err)
	}
	slog.Debug("DraftKings: market page fetched",
		"main_category", mainCategory,
		"sub_category", subCategory,
		"events", len(page.Events()),
		"duration", time.Since(start))
	return page, nil
}

func init() {
	scraper.Register(SourceName, func(cfg *config.Config) interfaces.Source {
		return NewSource(cfg)
	})
}
