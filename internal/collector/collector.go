package collector

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Vodeneev/dkprops/internal/pkg/config"
	"github.com/Vodeneev/dkprops/internal/pkg/health"
	"github.com/Vodeneev/dkprops/internal/pkg/interfaces"
	"github.com/Vodeneev/dkprops/internal/pkg/models"
)

// Collector walks a source's category pages and flattens them into the
// odds table.
type Collector struct {
	cfg    *config.Config
	source interfaces.Source
}

func New(cfg *config.Config, source interfaces.Source) *Collector {
	return &Collector{cfg: cfg, source: source}
}

// categoryLabel turns a URL slug into the label written to the table,
// "runs-scored" becomes "runs_scored".
func categoryLabel(slug string) string {
	return strings.ReplaceAll(slug, "-", "_")
}

// CollectSubcategory fetches one market page and flattens its events into
// table rows. Every row of the subcategory shares one collection stamp,
// taken when the fetched page is handed over. A page without events yields
// an empty table, not an error.
func (c *Collector) CollectSubcategory(ctx context.Context, mainCategory, subCategory string) (models.Table, error) {
	page, err := c.source.FetchMarketPage(ctx, mainCategory, subCategory)
	if err != nil {
		return models.Table{}, err
	}
	now := time.Now()
	nowLocal := now.Format(models.StampLayout)
	nowUTC := now.UTC().Format(models.StampLayout)

	events := page.Events()
	if len(events) == 0 {
		slog.Info("No events found for subcategory",
			"source", c.source.Name(), "main_category", mainCategory, "sub_category", subCategory)
		health.SubcategoryDone(mainCategory, subCategory, 0, 0)
		return models.Table{}, nil
	}
	slog.Info("Processing events",
		"source", c.source.Name(), "sub_category", subCategory, "events", len(events))

	mainLabel := categoryLabel(mainCategory)
	subLabel := categoryLabel(subCategory)

	table := models.Table{}
	for _, ev := range events {
		info := ev.Info()
		for _, mr := range ev.MarketRows() {
			table.Append(models.Row{
				PlayerName:     mr.PlayerName,
				OverUnderTotal: mr.OverUnderTotal,
				Odds:           mr.Odds,
				OddType:        mr.OddType,
				HomeTeam:       info.HomeTeam,
				AwayTeam:       info.AwayTeam,
				GameTimeLocal:  info.GameTimeLocal,
				GameTimeUTC:    info.GameTimeUTC,
				GameDate:       info.GameDate,
				MainCategory:   mainLabel,
				SubCategory:    subLabel,
				TimeNowLocal:   nowLocal,
				TimeNowUTC:     nowUTC,
			})
		}
	}

	health.SubcategoryDone(mainCategory, subCategory, len(events), table.Len())
	return table, nil
}

// CollectCategory gathers every subcategory of one main category and merges
// their tables in subcategory order. Subcategories run concurrently up to
// the configured limit; the first failure cancels the rest and fails the
// category.
func (c *Collector) CollectCategory(ctx context.Context, category MainCategory) (models.Table, error) {
	slog.Info("Gathering category",
		"main_category", category.Name, "subcategories", len(category.Subcategories))

	tables := make([]models.Table, len(category.Subcategories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency())
	for i, sub := range category.Subcategories {
		g.Go(func() error {
			t, err := c.CollectSubcategory(gctx, category.Name, sub)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Table{}, err
	}

	merged := models.Table{}
	for _, t := range tables {
		merged = merged.Merge(t)
	}
	slog.Info("Category done", "main_category", category.Name, "rows", merged.Len())
	return merged, nil
}

// CollectAll gathers the catalog's main categories one after another and
// merges everything into the run table. Concurrency lives inside each
// category; a category failure aborts the whole run.
func (c *Collector) CollectAll(ctx context.Context, catalog []MainCategory) (models.Table, error) {
	final := models.Table{}
	for _, category := range catalog {
		t, err := c.CollectCategory(ctx, category)
		if err != nil {
			return models.Table{}, err
		}
		final = final.Merge(t)
	}
	return final, nil
}

func (c *Collector) concurrency() int {
	if n := c.cfg.Collector.Concurrency; n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
