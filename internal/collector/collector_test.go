package collector

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Vodeneev/dkprops/internal/pkg/config"
	"github.com/Vodeneev/dkprops/internal/pkg/interfaces"
	"github.com/Vodeneev/dkprops/internal/pkg/models"
)

type fakeBlock struct {
	info models.EventInfo
	rows []models.MarketRow
}

func (b *fakeBlock) Info() models.EventInfo {
	return b.info
}

func (b *fakeBlock) MarketRows() []models.MarketRow {
	return b.rows
}

type fakePage struct {
	blocks []interfaces.EventBlock
}

func (p *fakePage) Events() []interfaces.EventBlock {
	return p.blocks
}

type fakeSource struct {
	mu    sync.Mutex
	calls []string
	pages map[string]*fakePage
	errs  map[string]error
}

func (s *fakeSource) Name() string {
	return "fake"
}

func (s *fakeSource) FetchMarketPage(ctx context.Context, mainCategory, subCategory string) (interfaces.MarketPage, error) {
	key := mainCategory + "/" + subCategory
	s.mu.Lock()
	s.calls = append(s.calls, key)
	s.mu.Unlock()

	if err := s.errs[key]; err != nil {
		return nil, err
	}
	if p := s.pages[key]; p != nil {
		return p, nil
	}
	return &fakePage{}, nil
}

func marketRowsFor(player string, total float64, over, under int) []models.MarketRow {
	return []models.MarketRow{
		{PlayerName: player, OverUnderTotal: &total, Odds: &over, OddType: models.OddTypeOver},
		{PlayerName: player, OverUnderTotal: &total, Odds: &under, OddType: models.OddTypeUnder},
	}
}

func newTestCollector(src *fakeSource, concurrency int) *Collector {
	cfg := &config.Config{}
	cfg.Collector.Concurrency = concurrency
	return New(cfg, src)
}

func TestCollectSubcategory(t *testing.T) {
	info := models.EventInfo{
		HomeTeam:      "SF Giants",
		AwayTeam:      "WAS Nationals",
		GameDate:      "2024-06-11",
		GameTimeLocal: "19:05",
		GameTimeUTC:   "23:05",
	}
	src := &fakeSource{pages: map[string]*fakePage{
		"batter-props/hits-+-runs-+-rbis": {blocks: []interfaces.EventBlock{
			&fakeBlock{info: info, rows: marketRowsFor("Aaron Judge", 1.5, -140, 115)},
			&fakeBlock{info: info, rows: marketRowsFor("Juan Soto", 0.5, 200, -250)},
		}},
	}}

	table, err := newTestCollector(src, 1).CollectSubcategory(context.Background(), "batter-props", "hits-+-runs-+-rbis")
	if err != nil {
		t.Fatalf("CollectSubcategory() error: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("table has %d rows, want 4", table.Len())
	}

	first := table.Rows[0]
	if first.PlayerName != "Aaron Judge" || first.OddType != models.OddTypeOver {
		t.Errorf("rows[0] = %q/%s, want Aaron Judge/Over", first.PlayerName, first.OddType)
	}
	if first.HomeTeam != "SF Giants" || first.AwayTeam != "WAS Nationals" || first.GameDate != "2024-06-11" {
		t.Errorf("rows[0] event fields = %q/%q/%q, want copied from event info",
			first.HomeTeam, first.AwayTeam, first.GameDate)
	}
	if first.MainCategory != "batter_props" {
		t.Errorf("rows[0].MainCategory = %q, want batter_props", first.MainCategory)
	}
	if first.SubCategory != "hits_+_runs_+_rbis" {
		t.Errorf("rows[0].SubCategory = %q, want hits_+_runs_+_rbis", first.SubCategory)
	}

	if _, err := time.Parse(models.StampLayout, first.TimeNowLocal); err != nil {
		t.Errorf("TimeNowLocal %q does not parse with the stamp layout: %v", first.TimeNowLocal, err)
	}
	for i, row := range table.Rows {
		if row.TimeNowLocal != first.TimeNowLocal || row.TimeNowUTC != first.TimeNowUTC {
			t.Errorf("rows[%d] stamps differ within one subcategory: %q/%q vs %q/%q",
				i, row.TimeNowLocal, row.TimeNowUTC, first.TimeNowLocal, first.TimeNowUTC)
		}
	}
}

func TestCollectSubcategoryNoEvents(t *testing.T) {
	src := &fakeSource{}
	table, err := newTestCollector(src, 1).CollectSubcategory(context.Background(), "batter-props", "walks")
	if err != nil {
		t.Fatalf("CollectSubcategory() error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("table has %d rows, want 0 for an empty page", table.Len())
	}
}

func TestCollectSubcategoryFetchError(t *testing.T) {
	src := &fakeSource{errs: map[string]error{
		"batter-props/hits": errors.New("chromedp navigation: timeout"),
	}}
	if _, err := newTestCollector(src, 1).CollectSubcategory(context.Background(), "batter-props", "hits"); err == nil {
		t.Error("CollectSubcategory() returned no error for a failed fetch")
	}
}

func TestCollectSubcategoryDegradedEventInfo(t *testing.T) {
	// An event whose header failed to parse still contributes its market
	// rows, with the event fields left empty.
	src := &fakeSource{pages: map[string]*fakePage{
		"batter-props/hits": {blocks: []interfaces.EventBlock{
			&fakeBlock{rows: marketRowsFor("Aaron Judge", 1.5, -140, 115)},
		}},
	}}
	table, err := newTestCollector(src, 1).CollectSubcategory(context.Background(), "batter-props", "hits")
	if err != nil {
		t.Fatalf("CollectSubcategory() error: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("table has %d rows, want 2", table.Len())
	}
	row := table.Rows[0]
	if row.HomeTeam != "" || row.AwayTeam != "" || row.GameDate != "" {
		t.Errorf("rows[0] event fields = %q/%q/%q, want empty for a degraded header",
			row.HomeTeam, row.AwayTeam, row.GameDate)
	}
	if row.SubCategory != "hits" || row.PlayerName != "Aaron Judge" {
		t.Errorf("rows[0] = %q/%q, want category and player fields intact", row.SubCategory, row.PlayerName)
	}
}

func TestCollectCategoryMergeOrder(t *testing.T) {
	info := models.EventInfo{HomeTeam: "H", AwayTeam: "A", GameDate: "2024-06-11"}
	src := &fakeSource{pages: map[string]*fakePage{
		"batter-props/home-runs": {blocks: []interfaces.EventBlock{
			&fakeBlock{info: info, rows: marketRowsFor("HR Player", 0.5, 300, -400)},
		}},
		"batter-props/hits": {blocks: []interfaces.EventBlock{
			&fakeBlock{info: info, rows: marketRowsFor("Hits Player", 1.5, -120, 100)},
		}},
	}}
	category := MainCategory{Name: "batter-props", Subcategories: []string{"home-runs", "hits"}}

	table, err := newTestCollector(src, 4).CollectCategory(context.Background(), category)
	if err != nil {
		t.Fatalf("CollectCategory() error: %v", err)
	}
	if table.Len() != 4 {
		t.Fatalf("table has %d rows, want 4", table.Len())
	}
	// Merge order follows the subcategory list even when fetches run
	// concurrently.
	wantPlayers := []string{"HR Player", "HR Player", "Hits Player", "Hits Player"}
	for i, want := range wantPlayers {
		if table.Rows[i].PlayerName != want {
			t.Errorf("rows[%d].PlayerName = %q, want %q", i, table.Rows[i].PlayerName, want)
		}
	}
}

func TestCollectCategoryFirstFailureAborts(t *testing.T) {
	src := &fakeSource{
		pages: map[string]*fakePage{
			"batter-props/home-runs": {},
		},
		errs: map[string]error{
			"batter-props/hits": errors.New("chromedp navigation: timeout"),
		},
	}
	category := MainCategory{Name: "batter-props", Subcategories: []string{"home-runs", "hits", "walks"}}

	table, err := newTestCollector(src, 1).CollectCategory(context.Background(), category)
	if err == nil {
		t.Fatal("CollectCategory() returned no error")
	}
	if table.Len() != 0 {
		t.Errorf("failed category returned %d rows, want 0", table.Len())
	}
}

func TestCollectNothingToDo(t *testing.T) {
	src := &fakeSource{}
	c := newTestCollector(src, 2)

	table, err := c.CollectCategory(context.Background(), MainCategory{Name: "batter-props"})
	if err != nil {
		t.Fatalf("CollectCategory() error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("category without subcategories returned %d rows, want 0", table.Len())
	}

	table, err = c.CollectAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("CollectAll() error: %v", err)
	}
	if table.Len() != 0 {
		t.Errorf("empty catalog returned %d rows, want 0", table.Len())
	}
	if len(src.calls) != 0 {
		t.Errorf("source saw %d fetches, want 0", len(src.calls))
	}
}

func TestCollectAllSequentialMatchesConcurrent(t *testing.T) {
	info := models.EventInfo{HomeTeam: "H", AwayTeam: "A"}
	pages := map[string]*fakePage{
		"batter-props/home-runs":          {blocks: []interfaces.EventBlock{&fakeBlock{info: info, rows: marketRowsFor("B1", 0.5, 100, -110)}}},
		"batter-props/hits":               {blocks: []interfaces.EventBlock{&fakeBlock{info: info, rows: marketRowsFor("B2", 1.5, 120, -130)}}},
		"pitcher-props/strikeouts-thrown": {blocks: []interfaces.EventBlock{&fakeBlock{info: info, rows: marketRowsFor("P1", 5.5, -140, 150)}}},
		"pitcher-props/outs-recorded":     {blocks: []interfaces.EventBlock{&fakeBlock{info: info, rows: marketRowsFor("P2", 16.5, 160, -170)}}},
	}
	catalog := []MainCategory{
		{Name: "batter-props", Subcategories: []string{"home-runs", "hits"}},
		{Name: "pitcher-props", Subcategories: []string{"strikeouts-thrown", "outs-recorded"}},
	}

	rowKeys := func(t *testing.T, concurrency int) []string {
		t.Helper()
		src := &fakeSource{pages: pages}
		table, err := newTestCollector(src, concurrency).CollectAll(context.Background(), catalog)
		if err != nil {
			t.Fatalf("CollectAll() error: %v", err)
		}
		keys := make([]string, 0, table.Len())
		for _, r := range table.Rows {
			keys = append(keys, r.PlayerName+"/"+r.SubCategory+"/"+string(r.OddType))
		}
		return keys
	}

	sequential := rowKeys(t, 1)
	concurrent := rowKeys(t, 4)

	if len(sequential) != 8 {
		t.Fatalf("sequential run has %d rows, want 8", len(sequential))
	}
	for i := range sequential {
		if sequential[i] != concurrent[i] {
			t.Fatalf("row %d differs between runs: %q vs %q", i, sequential[i], concurrent[i])
		}
	}
}

func TestCollectAllGathersCategoriesInOrder(t *testing.T) {
	src := &fakeSource{pages: map[string]*fakePage{}}
	catalog := []MainCategory{
		{Name: "batter-props", Subcategories: []string{"home-runs", "hits"}},
		{Name: "pitcher-props", Subcategories: []string{"strikeouts-thrown"}},
	}

	if _, err := newTestCollector(src, 2).CollectAll(context.Background(), catalog); err != nil {
		t.Fatalf("CollectAll() error: %v", err)
	}

	if len(src.calls) != 3 {
		t.Fatalf("source saw %d calls, want 3", len(src.calls))
	}
	// Batter fetches may land in any order between themselves but must all
	// precede the pitcher fetch.
	for i, call := range src.calls[:2] {
		if !strings.HasPrefix(call, "batter-props/") {
			t.Errorf("calls[%d] = %q, want a batter-props fetch", i, call)
		}
	}
	if src.calls[2] != "pitcher-props/strikeouts-thrown" {
		t.Errorf("calls[2] = %q, want pitcher-props/strikeouts-thrown", src.calls[2])
	}
}

func TestCatalogFromConfig(t *testing.T) {
	if got := CatalogFromConfig(nil); len(got) != 2 || got[0].Name != "batter-props" || got[1].Name != "pitcher-props" {
		t.Errorf("CatalogFromConfig(nil) = %+v, want the default catalog", got)
	}

	def := DefaultCatalog()
	if n := len(def[0].Subcategories); n != 11 {
		t.Errorf("default batter-props has %d subcategories, want 11", n)
	}
	if n := len(def[1].Subcategories); n != 5 {
		t.Errorf("default pitcher-props has %d subcategories, want 5", n)
	}

	custom := CatalogFromConfig([]config.CategoryConfig{
		{Name: "batter-props", Subcategories: []string{"home-runs"}},
	})
	if len(custom) != 1 || custom[0].Name != "batter-props" || len(custom[0].Subcategories) != 1 {
		t.Errorf("CatalogFromConfig(custom) = %+v, want the single configured category", custom)
	}
}
