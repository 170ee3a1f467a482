package draftkings

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Vodeneev/dkprops/internal/pkg/interfaces"
	"github.com/Vodeneev/dkprops/internal/pkg/models"
)

const eventWrapperSelector = "div.sportsbook-event-accordion__wrapper"

type marketPage struct {
	events []interfaces.EventBlock
}

// parseMarketPage parses the rendered HTML of one category page into its
// event blocks. fetchedAt anchors the relative day words in event headers.
// A page without event wrappers parses to a page with zero events.
func parseMarketPage(html string, fetchedAt time.Time) (interfaces.MarketPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse market page: %w", err)
	}
	page := &marketPage{}
	doc.Find(eventWrapperSelector).Each(func(_ int, sel *goquery.Selection) {
		page.events = append(page.events, &eventBlock{sel: sel, fetchedAt: fetchedAt})
	})
	return page, nil
}

func (p *marketPage) Events() []interfaces.EventBlock {
	return p.events
}

type eventBlock struct {
	sel       *goquery.Selection
	fetchedAt time.Time
}

// headerTexts reads the teams and schedule strings from the block's header
// div. The header's last children are fixed: teams text, then schedule text,
// then the accordion chevron, so both texts are addressed from the tail.
func (e *eventBlock) headerTexts() (teams, schedule string, ok bool) {
	kids := e.sel.Find("div").First().Children()
	n := kids.Length()
	if n < 3 {
		slog.Warn("DraftKings: event header too short", "children", n)
		return "", "", false
	}
	return kids.Eq(n - 3).Text(), kids.Eq(n - 2).Text(), true
}

// Info assembles the matchup and schedule fields. Drifted markup degrades
// the affected fields to empty strings and logs a warning; an event header
// never fails the page.
func (e *eventBlock) Info() models.EventInfo {
	teamsText, scheduleText, ok := e.headerTexts()
	if !ok {
		return models.EventInfo{}
	}

	info := models.EventInfo{GameTime: scheduleText}
	if away, home, found := splitTeamNames(teamsText); found {
		info.AwayTeam = away
		info.HomeTeam = home
	} else {
		slog.Warn("DraftKings: no team boundary in event header", "teams_text", teamsText)
	}

	gameDate, clockLocal, clockUTC, err := resolveGameTime(scheduleText, e.fetchedAt)
	if err != nil {
		slog.Warn("DraftKings: unparsable event schedule", "error", err)
	} else {
		info.GameDate = gameDate
		info.GameTimeLocal = clockLocal
		info.GameTimeUTC = clockUTC
	}
	return info
}

// MarketRows walks the block's prop table and emits two rows per player, the
// over cell then the under cell. The first tr is the column header. Cells
// that fail to parse produce rows with nil total and odds rather than being
// dropped, so a suspended side still surfaces as a row. A block without a
// table yields nil and a warning.
func (e *eventBlock) MarketRows() []models.MarketRow {
	table := e.sel.Find("table").First()
	if table.Length() == 0 {
		slog.Warn("DraftKings: event block has no prop table")
		return nil
	}
	var rows []models.MarketRow
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		name := cleanPlayerName(tr.Find("th").First().Text())
		cells := tr.Find("td")
		overTotal, overOdds := parseOddsCell(cells.Eq(0).Text())
		underTotal, underOdds := parseOddsCell(cells.Eq(1).Text())
		rows = append(rows,
			models.MarketRow{PlayerName: name, OverUnderTotal: overTotal, Odds: overOdds, OddType: models.OddTypeOver},
			models.MarketRow{PlayerName: name, OverUnderTotal: underTotal, Odds: underOdds, OddType: models.OddTypeUnder},
		)
	})
	return rows
}
