package interfaces

import (
	"context"

	"github.com/Vodeneev/dkprops/internal/pkg/models"
)

// Source interface for sportsbook prop-odds sources
type Source interface {
	// Name returns the source name
	Name() string

	// FetchMarketPage loads the market page for one main/sub category pair
	// and returns its parsed representation
	FetchMarketPage(ctx context.Context, mainCategory, subCategory string) (MarketPage, error)
}

// MarketPage interface for one loaded category page
type MarketPage interface {
	// Events returns the event blocks found on the page, in page order.
	// A page with no scheduled events returns an empty slice, not an error
	Events() []EventBlock
}

// EventBlock interface for one event's accordion block on a market page
type EventBlock interface {
	// Info returns the matchup and resolved game-time fields. Markup drift
	// degrades the affected fields to empty strings, it never fails the page
	Info() models.EventInfo

	// MarketRows returns one row per player/odd-type cell in the block's
	// prop table, skipping the header row
	MarketRows() []models.MarketRow
}
