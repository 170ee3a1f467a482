package models

import "strconv"

// OddType identifies which side of an over/under line a row quotes.
type OddType string

const (
	OddTypeOver  OddType = "Over"
	OddTypeUnder OddType = "Under"
)

// MarketRow is a single player/odds-type observation from one event's prop
// table. Odds use the American convention (signed integer). Nil Total/Odds
// mean the source text did not match the expected format; malformed cells
// degrade to nil instead of failing the run.
type MarketRow struct {
	PlayerName     string   `json:"player_name"`
	OverUnderTotal *float64 `json:"over_under_total"`
	Odds           *int     `json:"odds"`
	OddType        OddType  `json:"odd_type"`
}

// Row is one flattened observation in the output table: a MarketRow plus the
// event, category and collection-time fields shared with its sibling rows.
type Row struct {
	PlayerName     string   `json:"player_name"`
	OverUnderTotal *float64 `json:"over_under_total"`
	Odds           *int     `json:"odds"`
	OddType        OddType  `json:"odd_type"`
	HomeTeam       string   `json:"home_team"`
	AwayTeam       string   `json:"away_team"`
	GameTimeLocal  string   `json:"game_time_local"`
	GameTimeUTC    string   `json:"game_time_utc"`
	GameDate       string   `json:"game_date"`
	MainCategory   string   `json:"main_category_type"`
	SubCategory    string   `json:"sub_category_type"`
	TimeNowLocal   string   `json:"time_now_local"`
	TimeNowUTC     string   `json:"time_now_utc"`
}

// columns is the fixed output schema, in export order. Every table carries
// the full column set even when it holds zero rows.
var columns = []string{
	"player_name",
	"over_under_total",
	"odds",
	"odd_type",
	"home_team",
	"away_team",
	"game_time_local",
	"game_time_utc",
	"game_date",
	"main_category_type",
	"sub_category_type",
	"time_now_local",
	"time_now_utc",
}

// Columns returns the output schema in export order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// Record renders the row as CSV cells in Columns order. Nil numeric fields
// render as empty cells.
func (r Row) Record() []string {
	total := ""
	if r.OverUnderTotal != nil {
		total = strconv.FormatFloat(*r.OverUnderTotal, 'g', -1, 64)
	}
	odds := ""
	if r.Odds != nil {
		odds = strconv.Itoa(*r.Odds)
	}
	return []string{
		r.PlayerName,
		total,
		odds,
		string(r.OddType),
		r.HomeTeam,
		r.AwayTeam,
		r.GameTimeLocal,
		r.GameTimeUTC,
		r.GameDate,
		r.MainCategory,
		r.SubCategory,
		r.TimeNowLocal,
		r.TimeNowUTC,
	}
}

// Table is an ordered row collection over the fixed column schema. Tables
// compose append-only: a produced table is never mutated once handed to a
// parent, parents build new tables via Merge.
type Table struct {
	Rows []Row
}

// NewTable builds a table from the given rows.
func NewTable(rows ...Row) Table {
	t := Table{}
	t.Append(rows...)
	return t
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// Append adds rows to the table in place.
func (t *Table) Append(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Merge returns a new table holding the receiver's rows followed by the
// other table's rows. Neither input is modified and no deduplication
// happens: row order is insertion order and carries no meaning.
func (t Table) Merge(other Table) Table {
	rows := make([]Row, 0, len(t.Rows)+len(other.Rows))
	rows = append(rows, t.Rows...)
	rows = append(rows, other.Rows...)
	return Table{Rows: rows}
}

// Records renders every row as CSV cells, without the header.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, r.Record())
	}
	return out
}
