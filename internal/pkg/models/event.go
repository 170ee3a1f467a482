package models

// Time layouts shared by event parsing and collection stamps.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
	StampLayout = "2006-01-02 15:04:05"
)

// EventInfo describes one scheduled matchup scraped from a market page. The
// source expresses game times relative to the scrape moment ("Today",
// "Tomorrow"), so GameTime keeps the raw schedule text while the date and
// clock fields are resolved when the block is parsed; the same raw text can
// map to different dates on different days.
type EventInfo struct {
	HomeTeam      string `json:"home_team"`
	AwayTeam      string `json:"away_team"`
	GameTime      string `json:"game_time"`
	GameDate      string `json:"game_date"`
	GameTimeLocal string `json:"game_time_local"`
	GameTimeUTC   string `json:"game_time_utc"`
}
