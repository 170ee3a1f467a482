package draftkings

import (
	"fmt"
	"strings"
	"time"

	"github.com/Vodeneev/dkprops/internal/pkg/models"
)

const gameClockLayout = "2006-01-02 3:04PM"

// resolveGameTime turns the raw schedule text of an event header, such as
// "Today 7:05PM" or "Tomorrow 1:10PM", into the game date plus local and UTC
// clock strings. Only the word "Tomorrow" moves the date forward; any other
// leading word means the game is on the scrape date. The clock is read in
// now's location, and the game date always reflects the local calendar day
// even when the UTC clock rolls past midnight.
func resolveGameTime(raw string, now time.Time) (gameDate, clockLocal, clockUTC string, err error) {
	parts := strings.Split(strings.TrimSpace(raw), " ")
	if len(parts) != 2 {
		return "", "", "", fmt.Errorf("unexpected game time text %q", raw)
	}
	day, clock := parts[0], parts[1]

	gameDate = now.Format(models.DateLayout)
	if day == "Tomorrow" {
		gameDate = now.AddDate(0, 0, 1).Format(models.DateLayout)
	}

	t, err := time.ParseInLocation(gameClockLayout, gameDate+" "+strings.ToUpper(clock), now.Location())
	if err != nil {
		return "", "", "", fmt.Errorf("parse game clock %q: %w", clock, err)
	}
	return gameDate, t.Format(models.ClockLayout), t.UTC().Format(models.ClockLayout), nil
}
