package draftkings

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Odds cells read like "O 0.5+800" or "U 1.5−140". Negative American odds
// arrive with either an ASCII minus or U+2212: NFKC folds the site's other
// hyphen glyphs to ASCII but keeps U+2212, so the sign class accepts both
// and the match is mapped to ASCII before conversion.
var oddsCellRe = regexp.MustCompile(`^([OU])\s(\d+\.\d+)([+\-−]\d+)$`)

// parseOddsCell extracts the over/under line and the American odds from one
// prop-table cell. The text is NFKC-normalized first. Cells that do not match
// the expected shape (suspended or empty lines) yield nil, nil.
func parseOddsCell(text string) (total *float64, odds *int) {
	m := oddsCellRe.FindStringSubmatch(norm.NFKC.String(text))
	if m == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil, nil
	}
	o, err := strconv.Atoi(strings.ReplaceAll(m[3], "−", "-"))
	if err != nil {
		return nil, nil
	}
	return &v, &o
}

// teamGlueRe finds the point where two glued names meet, as in
// "WAS NationalsatSF Giants": the last lowercase letter of the away side
// followed by the first uppercase letter of the home side.
var teamGlueRe = regexp.MustCompile(`[a-z][A-Z]`)

// splitTeamNames splits glued matchup text into away and home names. The
// two-letter joiner ("at") travels with the away side and is cut from its
// tail. ok is false when the text has no lowercase/uppercase boundary.
// Away names that themselves end in a lowercase-uppercase pair are split at
// the wrong point; the site's abbreviated city prefixes avoid that in
// practice.
func splitTeamNames(text string) (away, home string, ok bool) {
	loc := teamGlueRe.FindStringIndex(text)
	if loc == nil {
		return "", "", false
	}
	cut := loc[0] + 1
	away = strings.TrimSpace(text[:cut])
	home = strings.TrimSpace(text[cut:])
	if len(away) < 2 {
		return "", home, true
	}
	return away[:len(away)-2], home, true
}

// cleanPlayerName cuts the "New" badge the site glues onto freshly listed
// players ("Aaron JudgeNew") off the cell text.
func cleanPlayerName(text string) string {
	return strings.SplitN(text, "New", 2)[0]
}
