package collector

import "github.com/Vodeneev/dkprops/internal/pkg/config"

// MainCategory groups the subcategory slugs listed under one sportsbook tab.
// Slugs appear in URLs as-is, so they keep the site's spelling, including
// the literal plus signs in "hits-+-runs-+-rbis".
type MainCategory struct {
	Name          string
	Subcategories []string
}

// DefaultCatalog returns the MLB player-prop categories a run walks when the
// config does not override them.
func DefaultCatalog() []MainCategory {
	return []MainCategory{
		{
			Name: "batter-props",
			Subcategories: []string{
				"home-runs",
				"hits",
				"total-bases",
				"rbis",
				"runs-scored",
				"hits-+-runs-+-rbis",
				"stolen-bases",
				"strikeouts",
				"singles",
				"doubles",
				"walks",
			},
		},
		{
			Name: "pitcher-props",
			Subcategories: []string{
				"strikeouts-thrown",
				"outs-recorded",
				"hits-allowed",
				"earned-runs-allowed",
				"walks-allowed",
			},
		},
	}
}

// CatalogFromConfig maps the configured categories onto the catalog, falling
// back to the default catalog when none are configured.
func CatalogFromConfig(categories []config.CategoryConfig) []MainCategory {
	if len(categories) == 0 {
		return DefaultCatalog()
	}
	out := make([]MainCategory, 0, len(categories))
	for _, c := range categories {
		out = append(out, MainCategory{Name: c.Name, Subcategories: c.Subcategories})
	}
	return out
}
