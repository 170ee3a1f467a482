// Package all imports all available sources for side-effect registration.
//
// Import this package from your main to ensure all sources are registered:
//   import _ "github.com/Vodeneev/dkprops/internal/scraper/all"
package all

import (
	_ "github.com/Vodeneev/dkprops/internal/scraper/draftkings"
)
