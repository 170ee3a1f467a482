package scraper

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Vodeneev/dkprops/internal/pkg/config"
	"github.com/Vodeneev/dkprops/internal/pkg/interfaces"
)

type Factory func(cfg *config.Config) interfaces.Source

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register adds a source factory under a case-insensitive name. Source
// packages call it from init; registering twice under one name is a
// programming error and panics.
func Register(name string, f Factory) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		panic("scraper: empty name in Register")
	}
	if f == nil {
		panic("scraper: nil factory in Register for " + n)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("scraper: duplicate registration for " + n)
	}
	registry[n] = f
}

func FactoryByName(name string) (Factory, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[n]
	return f, ok
}

func AvailableNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SourceByName builds the named source from its registered factory.
func SourceByName(name string, cfg *config.Config) (interfaces.Source, error) {
	f, ok := FactoryByName(name)
	if !ok {
		return nil, fmt.Errorf("scraper: unknown source %q (available: %v)", name, AvailableNames())
	}
	return f(cfg), nil
}
