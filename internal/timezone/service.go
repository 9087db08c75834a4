package timezone

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"

	"weather-now/internal/types"
)

// Resolver maps coordinates to an IANA timezone name without a network call
type Resolver struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	instance *Resolver
	initErr  error
	once     sync.Once
)

// NewResolver creates or returns the shared resolver.
// The finder holds its polygon data in memory, so it is loaded once per process.
func NewResolver() (*Resolver, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &Resolver{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// Resolve returns a zone name such as "Europe/Paris" for the given coordinates
func (r *Resolver) Resolve(coords types.Coords) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := r.finder.GetTimezoneName(coords.Longitude, coords.Latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates %s", coords)
	}
	return name, nil
}
