// Package theme provides the visual theme descriptors used by the renderer.
// Themes register themselves in init() functions, allowing the host to list
// and select them by ID. A theme only chooses colors and decorative motifs;
// it carries no simulation semantics.
package theme

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/head-flappy/internal/core"
)

// DefaultID is the theme used when none is configured.
const DefaultID = "classic"

// Motif selects the decorative particles drawn over the background.
type Motif int

const (
	MotifNone Motif = iota
	MotifStars
	MotifSnow
	MotifBubbles
	MotifPetals
)

// String returns the motif name.
func (m Motif) String() string {
	switch m {
	case MotifStars:
		return "stars"
	case MotifSnow:
		return "snow"
	case MotifBubbles:
		return "bubbles"
	case MotifPetals:
		return "petals"
	default:
		return "none"
	}
}

// Descriptor is a fixed palette plus background-drawing strategy.
type Descriptor struct {
	ID    string
	Title string

	// Sky holds gradient stops from top to bottom. Rows between stops take
	// the nearest stop, giving banded gradients on the cell grid.
	Sky []core.Color

	Motif       Motif
	MotifColors []core.Color

	Obstacle    core.Color // solid segment color
	ObstacleCap core.Color // cap accent color
	Text        core.Color // HUD and banner text
}

// SkyAt returns the background color for row y of a surface with the given height.
func (d Descriptor) SkyAt(y, height int) core.Color {
	if len(d.Sky) == 0 || height <= 0 {
		return core.ColorDefault
	}
	idx := y * len(d.Sky) / height
	return d.Sky[core.Clamp(idx, 0, len(d.Sky)-1)]
}

var (
	themes = make(map[string]Descriptor)
	mu     sync.RWMutex
)

// Register adds a theme to the registry.
// Typically called from an init() function.
// Panics if a theme with the same ID is already registered.
func Register(d Descriptor) {
	mu.Lock()
	defer mu.Unlock()

	if d.ID == "" {
		panic("theme: empty theme ID")
	}
	if _, exists := themes[d.ID]; exists {
		panic(fmt.Sprintf("theme: %q already registered", d.ID))
	}
	themes[d.ID] = d
}

// List returns all registered themes, sorted by ID.
func List() []Descriptor {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Descriptor, 0, len(themes))
	for _, d := range themes {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the theme with the given ID.
// Returns an error if the theme is not registered.
func Lookup(id string) (Descriptor, error) {
	mu.RLock()
	defer mu.RUnlock()

	d, ok := themes[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("theme: unknown theme %q", id)
	}
	return d, nil
}

// Exists checks if a theme with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := themes[id]
	return ok
}

// Next returns the ID of the theme after id in List order, wrapping around.
// An unknown id yields the first theme.
func Next(id string) string {
	list := List()
	if len(list) == 0 {
		return id
	}
	for i, d := range list {
		if d.ID == id {
			return list[(i+1)%len(list)].ID
		}
	}
	return list[0].ID
}
