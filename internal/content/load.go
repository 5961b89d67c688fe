package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Catalog file names inside the content directory.
const (
	itemsFile     = "items.json"
	gearFile      = "gear.json"
	resourcesFile = "resources.json"
	lootFile      = "loot_tables.json"
	minionsFile   = "minions.json"
	worldFile     = "world.json"
)

// DefaultDir resolves the content directory relative to the working
// directory, preferring ./content and falling back to ../content so the
// server can run from the module root or from cmd/server.
func DefaultDir() string {
	candidates := []string{"content", filepath.Join("..", "content")}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return candidates[0]
}

// Load reads every catalog file from dir, validates the whole bundle, and
// returns the catalog or the aggregated list of violations. Any error here is
// fatal to startup.
func Load(dir string) (*Catalog, error) {
	var (
		items     []ItemDoc
		gear      []GearDoc
		resources []ResourceDoc
		tables    []LootTableDoc
		minions   []MinionDoc
		world     WorldDoc
	)
	var failures []error
	read := func(name string, out any) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			failures = append(failures, fmt.Errorf("content: read %s: %w", name, err))
			return
		}
		if err := json.Unmarshal(data, out); err != nil {
			failures = append(failures, fmt.Errorf("content: parse %s: %w", name, err))
		}
	}
	read(itemsFile, &items)
	read(gearFile, &gear)
	read(resourcesFile, &resources)
	read(lootFile, &tables)
	read(minionsFile, &minions)
	read(worldFile, &world)
	if len(failures) > 0 {
		return nil, errors.Join(failures...)
	}
	return build(items, gear, resources, tables, minions, world)
}

// Build assembles a catalog from in-memory documents. Tests use this to avoid
// touching the filesystem.
func Build(items []ItemDoc, gear []GearDoc, resources []ResourceDoc, tables []LootTableDoc, minions []MinionDoc, world WorldDoc) (*Catalog, error) {
	return build(items, gear, resources, tables, minions, world)
}
