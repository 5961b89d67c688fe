// Command schema emits JSON Schemas for the content catalog documents, so
// editors can validate the data files without starting the server.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"rookhaven/server/internal/content"
)

func main() {
	out := flag.String("out", "schema", "directory to write the schema files into")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}

	docs := map[string]any{
		"items.schema.json":       []content.ItemDoc{},
		"gear.schema.json":        []content.GearDoc{},
		"resources.schema.json":   []content.ResourceDoc{},
		"loot_tables.schema.json": []content.LootTableDoc{},
		"minions.schema.json":     []content.MinionDoc{},
		"world.schema.json":       content.WorldDoc{},
	}

	reflector := &jsonschema.Reflector{ExpandedStruct: false}
	for name, doc := range docs {
		schema := reflector.Reflect(doc)
		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			log.Fatalf("marshal %s: %v", name, err)
		}
		path := filepath.Join(*out, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote %s", path)
	}
}
