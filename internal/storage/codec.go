package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/javiermolinar/satchel/internal/item"
)

//go:embed schema/inventory.schema.json
var inventorySchemaJSON string

var inventorySchema = jsonschema.MustCompileString("inventory.schema.json", inventorySchemaJSON)

// Encode serializes items as the on-wire JSON array. Output is indented the
// same way the save file is written so both channels hold identical bytes.
func Encode(items []item.Item) ([]byte, error) {
	data, err := json.MarshalIndent(item.CloneAll(items), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding inventory: %w", err)
	}
	return data, nil
}

// Decode parses an on-wire JSON array. Empty input reports ErrUnavailable;
// anything that is not a schema-valid item array reports ErrCorrupt.
func Decode(data []byte) ([]item.Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrUnavailable
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := inventorySchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var items []item.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorrupt, i, err)
		}
		if items[i].Properties == nil {
			items[i].Properties = []item.Property{}
		}
	}
	if items == nil {
		items = []item.Item{}
	}
	return items, nil
}
