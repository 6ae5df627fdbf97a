package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads shop configuration from a JSON file. Nested objects flatten
// into slash paths, so {"general":{"cutoff_time":"17:00"}} becomes
// "general/cutoff_time". Leaf values keep their JSON types; the typed Store
// accessors deal with shape from there.
func LoadFile(path string) (Values, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	values := make(Values)
	flatten("", tree, values)
	return values, nil
}

func flatten(prefix string, tree map[string]any, into Values) {
	for key, value := range tree {
		path := key
		if prefix != "" {
			path = prefix + "/" + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(path, nested, into)
			continue
		}
		into[path] = value
	}
}
