package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It checks required properties and numeric minimums, the subset of the schema used by Config.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	v := schemaValidator{defs: defs}
	if errs := v.check("", schema, configMap); len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// schemaValidator walks config values along the schema nodes
type schemaValidator struct {
	defs map[string]any
}

func (v schemaValidator) resolve(node map[string]any) map[string]any {
	ref, ok := node["$ref"].(string)
	if !ok {
		return node
	}
	if def, ok := v.defs[strings.TrimPrefix(ref, "#/$defs/")].(map[string]any); ok {
		return def
	}
	return node
}

func (v schemaValidator) check(path string, node map[string]any, value any) []string {
	node = v.resolve(node)
	var errs []string

	switch val := value.(type) {
	case map[string]any:
		props, _ := node["properties"].(map[string]any)
		if required, ok := node["required"].([]any); ok {
			for _, r := range required {
				name, _ := r.(string)
				if _, found := val[name]; !found {
					errs = append(errs, fmt.Sprintf("%s is required", join(path, name)))
				}
			}
		}
		for name, sub := range props {
			subNode, ok := sub.(map[string]any)
			if !ok {
				continue
			}
			if subVal, found := val[name]; found {
				errs = append(errs, v.check(join(path, name), subNode, subVal)...)
			}
		}
	case []any:
		items, ok := node["items"].(map[string]any)
		if !ok {
			return nil
		}
		for i, item := range val {
			errs = append(errs, v.check(fmt.Sprintf("%s[%d]", path, i), items, item)...)
		}
	case float64:
		if minimum, ok := node["minimum"].(float64); ok && val < minimum {
			errs = append(errs, fmt.Sprintf("%s must be at least %v", path, minimum))
		}
	}
	return errs
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
