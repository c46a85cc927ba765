package mapio

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/elektrokombinacija/coop-astar/internal/core"
)

const instanceSchemaURL = "https://elektrokombinacija.github.io/coop-astar/instance.schema.json"

// instanceSchema describes the input document before any semantic checks.
const instanceSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["map", "agents"],
  "properties": {
    "map": {
      "type": "object",
      "required": ["dimensions"],
      "properties": {
        "dimensions": {"$ref": "#/$defs/size"},
        "obstacles": {
          "type": ["array", "null"],
          "items": {"$ref": "#/$defs/cell"}
        }
      }
    },
    "agents": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "start", "goal"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "start": {"$ref": "#/$defs/cell"},
          "goal": {"$ref": "#/$defs/cell"}
        }
      }
    }
  },
  "$defs": {
    "size": {
      "type": "array",
      "items": {"type": "integer", "minimum": 1},
      "minItems": 2,
      "maxItems": 2
    },
    "cell": {
      "type": "array",
      "items": {"type": "integer", "minimum": 0},
      "minItems": 2,
      "maxItems": 2
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(instanceSchemaURL, instanceSchema)
	})
	return schema, schemaErr
}

// validateShape checks a decoded YAML tree against the instance schema.
// The tree is round-tripped through JSON so the validator sees JSON types.
func validateShape(tree any) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling instance schema: %w", err)
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}
	return nil
}
