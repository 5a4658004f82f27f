package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const requirementsSchema = `{
  "type": "object",
  "properties": {
    "fish": {
      "type": "object",
      "additionalProperties": {"type": "integer", "minimum": 1}
    },
    "total_fish": {"type": "integer", "minimum": 0},
    "min_rarity": {"type": "integer", "minimum": 0, "maximum": 3}
  },
  "additionalProperties": false
}`

const rewardsSchema = `{
  "type": "object",
  "properties": {
    "gold": {"type": "integer", "minimum": 0},
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["item_id", "quantity"],
        "properties": {
          "item_id": {"type": "string", "minLength": 1},
          "quantity": {"type": "integer", "minimum": 1}
        }
      }
    }
  },
  "additionalProperties": false
}`

// Document schemas for quest fields.
var (
	requirements = jsonschema.MustCompileString("requirements.schema.json", requirementsSchema)
	rewards      = jsonschema.MustCompileString("rewards.schema.json", rewardsSchema)
)

func validateDocument(schema *jsonschema.Schema, doc string) error {
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return err
	}
	return nil
}
