package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const planetSchemaURL = "planet.schema.json"

const planetSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "Planet",
  "type": "object",
  "required": ["width", "height", "rover"],
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "width": {"type": "integer", "minimum": 1, "maximum": 1000},
    "height": {"type": "integer", "minimum": 1, "maximum": 1000},
    "obstacles": {
      "type": ["array", "null"],
      "items": {"$ref": "#/definitions/position"}
    },
    "rover": {
      "type": "object",
      "required": ["x", "y", "heading"],
      "properties": {
        "x": {"type": "integer", "minimum": 0},
        "y": {"type": "integer", "minimum": 0},
        "heading": {"enum": ["N", "E", "S", "W"]}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false,
  "definitions": {
    "position": {
      "type": "object",
      "required": ["x", "y"],
      "properties": {
        "x": {"type": "integer", "minimum": 0},
        "y": {"type": "integer", "minimum": 0}
      },
      "additionalProperties": false
    }
  }
}`

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(planetSchemaURL, bytes.NewReader([]byte(planetSchema))); err != nil {
		panic(fmt.Sprintf("planet schema: %v", err))
	}
	return compiler.MustCompile(planetSchemaURL)
}

// decodeJSON validates a JSON planet document against the schema and
// returns it in canonical JSON form
func decodeJSON(data []byte) ([]byte, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return data, nil
}

// decodeYAML converts a YAML planet document to JSON and validates it
// against the same schema
func decodeYAML(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return decodeJSON(raw)
}
