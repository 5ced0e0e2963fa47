// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package registry

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// SchemaID is the $id of the listener manifest schema.
const SchemaID = "https://holomush.dev/schemas/evcompress-listeners.schema.json"

var (
	compiledSchema *jschema.Schema
	compileErr     error
	compileOnce    sync.Once
)

// GenerateSchema generates a JSON Schema from the Manifest struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&Manifest{})

	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "evcompress listener manifest"
	schema.Description = "Listener bindings used to resolve event fires at build time"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// ValidateSchema validates YAML data against the listener manifest schema.
func ValidateSchema(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("manifest data is empty")
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	if err := sch.Validate(toJSONTypes(doc)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func schema() (*jschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = compileSchema()
	})
	return compiledSchema, compileErr
}

func compileSchema() (*jschema.Schema, error) {
	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("listeners.schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return c.Compile("listeners.schema.json")
}

// toJSONTypes converts YAML-decoded values into the types a JSON decoder
// would have produced.
func toJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = toJSONTypes(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = toJSONTypes(v)
		}
		return out
	case int:
		return json.Number(fmt.Sprint(val))
	case float64:
		return json.Number(fmt.Sprint(val))
	default:
		return val
	}
}

// FormatSchemaError strips the wrapping prefix from a schema validation error.
func FormatSchemaError(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimPrefix(err.Error(), "schema validation failed: ")
}
