package listview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// JSONSchemaValidator checks categorical selections against each dimension's
// declared schema. Dimensions without a schema accept any value set.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures every selected dimension exists on the page and its value
// set satisfies the dimension schema.
func (v *JSONSchemaValidator) Validate(def PageDefinition, state FilterState) error {
	for field, values := range state.Selections {
		dim, ok := def.Dimension(field)
		if !ok {
			return fmt.Errorf("listview: page %s has no filter dimension %q", def.Code, field)
		}
		if len(dim.Schema) == 0 {
			continue
		}
		schema, err := v.schemaFor(def.Code, dim)
		if err != nil {
			return err
		}
		payload := make([]any, len(values))
		for i, value := range values {
			payload[i] = value
		}
		if err := schema.Validate(payload); err != nil {
			return fmt.Errorf("listview: selections for %s.%s failed validation: %w", def.Code, field, err)
		}
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(pageCode string, dim Dimension) (*jsonschema.Schema, error) {
	key := pageCode + ":" + dim.Field
	v.mu.RLock()
	schema, ok := v.compiled[key]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(dim.Schema)
	if err != nil {
		return nil, fmt.Errorf("listview: marshal schema %s: %w", key, err)
	}
	compiler := jsonschema.NewCompiler()
	name := key + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("listview: load schema %s: %w", key, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("listview: compile schema %s: %w", key, err)
	}
	v.mu.Lock()
	v.compiled[key] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopFilterValidator struct{}

func (noopFilterValidator) Validate(PageDefinition, FilterState) error { return nil }
