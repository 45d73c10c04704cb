// Package schemas validates inbound JSON payloads against embedded JSON
// Schemas before they are decoded into domain types, so ad hoc shapes never
// cross the service boundary.
package schemas

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed *.schema.json
var schemaFS embed.FS

const (
	PropertyCreate = "property.schema.json"
	PropertyUpdate = "update.schema.json"
)

var compiled = map[string]*jsonschema.Schema{}

func init() {
	compiler := jsonschema.NewCompiler()
	for _, name := range []string{PropertyCreate, PropertyUpdate} {
		raw, err := schemaFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("schemas: read %s: %v", name, err))
		}
		if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
			panic(fmt.Sprintf("schemas: add %s: %v", name, err))
		}
		schema, err := compiler.Compile(name)
		if err != nil {
			panic(fmt.Sprintf("schemas: compile %s: %v", name, err))
		}
		compiled[name] = schema
	}
}

// Validate checks a raw JSON document against the named schema.
func Validate(name string, doc []byte) error {
	schema, ok := compiled[name]
	if !ok {
		return fmt.Errorf("schemas: unknown schema %q", name)
	}
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return err
	}
	return nil
}
