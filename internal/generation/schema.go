package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// location the caller's schema is compiled under; nothing is read from it
const schemaResource = "response-schema.json"

// every subschema position that may hold an enum must hold a non-empty one
const enumGuardSchema = `{
	"$defs": {
		"schema": {
			"properties": {
				"enum": {"minItems": 1},
				"properties": {"additionalProperties": {"$ref": "#/$defs/schema"}},
				"patternProperties": {"additionalProperties": {"$ref": "#/$defs/schema"}},
				"dependentSchemas": {"additionalProperties": {"$ref": "#/$defs/schema"}},
				"$defs": {"additionalProperties": {"$ref": "#/$defs/schema"}},
				"definitions": {"additionalProperties": {"$ref": "#/$defs/schema"}},
				"items": {"$ref": "#/$defs/schemaOrList"},
				"prefixItems": {"items": {"$ref": "#/$defs/schema"}},
				"additionalItems": {"$ref": "#/$defs/schema"},
				"additionalProperties": {"$ref": "#/$defs/schema"},
				"unevaluatedItems": {"$ref": "#/$defs/schema"},
				"unevaluatedProperties": {"$ref": "#/$defs/schema"},
				"contains": {"$ref": "#/$defs/schema"},
				"propertyNames": {"$ref": "#/$defs/schema"},
				"not": {"$ref": "#/$defs/schema"},
				"if": {"$ref": "#/$defs/schema"},
				"then": {"$ref": "#/$defs/schema"},
				"else": {"$ref": "#/$defs/schema"},
				"allOf": {"items": {"$ref": "#/$defs/schema"}},
				"anyOf": {"items": {"$ref": "#/$defs/schema"}},
				"oneOf": {"items": {"$ref": "#/$defs/schema"}}
			}
		},
		"schemaOrList": {
			"anyOf": [
				{"$ref": "#/$defs/schema"},
				{"type": "array", "items": {"$ref": "#/$defs/schema"}}
			]
		}
	},
	"$ref": "#/$defs/schema"
}`

var enumGuard = sync.OnceValue(func() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(enumGuardSchema))
	if err != nil {
		panic(fmt.Sprintf("generation: enum guard schema: %v", err))
	}

	c := newSchemaCompiler()
	if err := c.AddResource("enum-guard.json", doc); err != nil {
		panic(fmt.Sprintf("generation: enum guard schema: %v", err))
	}

	return c.MustCompile("enum-guard.json")
})

// compiler that never loads a $ref from disk or network
func newSchemaCompiler() *jsonschema.Compiler {
	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft2020)
	c.UseLoader(jsonschema.SchemeURLLoader{})

	return c
}

// checks that raw is a syntactically valid JSON Schema object by compiling
// it against its metaschema (draft 2020-12 unless "$schema" names another);
// this is a schema-of-schema check, not a semantic one
func ValidateSchema(raw json.RawMessage) error {
	_, err := compileSchema(raw)
	return err
}

func compileSchema(raw json.RawMessage) (*jsonschema.Schema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("schema must be a JSON object")
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("schema is not valid JSON: %w", err)
	}

	c := newSchemaCompiler()
	if err := c.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("malformed schema: %w", err)
	}

	compiled, err := c.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("malformed schema: %w", err)
	}

	if err := enumGuard().Validate(doc); err != nil {
		return nil, fmt.Errorf("malformed schema: enum must not be empty: %w", err)
	}

	return compiled, nil
}

// checks a decoded value against the schema; used only when response
// validation is switched on
func Conform(raw json.RawMessage, value any) error {
	compiled, err := compileSchema(raw)
	if err != nil {
		return err
	}

	// re-decode so numbers keep their exact JSON form
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("value is not JSON encodable: %w", err)
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("value is not JSON encodable: %w", err)
	}

	return compiled.Validate(instance)
}
