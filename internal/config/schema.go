// Package config loads the word-sign configuration document: the set of
// morphological attributes a text's annotations may carry, their value
// vocabularies, and the ordering that assigns each a attrs.Attribute id.
package config

import (
	"encoding/json"
	"sync"

	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
)

// wordSignsSchemaText is the validation scheme for a word-sign document,
// hand-ported from the original's embedded rapidjson scheme: a document
// has one required "word_signs" array, each entry one of a main, enum or
// string sign.
const wordSignsSchemaText = `{
  "type": "object",
  "properties": {
    "word_signs": {
      "type": "array",
      "minItems": 1,
      "items": { "$ref": "#/definitions/word_sign" }
    }
  },
  "required": ["word_signs"],
  "additionalProperties": false,
  "definitions": {
    "word_sign": {
      "type": "object",
      "oneOf": [
        { "$ref": "#/definitions/main_type" },
        { "$ref": "#/definitions/enum_type" },
        { "$ref": "#/definitions/string_type" }
      ]
    },
    "main_type": {
      "type": "object",
      "properties": {
        "names": { "$ref": "#/definitions/string_array" },
        "values": { "$ref": "#/definitions/string_array" },
        "type": { "type": "string", "pattern": "^main$" }
      },
      "required": ["names", "type", "values"],
      "additionalProperties": false
    },
    "enum_type": {
      "type": "object",
      "properties": {
        "names": { "$ref": "#/definitions/string_array" },
        "values": { "$ref": "#/definitions/string_array" },
        "type": { "type": "string", "pattern": "^enum$" },
        "consistent": { "type": "boolean" }
      },
      "required": ["names", "type", "values"],
      "additionalProperties": false
    },
    "string_type": {
      "type": "object",
      "properties": {
        "names": { "$ref": "#/definitions/string_array" },
        "type": { "type": "string", "pattern": "^string$" },
        "consistent": { "type": "boolean" }
      },
      "required": ["names", "type"],
      "additionalProperties": false
    },
    "string_array": {
      "type": "array",
      "minItems": 1,
      "uniqueItems": true,
      "items": {
        "type": "string",
        "pattern": "^[a-zA-Z]([a-zA-Z0-9_-]*[a-zA-Z_-])?$"
      }
    }
  }
}`

type schemaState struct {
	once   sync.Once
	schema *jschema.Schema
	err    error
}

var globalSchemaState = &schemaState{}

func compiledSchema() (*jschema.Schema, error) {
	globalSchemaState.once.Do(func() {
		globalSchemaState.schema, globalSchemaState.err = compileSchema()
	})
	return globalSchemaState.schema, globalSchemaState.err
}

func compileSchema() (*jschema.Schema, error) {
	var schemaData any
	if err := json.Unmarshal([]byte(wordSignsSchemaText), &schemaData); err != nil {
		return nil, oops.In("config").Hint("failed to parse embedded schema").Wrap(err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("word_signs.json", schemaData); err != nil {
		return nil, oops.In("config").Hint("failed to add schema resource").Wrap(err)
	}
	sch, err := c.Compile("word_signs.json")
	if err != nil {
		return nil, oops.In("config").Hint("failed to compile word_signs schema").Wrap(err)
	}
	return sch, nil
}

func validate(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return oops.In("config").Hint("word_signs document failed schema validation").Wrap(err)
	}
	return nil
}
