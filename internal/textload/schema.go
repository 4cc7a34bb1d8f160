package textload

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSpec mirrors the on-disk shape of a text document: an ordered
// list of words, each carrying one or more candidate annotations. The
// annotation map's keys are sign names and are validated against the
// loaded configuration rather than the JSON schema, since the schema has
// no way to know the configured sign vocabulary.
type documentSpec struct {
	Text []wordSpec `json:"text" jsonschema:"required,minItems=1"`
}

type wordSpec struct {
	Word        string              `json:"word" jsonschema:"required"`
	Annotations []map[string]string `json:"annotations" jsonschema:"required,minItems=1"`
}

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
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&documentSpec{})
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, oops.In("textload").Hint("failed to marshal generated text schema").Wrap(err)
	}

	var schemaData any
	if err := json.Unmarshal(raw, &schemaData); err != nil {
		return nil, oops.In("textload").Hint("failed to reparse generated text schema").Wrap(err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("text.json", schemaData); err != nil {
		return nil, oops.In("textload").Hint("failed to add text schema resource").Wrap(err)
	}
	sch, err := c.Compile("text.json")
	if err != nil {
		return nil, oops.In("textload").Hint("failed to compile text schema").Wrap(err)
	}
	return sch, nil
}

func validate(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return oops.In("textload").Hint("text document failed schema validation").Wrap(err)
	}
	return nil
}
