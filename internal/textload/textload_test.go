package textload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al-pacino/lspl/internal/config"
)

const sampleConfig = `{
  "word_signs": [
    {"names": ["pos"], "type": "main", "values": ["N", "V"]},
    {"names": ["gender"], "type": "enum", "values": ["masc", "fem"], "consistent": true},
    {"names": ["lemma"], "type": "string"}
  ]
}`

func loadSigns(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load([]byte(sampleConfig))
	require.NoError(t, err)
	return cfg
}

func TestLoadDecodesWordsAndAnnotations(t *testing.T) {
	signs := loadSigns(t)
	doc := `{
  "text": [
    {"word": "cat", "annotations": [{"pos": "N", "gender": "fem", "lemma": "cat"}]},
    {"word": "sat", "annotations": [{"pos": "V", "lemma": "sit"}]}
  ]
}`
	got, err := Load("test.json", []byte(doc), signs)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "cat", got.Words[0].Surface)

	pos, _ := signs.Attribute("pos")
	noun, _ := signs.Value(pos, "N")
	assert.Equal(t, noun, got.Words[0].Annotations[0].Get(pos))
}

func TestLoadRejectsMissingMainAttribute(t *testing.T) {
	signs := loadSigns(t)
	doc := `{"text": [{"word": "cat", "annotations": [{"gender": "fem"}]}]}`
	_, err := Load("test.json", []byte(doc), signs)
	assert.Error(t, err)
}

func TestLoadIgnoresUnknownAttributeName(t *testing.T) {
	signs := loadSigns(t)
	doc := `{"text": [{"word": "cat", "annotations": [{"pos": "N", "mood": "indicative"}]}]}`
	_, err := Load("test.json", []byte(doc), signs)
	assert.NoError(t, err, "an unrecognized annotation key should be dropped, not rejected")
}

func TestLoadRejectsRedefinitionOfAttribute(t *testing.T) {
	cfg, err := config.Load([]byte(`{
  "word_signs": [
    {"names": ["pos", "category"], "type": "main", "values": ["N", "V"]}
  ]
}`))
	require.NoError(t, err)

	doc := `{"text": [{"word": "cat", "annotations": [{"pos": "N", "category": "V"}]}]}`
	_, err = Load("test.json", []byte(doc), cfg)
	assert.Error(t, err, "two alias names for the same attribute disagreeing should fail")
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	signs := loadSigns(t)

	_, err := Load("test.json", []byte(`{"text": []}`), signs)
	assert.Error(t, err, "empty text array should fail minItems")

	_, err = Load("test.json", []byte(`{}`), signs)
	assert.Error(t, err, "missing text property should fail required")
}
