package question

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const recordsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["question", "options", "correct"],
    "properties": {
      "question": {"type": "string"},
      "options": {"type": "array", "items": {"type": "string"}},
      "correct": {"type": "integer"},
      "explanation": {"type": ["string", "null"]}
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordsSchema))
})

// CheckShape validates a decoded JSON or YAML value against the record array schema.
func CheckShape(value any) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile record schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return fmt.Errorf("check shape: %w", err)
	}
	if result.Valid() {
		return nil
	}
	collector := &issueCollector{}
	for _, desc := range result.Errors() {
		collector.add(desc.Field(), desc.Description())
	}
	return collector.result()
}

// Decode shape-checks a generic value and converts it into records.
func Decode(value any) ([]Record, error) {
	if err := CheckShape(value); err != nil {
		return nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
