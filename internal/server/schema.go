package server

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const requestSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "feedwater_temp": {"type": "number"},
    "steam_pressure": {"type": "number"},
    "fuel_flow": {"type": "number"},
    "efficiency": {"type": "number"}
  }
}`

var requestSchema = mustSchema(requestSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return schema
}

// validateRequestSchema checks a decoded JSON document against the request
// schema and joins all violations into one error.
func validateRequestSchema(payload interface{}) error {
	result, err := requestSchema.Validate(gojsonschema.NewGoLoader(payload))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
}
