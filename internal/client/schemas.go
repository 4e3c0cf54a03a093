package client

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Response bodies are checked against embedded JSON Schemas before being
// trusted; a body that fails validation is treated the same as a transport
// failure.

//go:embed schemas/analyze_response.schema.json
var analyzeResponseSchema string

//go:embed schemas/chat_response.schema.json
var chatResponseSchema string

var (
	analyzeSchema = mustCompileSchema(analyzeResponseSchema)
	chatSchema    = mustCompileSchema(chatResponseSchema)
)

func mustCompileSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return schema
}

// validateAgainst checks raw JSON against a compiled schema.
func validateAgainst(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return fmt.Errorf("schema violation at %s: %s", first.Field(), first.Description())
	}
	return nil
}

func decodeAnalyzeResponse(body []byte) (*analyzePayload, error) {
	if err := validateAgainst(analyzeSchema, body); err != nil {
		return nil, err
	}
	var payload analyzePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}
	return &payload, nil
}

func decodeChatResponse(body []byte) (string, error) {
	if err := validateAgainst(chatSchema, body); err != nil {
		return "", err
	}
	var payload struct {
		Suggestion string `json:"suggestion"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	return payload.Suggestion, nil
}

func encodeJSON(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return data, nil
}
