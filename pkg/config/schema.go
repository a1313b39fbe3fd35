package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the configuration schema version embedded in the binary.
const SchemaVersion = "1.0.0"

//go:embed schema/vidlist-config-v1.0.0.json
var configSchema string

// ValidateConfig validates raw configuration (YAML or JSON) against the embedded schema
func ValidateConfig(configData []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(configData, &doc); err != nil {
		return fmt.Errorf("%w: config is not valid YAML/JSON: %v", ErrInvalid, err)
	}
	if doc == nil {
		// Empty file: defaults apply
		return nil
	}
	return validateDocument(doc)
}

// ValidateSettings validates settings already decoded by viper, whatever the
// file format, against the embedded schema.
func ValidateSettings(settings map[string]interface{}) error {
	if settings == nil {
		settings = map[string]interface{}{}
	}
	return validateDocument(settings)
}

func validateDocument(doc interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: config cannot be represented as JSON: %v", ErrInvalid, err)
	}
	return validateJSON(jsonData)
}

func validateJSON(jsonData []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrInvalid, err)
	}

	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("%w: configuration validation failed:\n%s", ErrInvalid, strings.Join(errs, "\n"))
	}

	return nil
}
