package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DocumentFormat identifies how an input document is encoded.
type DocumentFormat string

const (
	FormatJSON DocumentFormat = "json"
	FormatYAML DocumentFormat = "yaml"
	FormatTOML DocumentFormat = "toml"
)

// FormatFromPath infers a [DocumentFormat] from the file extension.
func FormatFromPath(path string) (DocumentFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDoc, path)
	}
}

// LoadDocument reads a JSON, YAML or TOML file into a string-keyed mapping.
func LoadDocument(path string) (map[string]any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return ParseDocument(data, format)
}

// ParseDocument decodes data in the given format. The top level must be a mapping.
func ParseDocument(data []byte, format DocumentFormat) (map[string]any, error) {
	doc := map[string]any{}

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDoc, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s document: %v", ErrInvalidInput, format, err)
	}

	// yaml.v3 leaves an empty document as a nil map
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}
