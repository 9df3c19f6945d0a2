package main

import (
	"fmt"

	"github.com/desertthunder/stacksync/internal/operations"
	"github.com/desertthunder/stacksync/internal/shared"
)

// loadDocument reads a JSON, YAML or TOML file into [operations.Inputs].
func loadDocument(path string) (operations.Inputs, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: input file path", shared.ErrMissingArgument)
	}
	doc, err := shared.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return operations.Inputs(doc), nil
}

// loadSection returns the value under key when the document carries it, and the whole document otherwise.
//
// Lets a design file be either the bare design or {"design": ...}.
func loadSection(path, key string) (any, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	if v, ok := doc[key]; ok {
		return v, nil
	}
	return map[string]any(doc), nil
}

// inputKey names the input a bare document is wrapped under for operation, or "" when
// documents already are the full inputs mapping.
func inputKey(operation string) string {
	switch operation {
	case operations.DesignToFrontend, operations.DesignToBackend:
		return "design"
	}
	return ""
}

// loadJobInputs loads path as inputs for operation.
func loadJobInputs(path, operation string) (operations.Inputs, error) {
	key := inputKey(operation)
	if key == "" {
		return loadDocument(path)
	}
	section, err := loadSection(path, key)
	if err != nil {
		return nil, err
	}
	return operations.Inputs{key: section}, nil
}
