package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed simulation.schema.json
var schemaDocument []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// SchemaError reports a simulation document that does not match the schema.
type SchemaError struct {
	// Location is the JSON pointer of the first offending value.
	Location string
	Message  string
	cause    error
}

func (e *SchemaError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("invalid simulation at %s: %s", e.Location, e.Message)
	}
	return "invalid simulation: " + e.Message
}

func (e *SchemaError) Unwrap() error {
	return e.cause
}

// Validate checks a raw JSON simulation document against the schema.
// Syntax errors wrap ErrInvalidJSON; shape errors are *SchemaError.
func Validate(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to compile simulation schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			leaf := deepestCause(verr)
			return &SchemaError{Location: leaf.InstanceLocation, Message: leaf.Message, cause: err}
		}
		return &SchemaError{Message: err.Error(), cause: err}
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("simulation.schema.json", bytes.NewReader(schemaDocument)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("simulation.schema.json")
	})
	return compiledSchema, schemaErr
}

func deepestCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}
