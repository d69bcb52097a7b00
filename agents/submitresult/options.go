/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package submitresult

import (
	"encoding/json"
	"errors"
	"reflect"

	"chainguard.dev/thinktank/agents/schema"
	"github.com/invopop/jsonschema"
)

// Options configures the submit_result tool.
type Options[Response any] struct {
	ToolName           string
	Description        string
	SuccessMessage     string
	PayloadFieldName   string
	PayloadDescription string
	Generator          *schema.Generator
}

func (o *Options[Response]) setDefaults() {
	if o.ToolName == "" {
		o.ToolName = "submit_result"
	}
	if o.Description == "" {
		o.Description = "Submit your final answer for this task."
	}
	if o.SuccessMessage == "" {
		o.SuccessMessage = "Result submitted successfully."
	}
	if o.PayloadFieldName == "" {
		o.PayloadFieldName = "result"
	}
	if o.PayloadDescription == "" {
		o.PayloadDescription = "Structured result payload."
	}
	if o.Generator == nil {
		o.Generator = schema.NewGenerator()
	}
}

func (o *Options[Response]) validate() error {
	if o.PayloadFieldName == "reasoning" {
		return errors.New("payload field name cannot be \"reasoning\"")
	}
	return nil
}

// newResponse allocates a value that Response can be decoded into,
// following one level of pointer.
func newResponse[Response any]() any {
	typ := reflect.TypeFor[Response]()
	if typ.Kind() == reflect.Pointer {
		return reflect.New(typ.Elem()).Interface()
	}
	return reflect.New(typ).Interface()
}

func fromDecoded[Response any](dest any) Response {
	if reflect.TypeFor[Response]().Kind() == reflect.Pointer {
		return dest.(Response)
	}
	return reflect.ValueOf(dest).Elem().Interface().(Response)
}

func (o *Options[Response]) payloadSchema() (map[string]any, error) {
	s := o.Generator.Reflect(newResponse[Response]())
	s.Description = o.PayloadDescription
	return schemaToMap(s)
}

func schemaToMap(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
