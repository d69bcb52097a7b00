/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package submitresult

import (
	"reflect"
	"strings"
)

// tagKey configures the tool from a struct tag on any field of the
// response type, e.g.
//
//	_ struct{} `submitresult:"description=Submit the stage output,payload=output"`
const tagKey = "submitresult"

// OptionsForResponse returns Options filled from the submitresult tag on T.
func OptionsForResponse[T any]() Options[T] {
	var o Options[T]
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return o
	}
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get(tagKey)
		if tag == "" {
			continue
		}
		for part := range strings.SplitSeq(tag, ",") {
			key, value, _ := strings.Cut(strings.TrimSpace(part), "=")
			value = strings.TrimSpace(value)
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "name", "tool":
				o.ToolName = value
			case "description":
				o.Description = value
			case "success":
				o.SuccessMessage = value
			case "payload":
				o.PayloadFieldName = value
			case "payloaddescription":
				o.PayloadDescription = value
			}
		}
		break
	}
	return o
}
