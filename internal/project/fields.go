package project

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Fields holds document values the pipeline does not interpret. They are
// carried verbatim so a round trip never loses editor state.
type Fields map[string]json.RawMessage

// unmarshalWithExtra decodes data into v and stores every key v does not
// declare (via json struct tags, embedded structs included) in extra.
func unmarshalWithExtra(data []byte, v any, extra *Fields) error {
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	var raw Fields
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range knownJSONKeys(reflect.TypeOf(v).Elem()) {
		delete(raw, key)
	}
	*extra = raw
	return nil
}

// marshalWithExtra encodes v and merges extra back in. Keys come out in
// encoding/json map order (sorted), which is stable across runs.
func marshalWithExtra(v any, extra Fields) ([]byte, error) {
	structData, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	merged := make(Fields, len(extra)+8)
	if err := json.Unmarshal(structData, &merged); err != nil {
		return nil, err
	}
	for key, value := range extra {
		if _, ok := merged[key]; ok {
			return nil, fmt.Errorf("passthrough field %q collides with a typed field", key)
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}

func knownJSONKeys(t reflect.Type) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			keys = append(keys, knownJSONKeys(field.Type)...)
			continue
		}
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		keys = append(keys, name)
	}
	return keys
}
