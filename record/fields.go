package record

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/notargets/monoprop/types"
)

/*
Fields is the generic, read-only view of a persisted record: nested objects keyed by field name.
Values are addressed by dotted path, e.g. "computed_results.thrust_N". Nothing is defaulted; a
missing path is an error wrapping types.ErrMissingField.
*/
type Fields map[string]interface{}

// FieldsOf projects any record value onto its field view through its json tags.
func FieldsOf(v interface{}) (f Fields, err error) {
	var data []byte
	if data, err = json.Marshal(v); err != nil {
		return
	}
	err = json.Unmarshal(data, &f)
	return
}

func (f Fields) lookup(path string) (val interface{}, err error) {
	var (
		node interface{} = map[string]interface{}(f)
		keys             = strings.Split(path, ".")
	)
	for _, key := range keys {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, &types.MissingFieldError{Path: path}
		}
		if node, ok = m[key]; !ok || node == nil {
			return nil, &types.MissingFieldError{Path: path}
		}
	}
	return node, nil
}

func (f Fields) Has(path string) bool {
	_, err := f.lookup(path)
	return err == nil
}

func (f Fields) Float(path string) (val float64, err error) {
	var (
		raw interface{}
		ok  bool
	)
	if raw, err = f.lookup(path); err != nil {
		return
	}
	if val, ok = raw.(float64); !ok {
		err = fmt.Errorf("field %s holds %T, not a number: %w", path, raw, types.ErrConfiguration)
	}
	return
}

func (f Fields) String(path string) (val string, err error) {
	var (
		raw interface{}
		ok  bool
	)
	if raw, err = f.lookup(path); err != nil {
		return
	}
	if val, ok = raw.(string); !ok {
		err = fmt.Errorf("field %s holds %T, not a string: %w", path, raw, types.ErrConfiguration)
	}
	return
}

// Decode unmarshals the subtree at path into v.
func (f Fields) Decode(path string, v interface{}) (err error) {
	var (
		raw  interface{}
		data []byte
	)
	if raw, err = f.lookup(path); err != nil {
		return
	}
	if data, err = json.Marshal(raw); err != nil {
		return
	}
	if err = json.Unmarshal(data, v); err != nil {
		err = fmt.Errorf("field %s: %v: %w", path, err, types.ErrConfiguration)
	}
	return
}
