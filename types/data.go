package types

import (
	"encoding/json"

	"github.com/juju/errors"
	"github.com/spf13/cast"
)

// Data is a loosely typed key-value bag used for node config and map-shaped
// node payloads.
type Data map[string]any

func (d *Data) Get(key string) (any, bool) {
	v, exists := (*d)[key]
	return v, exists
}

func (d *Data) GetString(key string) (string, bool) {
	v, exists := d.Get(key)
	return cast.ToString(v), exists
}

func (d *Data) GetInt(key string) (int, bool) {
	v, exists := d.Get(key)
	return cast.ToInt(v), exists
}

func (d *Data) GetBool(key string) (bool, bool) {
	v, exists := d.Get(key)
	return cast.ToBool(v), exists
}

func (d *Data) GetFloat64(key string) (float64, bool) {
	v, exists := d.Get(key)
	return cast.ToFloat64(v), exists
}

// GetData returns a nested map value as Data.
func (d *Data) GetData(key string) (Data, bool) {
	v, exists := d.Get(key)
	if !exists {
		return nil, false
	}
	m, ok := AsData(v)
	return m, ok
}

func (d *Data) GetStruct(key string, s any) error {
	v, exists := d.Get(key)
	if !exists {
		return errors.NotFound
	}
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Trace(err)
	}
	return json.Unmarshal(b, s)
}

func (d *Data) Set(key string, value any) {
	(*d)[key] = value
}

// Clone returns a shallow copy. Transforms that rewrite a single field use
// it so the caller's value stays untouched.
func (d Data) Clone() Data {
	c := make(Data, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// AsData views a value as Data when it is map-shaped. Executors use it to
// branch on "input is a map" without caring which concrete map type the
// caller handed in.
func AsData(v any) (Data, bool) {
	switch m := v.(type) {
	case Data:
		return m, true
	case map[string]any:
		return Data(m), true
	default:
		return nil, false
	}
}
