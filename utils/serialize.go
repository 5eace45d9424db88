// Package utils holds small helpers shared across packages.
package utils

import "encoding/json"

// Serialize encodes a value for the archive store.
func Serialize(o any) ([]byte, error) {
	return json.Marshal(o)
}

// Unserialize decodes a value previously written by Serialize.
func Unserialize(b []byte, o any) error {
	return json.Unmarshal(b, o)
}
