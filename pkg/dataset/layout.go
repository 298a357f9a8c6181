package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
)

// MarshalLayout encodes l as indented JSON.
func MarshalLayout(l layout.Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout decodes a JSON layout.
func UnmarshalLayout(data []byte) (layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return layout.Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// MarshalLayoutMsgpack encodes l as msgpack using the JSON field names, so
// both encodings share one schema.
func MarshalLayoutMsgpack(l layout.Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(&l); err != nil {
		return nil, fmt.Errorf("encode layout: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalLayoutMsgpack decodes a msgpack layout.
func UnmarshalLayoutMsgpack(data []byte) (layout.Layout, error) {
	var l layout.Layout
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&l); err != nil {
		return layout.Layout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes l to path: msgpack for ".msgpack" or ".mpk",
// JSON otherwise.
func WriteLayoutFile(l layout.Layout, path string) error {
	var (
		data []byte
		err  error
	)
	if isMsgpack(path) {
		data, err = MarshalLayoutMsgpack(l)
	} else {
		data, err = MarshalLayout(l)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadLayoutFile reads a layout written by [WriteLayoutFile].
func ReadLayoutFile(path string) (layout.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	if isMsgpack(path) {
		return UnmarshalLayoutMsgpack(data)
	}
	return UnmarshalLayout(data)
}

func isMsgpack(path string) bool {
	switch filepath.Ext(path) {
	case ".msgpack", ".mpk":
		return true
	}
	return false
}
