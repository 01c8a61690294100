package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadValues decodes a number list from r, either a bare array or an
// object with a "values" array.
func ReadValues(r io.Reader) ([]float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	var values []float64
	if len(raw) > 0 && raw[0] == '{' {
		var doc struct {
			Values []float64 `json:"values"`
		}
		err = json.Unmarshal(raw, &doc)
		values = doc.Values
	} else {
		err = json.Unmarshal(raw, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	if values == nil {
		values = []float64{}
	}
	return values, nil
}

// ImportValues reads a number list from the file at path.
func ImportValues(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadValues(f)
}
