package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/lodviz/pkg/core/table"
)

// ReadTable decodes a table document from r.
func ReadTable(r io.Reader) (*table.DataTable, error) {
	t := table.NewTable()
	if err := json.NewDecoder(r).Decode(t); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}
	return t, nil
}

// ImportTable reads a table document from the file at path.
func ImportTable(path string) (*table.DataTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadTable(f)
}

// WriteTable encodes t as {"rows": [...]} with tagged field values.
func WriteTable(t *table.DataTable, w io.Writer) error {
	return WriteJSON(w, t)
}
