package models

import (
	"encoding/json"
	"fmt"
)

// Document is the source JSON document: one series list per mode name
type Document map[Mode][]Series

// ParseDocument decodes a source document
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse chart document: %w", err)
	}
	return doc, nil
}

// Select returns the series list for a mode, or nil when the document has none
func (d Document) Select(mode Mode) []Series {
	if d == nil {
		return nil
	}
	return d[mode]
}

// AvailableModes returns the modes present in the document, in Modes order
func (d Document) AvailableModes() []Mode {
	var out []Mode
	for _, m := range Modes {
		if _, ok := d[m]; ok {
			out = append(out, m)
		}
	}
	return out
}
