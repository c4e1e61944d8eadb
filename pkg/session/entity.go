// Package session holds the knowledge-session records that orbview
// visualizes, backed by a SQLite store.
package session

import (
	"encoding/json"
	"fmt"
	"io"
)

// Stats summarizes the content of a session's knowledge graph.
// Absent values decode as zero counts.
type Stats struct {
	Documents  int `json:"documents"`
	TextNodes  int `json:"textNodes"`
	Images     int `json:"images"`
	Websites   int `json:"websites"`
	TotalWords int `json:"totalWords"`
}

// Entity is one knowledge session as exposed to consumers: the viewer,
// the HTTP API, and JSON import/export all share this shape.
// Timestamps are unix milliseconds.
type Entity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	NodeCount   int    `json:"nodeCount"`
	EdgeCount   int    `json:"edgeCount"`
	Stats       Stats  `json:"stats"`
	CreatedAt   int64  `json:"createdTimestamp"`
	UpdatedAt   int64  `json:"lastModifiedTimestamp"`
}

// ReadEntities decodes a JSON array of entities from r.
func ReadEntities(r io.Reader) ([]Entity, error) {
	var entities []Entity
	dec := json.NewDecoder(r)
	if err := dec.Decode(&entities); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}
	return entities, nil
}

// WriteEntities encodes entities to w as indented JSON.
func WriteEntities(w io.Writer, entities []Entity) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entities); err != nil {
		return fmt.Errorf("encode entities: %w", err)
	}
	return nil
}
