// Package result reconstructs per-row records from the columnar result sets
// the query endpoint returns: an ordered column list plus a dataset of rows.
// Cells are decoded into dynval values first; projection then zips rows
// against column names and re-materializes caller-chosen record types.
package result

import (
	"encoding/json"
	"fmt"

	"github.com/swift-glide/questdb-go/dynval"
)

// Column describes one result column. The declared type label is carried for
// callers (and the offline exporter) but never drives value conversion.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Timings reports server-side phase durations in nanoseconds.
type Timings struct {
	Compiler int64 `json:"compiler"`
	Execute  int64 `json:"execute"`
	Count    int64 `json:"count"`
	Fetch    int64 `json:"fetch"`
}

// Response is the decoded query-endpoint envelope. On success Columns and
// Dataset are populated; on failure Error carries the server message and
// Position the offending offset in the statement text.
type Response struct {
	Query    string
	Columns  []Column
	Dataset  [][]dynval.Value
	Count    int64
	Timings  *Timings
	Error    string
	Position int
}

// Parse decodes a raw response payload. Every dataset cell goes through the
// dynval probe chain; a cell that matches no tag fails the whole parse.
func Parse(data []byte) (*Response, error) {
	var raw struct {
		Query    string              `json:"query"`
		Columns  []Column            `json:"columns"`
		Dataset  [][]json.RawMessage `json:"dataset"`
		Count    int64               `json:"count"`
		Timings  *Timings            `json:"timings"`
		Error    string              `json:"error"`
		Position int                 `json:"position"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	resp := &Response{
		Query:    raw.Query,
		Columns:  raw.Columns,
		Count:    raw.Count,
		Timings:  raw.Timings,
		Error:    raw.Error,
		Position: raw.Position,
	}
	if raw.Dataset == nil {
		return resp, nil
	}

	resp.Dataset = make([][]dynval.Value, len(raw.Dataset))
	for i, rawRow := range raw.Dataset {
		row := make([]dynval.Value, len(rawRow))
		for j, cell := range rawRow {
			v, err := dynval.Decode(cell)
			if err != nil {
				return nil, fmt.Errorf("dataset[%d][%d]: %w", i, j, err)
			}
			row[j] = v
		}
		resp.Dataset[i] = row
	}
	return resp, nil
}
