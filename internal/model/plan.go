package model

import (
	"encoding/json"
	"fmt"
)

// ReadPlan is a verified {file path, parse spec} pair. The resolver only
// builds one for a path it has just confirmed exists.
type ReadPlan struct {
	path string
	spec ParseSpec
}

// NewReadPlan bundles a path with a validated spec. It does not touch the
// filesystem; existence is the caller's responsibility.
func NewReadPlan(path string, spec ParseSpec) (ReadPlan, error) {
	if path == "" {
		return ReadPlan{}, &ValidationError{Field: "file_path", Reason: "path is required"}
	}
	if err := spec.Validate(); err != nil {
		return ReadPlan{}, err
	}
	return ReadPlan{path: path, spec: spec.Clone()}, nil
}

// Path returns the resolved file path.
func (p ReadPlan) Path() string { return p.path }

// Spec returns a copy of the parse specification.
func (p ReadPlan) Spec() ParseSpec { return p.spec.Clone() }

// IsZero reports whether p is the zero plan.
func (p ReadPlan) IsZero() bool { return p.path == "" }

// Clone returns a deep copy of p.
func (p ReadPlan) Clone() ReadPlan {
	return ReadPlan{path: p.path, spec: p.spec.Clone()}
}

// SelectColumns checks a column subset for the tabular reader. An empty
// subset selects every column.
func (p ReadPlan) SelectColumns(cols []string) ([]string, error) {
	if len(cols) == 0 {
		return p.Spec().Columns, nil
	}
	seen := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		if _, ok := p.spec.ColumnIndex(c); !ok {
			return nil, &ValidationError{Field: "usecols", Reason: fmt.Sprintf("column %q not in plan", c)}
		}
		if _, dup := seen[c]; dup {
			return nil, &ValidationError{Field: "usecols", Reason: fmt.Sprintf("duplicate column %q", c)}
		}
		seen[c] = struct{}{}
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out, nil
}

type readPlanJSON struct {
	FilePath  string    `json:"file_path"`
	ParseSpec ParseSpec `json:"parse_spec"`
}

// MarshalJSON encodes the plan for the tabular reader.
func (p ReadPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal(readPlanJSON{FilePath: p.path, ParseSpec: p.spec})
}
