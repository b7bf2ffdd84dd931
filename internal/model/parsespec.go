package model

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Column names shared by the built-in source layouts.
const (
	ColTicker            = "Ticker"
	ColPer               = "Per"
	ColDate              = "Date"
	ColTime              = "Time"
	ColOpen              = "Open"
	ColHigh              = "High"
	ColLow               = "Low"
	ColClose             = "Close"
	ColVolume            = "Volume"
	ColBoardID           = "BoardID"
	ColOpenPositionValue = "OpenPositionValue"
	ColValue             = "Value"
	ColOpenPosition      = "OpenPosition"
	ColSettlePrice       = "SettlePrice"
	ColWAPrice           = "WAPrice"
	ColSettlePriceDay    = "SettlePriceDay"
	ColChange            = "Change"
	ColQTY               = "QTY"
	ColNumTrades         = "NumTrades"
)

// ParseSpec is the declarative schema consumed by a tabular reader.
//
// Treat a ParseSpec as read-only once validated; use Clone before handing
// one out from a cache.
type ParseSpec struct {
	Separator       string           `json:"sep"`       // Field separator, one character
	SkipRows        *int             `json:"skip_rows"` // Rows skipped before the header (nil = none)
	Header          int              `json:"header"`    // Header row index after skipping
	Columns         []string         `json:"columns"`   // Ordered, unique column names
	DTypes          map[string]DType `json:"dtypes"`
	NAValues        []string         `json:"na_values"`
	DatetimeColumns []string         `json:"datetime_cols"` // Columns joined (space-separated) into a timestamp
	DatetimeFormat  string           `json:"datetime_fmt"`  // Go time layout for the joined columns
	Decimal         string           `json:"decimal"`       // Decimal separator, one character

	// Optional downstream overrides.
	ParseDates  []string `json:"parse_dates"`
	DateFormat  string   `json:"date_format,omitempty"`
	IndexColumn string   `json:"index_col,omitempty"`
	Iterator    bool     `json:"iterator"`
	ChunkSize   int      `json:"chunksize,omitempty"`
}

// Validate checks the internal consistency of the spec.
func (s ParseSpec) Validate() error {
	if utf8.RuneCountInString(s.Separator) != 1 {
		return &ValidationError{Field: "sep", Reason: fmt.Sprintf("want one character, got %q", s.Separator)}
	}
	if utf8.RuneCountInString(s.Decimal) != 1 {
		return &ValidationError{Field: "decimal", Reason: fmt.Sprintf("want one character, got %q", s.Decimal)}
	}
	if s.SkipRows != nil && *s.SkipRows < 0 {
		return &ValidationError{Field: "skip_rows", Reason: fmt.Sprintf("must be >= 0, got %d", *s.SkipRows)}
	}
	if s.Header < 0 {
		return &ValidationError{Field: "header", Reason: fmt.Sprintf("must be >= 0, got %d", s.Header)}
	}
	if len(s.Columns) == 0 {
		return &ValidationError{Field: "columns", Reason: "at least one column is required"}
	}

	known := make(map[string]struct{}, len(s.Columns))
	for _, c := range s.Columns {
		if c == "" {
			return &ValidationError{Field: "columns", Reason: "empty column name"}
		}
		if _, dup := known[c]; dup {
			return &ValidationError{Field: "columns", Reason: fmt.Sprintf("duplicate column %q", c)}
		}
		known[c] = struct{}{}
	}

	for _, c := range slices.Sorted(maps.Keys(s.DTypes)) {
		if _, ok := known[c]; !ok {
			return &ValidationError{Field: "dtypes", Reason: fmt.Sprintf("column %q not in columns", c)}
		}
		if !s.DTypes[c].Valid() {
			return &ValidationError{Field: "dtypes", Reason: fmt.Sprintf("column %q has unknown type %q", c, s.DTypes[c])}
		}
	}
	if err := subset("datetime_cols", s.DatetimeColumns, known); err != nil {
		return err
	}
	if len(s.DatetimeColumns) > 0 && s.DatetimeFormat == "" {
		return &ValidationError{Field: "datetime_fmt", Reason: "required when datetime_cols is set"}
	}
	if err := subset("parse_dates", s.ParseDates, known); err != nil {
		return err
	}
	if s.IndexColumn != "" {
		if _, ok := known[s.IndexColumn]; !ok {
			return &ValidationError{Field: "index_col", Reason: fmt.Sprintf("column %q not in columns", s.IndexColumn)}
		}
	}
	if s.ChunkSize < 0 {
		return &ValidationError{Field: "chunksize", Reason: fmt.Sprintf("must be >= 0, got %d", s.ChunkSize)}
	}
	if s.Iterator && s.ChunkSize == 0 {
		return &ValidationError{Field: "chunksize", Reason: "required when iterator is set"}
	}

	return nil
}

func subset(field string, cols []string, known map[string]struct{}) error {
	for _, c := range cols {
		if _, ok := known[c]; !ok {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("column %q not in columns", c)}
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s ParseSpec) Clone() ParseSpec {
	c := s
	if s.SkipRows != nil {
		n := *s.SkipRows
		c.SkipRows = &n
	}
	c.Columns = slices.Clone(s.Columns)
	c.DTypes = maps.Clone(s.DTypes)
	c.NAValues = slices.Clone(s.NAValues)
	c.DatetimeColumns = slices.Clone(s.DatetimeColumns)
	c.ParseDates = slices.Clone(s.ParseDates)
	return c
}

// ColumnIndex returns the position of name in Columns.
func (s ParseSpec) ColumnIndex(name string) (int, bool) {
	i := slices.Index(s.Columns, name)
	return i, i >= 0
}

// IsNA reports whether a raw cell value is one of the NA tokens.
func (s ParseSpec) IsNA(value string) bool {
	return slices.Contains(s.NAValues, value)
}

// Timestamp joins the datetime source fields with a space and parses them
// with DatetimeFormat. Values are given in DatetimeColumns order.
func (s ParseSpec) Timestamp(values ...string) (time.Time, error) {
	if len(values) != len(s.DatetimeColumns) {
		return time.Time{}, &ValidationError{
			Field:  "datetime_cols",
			Reason: fmt.Sprintf("want %d values, got %d", len(s.DatetimeColumns), len(values)),
		}
	}
	ts, err := time.Parse(s.DatetimeFormat, strings.Join(values, " "))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp: %w", err)
	}
	return ts, nil
}

// IntPtr returns a pointer to n, for optional ParseSpec fields.
func IntPtr(n int) *int { return &n }
