package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func validSpec() ParseSpec {
	return ParseSpec{
		Separator:       ",",
		Header:          0,
		Columns:         []string{ColDate, ColTime, ColClose},
		DTypes:          map[string]DType{ColDate: DTypeString, ColTime: DTypeString, ColClose: DTypeFloat64},
		NAValues:        []string{""},
		DatetimeColumns: []string{ColDate, ColTime},
		DatetimeFormat:  "20060102 150405",
		Decimal:         ".",
	}
}

func TestParseSpec_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ParseSpec)
		wantField string
	}{
		{"valid", func(*ParseSpec) {}, ""},
		{"empty separator", func(s *ParseSpec) { s.Separator = "" }, "sep"},
		{"long separator", func(s *ParseSpec) { s.Separator = ";;" }, "sep"},
		{"long decimal", func(s *ParseSpec) { s.Decimal = ".," }, "decimal"},
		{"negative skip rows", func(s *ParseSpec) { s.SkipRows = IntPtr(-1) }, "skip_rows"},
		{"negative header", func(s *ParseSpec) { s.Header = -1 }, "header"},
		{"no columns", func(s *ParseSpec) { s.Columns = nil; s.DTypes = nil; s.DatetimeColumns = nil }, "columns"},
		{"duplicate column", func(s *ParseSpec) { s.Columns = append(s.Columns, ColClose) }, "columns"},
		{"dtype key unknown", func(s *ParseSpec) { s.DTypes[ColVolume] = DTypeInt64 }, "dtypes"},
		{"dtype value unknown", func(s *ParseSpec) { s.DTypes[ColClose] = DType("Int64") }, "dtypes"},
		{"datetime column unknown", func(s *ParseSpec) { s.DatetimeColumns = []string{ColDate, "Stamp"} }, "datetime_cols"},
		{"datetime format missing", func(s *ParseSpec) { s.DatetimeFormat = "" }, "datetime_fmt"},
		{"parse dates unknown", func(s *ParseSpec) { s.ParseDates = []string{"When"} }, "parse_dates"},
		{"index column unknown", func(s *ParseSpec) { s.IndexColumn = "Idx" }, "index_col"},
		{"iterator without chunk", func(s *ParseSpec) { s.Iterator = true }, "chunksize"},
		{"streaming", func(s *ParseSpec) { s.Iterator = true; s.ChunkSize = 1000 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSpec()
			tt.mutate(&s)
			err := s.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q (%v)", vErr.Field, tt.wantField, err)
			}
		})
	}
}

func TestParseSpec_Clone(t *testing.T) {
	s := validSpec()
	s.SkipRows = IntPtr(2)

	c := s.Clone()
	if diff := cmp.Diff(s, c); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}

	c.Columns[0] = "Mutated"
	c.DTypes[ColClose] = DTypeInt64
	*c.SkipRows = 9

	if s.Columns[0] != ColDate {
		t.Errorf("original Columns[0] = %q, want %q", s.Columns[0], ColDate)
	}
	if s.DTypes[ColClose] != DTypeFloat64 {
		t.Errorf("original DTypes[Close] = %q, want %q", s.DTypes[ColClose], DTypeFloat64)
	}
	if *s.SkipRows != 2 {
		t.Errorf("original SkipRows = %d, want 2", *s.SkipRows)
	}
}

func TestParseSpec_Timestamp(t *testing.T) {
	s := validSpec()

	got, err := s.Timestamp("20240315", "101530")
	if err != nil {
		t.Fatalf("Timestamp error = %v", err)
	}
	want := time.Date(2024, time.March, 15, 10, 15, 30, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", got, want)
	}

	if _, err := s.Timestamp("20240315"); !errors.Is(err, ErrValidation) {
		t.Errorf("Timestamp arity error = %v, want ErrValidation", err)
	}
	if _, err := s.Timestamp("2024-03-15", "10:15:30"); err == nil {
		t.Error("Timestamp with wrong layout: expected error")
	}
}

func TestReadPlan(t *testing.T) {
	if _, err := NewReadPlan("", validSpec()); !errors.Is(err, ErrValidation) {
		t.Errorf("empty path error = %v, want ErrValidation", err)
	}

	plan, err := NewReadPlan("data/quik_data/RI/RIH4.csv", validSpec())
	if err != nil {
		t.Fatalf("NewReadPlan error = %v", err)
	}

	spec := plan.Spec()
	spec.Columns[0] = "Mutated"
	if plan.Spec().Columns[0] != ColDate {
		t.Error("Spec() exposes internal state")
	}

	cols, err := plan.SelectColumns(nil)
	if err != nil {
		t.Fatalf("SelectColumns(nil) error = %v", err)
	}
	if diff := cmp.Diff(validSpec().Columns, cols); diff != "" {
		t.Errorf("SelectColumns(nil) mismatch (-want +got):\n%s", diff)
	}
	if _, err := plan.SelectColumns([]string{ColClose, "Bid"}); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown column error = %v, want ErrValidation", err)
	}
	if _, err := plan.SelectColumns([]string{ColClose, ColClose}); !errors.Is(err, ErrValidation) {
		t.Errorf("duplicate column error = %v, want ErrValidation", err)
	}

	data, err := json.Marshal(plan)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if !strings.Contains(string(data), `"file_path":"data/quik_data/RI/RIH4.csv"`) {
		t.Errorf("Marshal = %s, missing file_path", data)
	}
	if !strings.Contains(string(data), `"datetime_cols":["Date","Time"]`) {
		t.Errorf("Marshal = %s, missing datetime_cols", data)
	}
}

func TestErrors_Retryable(t *testing.T) {
	if !IsRetryable(&FileNotFoundError{Path: "x.csv"}) {
		t.Error("FileNotFoundError should be retryable")
	}
	if IsRetryable(&UnregisteredSourceError{Kind: "weekly", Component: "file dir"}) {
		t.Error("UnregisteredSourceError should not be retryable")
	}
	if IsRetryable(&ValidationError{Field: "year"}) {
		t.Error("ValidationError should not be retryable")
	}
}
