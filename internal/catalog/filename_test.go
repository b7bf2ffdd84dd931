package catalog

import (
	"errors"
	"testing"

	"github.com/rickgao/futures-data/internal/layout"
	"github.com/rickgao/futures-data/internal/model"
)

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name      string
		kind      model.SourceKind
		symbolDir string
		file      string
		refYear   int
		want      string // request String()
	}{
		{"quik current year", model.SourceQuik, "RI", "RIH4.csv", 2024, "quik/RIH2024"},
		{"quik next year", model.SourceQuik, "RI", "RIH5.csv", 2024, "quik/RIH2025"},
		{"quik oldest in window", model.SourceQuik, "Si", "SiZ6.csv", 2024, "quik/SiZ2016"},
		{"quik wraps decade", model.SourceQuik, "MX", "MXU9.csv", 2020, "quik/MXU2019"},
		{"daily two digits", model.SourceDaily, "Si", "SiZ23.csv", 2024, "daily/SiZ2023"},
		{"daily zero padded", model.SourceDaily, "GD", "GDM05.csv", 2024, "daily/GDM2005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseFileName(tt.kind, tt.symbolDir, tt.file, tt.refYear)
			if err != nil {
				t.Fatalf("ParseFileName error = %v", err)
			}
			if req.String() != tt.want {
				t.Errorf("ParseFileName = %q, want %q", req.String(), tt.want)
			}
		})
	}
}

func TestParseFileName_InvertsNamer(t *testing.T) {
	namer := layout.NewNamer()
	for _, kind := range model.AllSourceKinds() {
		for _, year := range []int{2016, 2020, 2024, 2025} {
			req, err := model.NewDataRequest(kind, model.InstrumentBR, model.MonthQ, model.YearDate(year))
			if err != nil {
				t.Fatal(err)
			}
			name, err := namer.FileName(req)
			if err != nil {
				t.Fatal(err)
			}
			back, err := ParseFileName(kind, "BR", name, 2024)
			if err != nil {
				t.Fatalf("ParseFileName(%s) error = %v", name, err)
			}
			if back != req {
				t.Errorf("ParseFileName(%s) = %s, want %s", name, back, req)
			}
		}
	}
}

func TestParseFileName_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		kind      model.SourceKind
		symbolDir string
		file      string
		want      error
	}{
		{"unknown kind", model.SourceKind("weekly"), "RI", "RIH4.csv", model.ErrUnregisteredSourceType},
		{"unknown symbol dir", model.SourceQuik, "XX", "XXH4.csv", model.ErrInvalidEnumValue},
		{"wrong extension", model.SourceQuik, "RI", "RIH4.txt", model.ErrValidation},
		{"symbol mismatch", model.SourceQuik, "RI", "SiH4.csv", model.ErrValidation},
		{"quik two digits", model.SourceQuik, "RI", "RIH24.csv", model.ErrValidation},
		{"daily one digit", model.SourceDaily, "RI", "RIH4.csv", model.ErrValidation},
		{"bad month", model.SourceQuik, "RI", "RIA4.csv", model.ErrInvalidEnumValue},
		{"lowercase month", model.SourceQuik, "RI", "RIh4.csv", model.ErrInvalidEnumValue},
		{"non numeric year", model.SourceDaily, "RI", "RIHxx.csv", model.ErrValidation},
		{"signed year", model.SourceDaily, "RI", "RIH+4.csv", model.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFileName(tt.kind, tt.symbolDir, tt.file, 2024)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseFileName error = %v, want %v", err, tt.want)
			}
		})
	}
}
