package layout

import (
	"errors"
	"testing"

	"github.com/rickgao/futures-data/internal/fsys"
	"github.com/rickgao/futures-data/internal/model"
)

func mustRequest(t *testing.T, source, symbol, month string, year int) model.DataRequest {
	t.Helper()
	req, err := model.ParseDataRequest(source, symbol, month, year)
	if err != nil {
		t.Fatalf("ParseDataRequest(%s, %s, %s, %d) error = %v", source, symbol, month, year, err)
	}
	return req
}

func TestNamer_FileName(t *testing.T) {
	tests := []struct {
		name   string
		source string
		symbol string
		month  string
		year   int
		want   string
	}{
		{"quik last digit", "quik", "RI", "H", 2024, "RIH4.csv"},
		{"quik decade boundary", "quik", "Si", "U", 2030, "SiU0.csv"},
		{"daily two digits", "daily", "Si", "Z", 2023, "SiZ23.csv"},
		{"daily zero padded", "daily", "GD", "M", 2005, "GDM05.csv"},
		{"daily century", "daily", "BR", "F", 2100, "BRF00.csv"},
	}

	n := NewNamer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mustRequest(t, tt.source, tt.symbol, tt.month, tt.year)
			got, err := n.FileName(req)
			if err != nil {
				t.Fatalf("FileName error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FileName = %q, want %q", got, tt.want)
			}
			again, _ := n.FileName(req)
			if again != got {
				t.Errorf("FileName not deterministic: %q then %q", got, again)
			}
		})
	}
}

func TestNamer_Unregistered(t *testing.T) {
	n := &Namer{funcs: map[model.SourceKind]NameFunc{model.SourceQuik: QuikName}}
	req := mustRequest(t, "daily", "RI", "H", 2024)

	_, err := n.FileName(req)
	if !errors.Is(err, model.ErrUnregisteredSourceType) {
		t.Fatalf("FileName error = %v, want ErrUnregisteredSourceType", err)
	}
	var uErr *model.UnregisteredSourceError
	if !errors.As(err, &uErr) || uErr.Component != "file name" {
		t.Errorf("error = %#v, want component %q", err, "file name")
	}
}

func TestDirs_FileDir(t *testing.T) {
	mem := fsys.NewMemory()
	d := NewDirs(mem, "data")

	tests := []struct {
		req  model.DataRequest
		want string
	}{
		{mustRequest(t, "quik", "RI", "H", 2024), "data/quik_data/RI"},
		{mustRequest(t, "daily", "Si", "Z", 2023), "data/daily_data/Si"},
	}
	for _, tt := range tests {
		got, err := d.FileDir(tt.req)
		if err != nil {
			t.Fatalf("FileDir(%s) error = %v", tt.req, err)
		}
		if got != tt.want {
			t.Errorf("FileDir(%s) = %q, want %q", tt.req, got, tt.want)
		}
	}

	if mem.Exists("data/quik_data/RI") {
		t.Error("FileDir created a directory")
	}
}

func TestDirs_Unregistered(t *testing.T) {
	d := NewDirs(fsys.NewMemory(), "data")
	delete(d.subRoots, model.SourceDaily)

	_, err := d.FileDir(mustRequest(t, "daily", "Si", "Z", 2023))
	var uErr *model.UnregisteredSourceError
	if !errors.As(err, &uErr) {
		t.Fatalf("FileDir error = %v, want *UnregisteredSourceError", err)
	}
	if uErr.Component != "file dir" {
		t.Errorf("Component = %q, want %q", uErr.Component, "file dir")
	}
}

func TestProvision(t *testing.T) {
	mem := fsys.NewMemory()
	d := NewDirs(mem, "data")
	req := mustRequest(t, "quik", "MX", "M", 2025)

	dir, err := Provision(d, mem, req)
	if err != nil {
		t.Fatalf("Provision error = %v", err)
	}
	if dir != "data/quik_data/MX" {
		t.Errorf("dir = %q, want %q", dir, "data/quik_data/MX")
	}
	if !mem.Exists(dir) {
		t.Error("Provision did not create the directory")
	}

	if _, err := Provision(d, mem, req); err != nil {
		t.Errorf("second Provision error = %v, want nil", err)
	}
}

func TestProvision_OS(t *testing.T) {
	root := t.TempDir()
	d := NewDirs(fsys.OS{}, root)
	req := mustRequest(t, "daily", "NG", "K", 2026)

	dir, err := Provision(d, fsys.OS{}, req)
	if err != nil {
		t.Fatalf("Provision error = %v", err)
	}
	if !(fsys.OS{}).Exists(dir) {
		t.Errorf("directory %s not created", dir)
	}
}
