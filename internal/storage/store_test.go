package storage

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/san-kum/flashboil/internal/config"
	"github.com/san-kum/flashboil/internal/flash"
	"github.com/san-kum/flashboil/internal/integrators"
	"github.com/san-kum/flashboil/internal/sim"
)

func finishedRun(t *testing.T) (config.Config, *sim.Result) {
	t.Helper()
	cfg, err := config.Preset("mild")
	if err != nil {
		t.Fatal(err)
	}
	cfg.MaxTime = 1e-5 // keep the test series short

	r, err := sim.New(cfg.Params(), cfg.SimConfig(), integrators.NewRK4())
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	res := r.RunToCompletion(context.Background())
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}
	return cfg, res
}

func TestSaveAndLoadRun(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	cfg, res := finishedRun(t)

	id, err := store.Save(cfg, res)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := store.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.ID != id {
		t.Errorf("metadata id %q, expected %q", meta.ID, id)
	}
	if meta.Outcome != res.Outcome.String() {
		t.Errorf("outcome %q, expected %q", meta.Outcome, res.Outcome)
	}
	if meta.Config != cfg {
		t.Errorf("config round trip mismatch")
	}

	samples, err := store.LoadSamples(id)
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	if len(samples) != res.Series.Len() {
		t.Fatalf("loaded %d samples, expected %d", len(samples), res.Series.Len())
	}
	for i, got := range samples {
		if got != res.Series.At(i) {
			t.Fatalf("sample %d mismatch:\n got %+v\nwant %+v", i, got, res.Series.At(i))
		}
	}
}

func TestListOrdersByCreation(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	cfg, res := finishedRun(t)

	first, err := store.Save(cfg, res)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Save(cfg, res)
	if err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("listed %d runs, expected 2", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("wrong order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestDelete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	cfg, res := finishedRun(t)

	id, err := store.Save(cfg, res)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(id); err == nil {
		t.Error("expected load to fail after delete")
	}
	if err := store.Delete("run-never-existed"); err == nil {
		t.Error("expected delete of unknown run to fail")
	}
}

func TestWriteCSVHeaderAndRegimes(t *testing.T) {
	samples := []flash.Sample{
		{T: 0, R: 1e-3, Temp: 373, Regime: flash.SurfaceEvaporation},
		{T: 1e-6, R: 0.9e-3, Temp: 360, Regime: flash.NucleateBoiling},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, samples); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,radius_m,") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasSuffix(lines[2], "nucleate_boiling") {
		t.Errorf("regime column missing: %s", lines[2])
	}
}

func TestWriteJSON(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg, res := finishedRun(t)
	id, err := store.Save(cfg, res)
	if err != nil {
		t.Fatal(err)
	}
	meta, err := store.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := store.LoadSamples(id)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, samples); err != nil {
		t.Fatalf("write json: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"metadata"`, `"samples"`, `"superheat_k"`, meta.ID} {
		if !strings.Contains(out, want) {
			t.Errorf("json export missing %s", want)
		}
	}
}
