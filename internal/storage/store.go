// Package storage persists finished runs to disk. Each run gets its own
// directory under the store root with a metadata.json and a samples.csv,
// so results stay greppable and loadable without the binary.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/flashboil/internal/config"
	"github.com/san-kum/flashboil/internal/flash"
	"github.com/san-kum/flashboil/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

// Metadata is the run summary stored next to the samples.
type Metadata struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Config    config.Config      `json:"config"`
	Outcome   string             `json:"outcome"`
	Regime    string             `json:"regime"`
	FinalTime float64            `json:"final_time"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// Save persists a run and returns its ID.
func (s *Store) Save(cfg config.Config, res *sim.Result) (string, error) {
	now := time.Now().UTC()
	id := fmt.Sprintf("run-%s-%06d", now.Format("20060102-150405"), now.Nanosecond()/1000)

	dir := filepath.Join(s.root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	meta := Metadata{
		ID:        id,
		CreatedAt: now,
		Config:    cfg,
		Outcome:   res.Outcome.String(),
		Regime:    res.Regime.String(),
		FinalTime: res.FinalTime,
		Steps:     res.Steps,
		Metrics:   res.Metrics,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), data, 0o644); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, samplesFile))
	if err != nil {
		return "", fmt.Errorf("create samples file: %w", err)
	}
	defer f.Close()
	if err := WriteCSV(f, res.Series.Samples()); err != nil {
		return "", err
	}
	return id, nil
}

// List returns metadata for all stored runs, oldest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read store root: %w", err)
	}

	var runs []Metadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // skip foreign directories
		}
		runs = append(runs, meta)
	}
	// IDs embed the creation timestamp, so lexical order is creation order.
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

// Load reads the metadata of one run.
func (s *Store) Load(id string) (Metadata, error) {
	data, err := os.ReadFile(filepath.Join(s.root, id, metadataFile))
	if err != nil {
		return Metadata{}, fmt.Errorf("read metadata for %s: %w", id, err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata for %s: %w", id, err)
	}
	return meta, nil
}

// LoadSamples reads the full time series of one run.
func (s *Store) LoadSamples(id string) ([]flash.Sample, error) {
	f, err := os.Open(filepath.Join(s.root, id, samplesFile))
	if err != nil {
		return nil, fmt.Errorf("open samples for %s: %w", id, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse samples for %s: %w", id, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("samples for %s: empty file", id)
	}

	samples := make([]flash.Sample, 0, len(records)-1)
	for _, rec := range records[1:] { // skip header
		if len(rec) != 7 {
			return nil, fmt.Errorf("samples for %s: expected 7 columns, got %d", id, len(rec))
		}
		var smp flash.Sample
		var errs [6]error
		smp.T, errs[0] = strconv.ParseFloat(rec[0], 64)
		smp.R, errs[1] = strconv.ParseFloat(rec[1], 64)
		smp.Temp, errs[2] = strconv.ParseFloat(rec[2], 64)
		smp.Superheat, errs[3] = strconv.ParseFloat(rec[3], 64)
		smp.Psat, errs[4] = strconv.ParseFloat(rec[4], 64)
		smp.MassFlux, errs[5] = strconv.ParseFloat(rec[5], 64)
		for _, e := range errs {
			if e != nil {
				return nil, fmt.Errorf("samples for %s: %w", id, e)
			}
		}
		smp.Regime = flash.ParseRegime(rec[6])
		samples = append(samples, smp)
	}
	return samples, nil
}

// Delete removes a stored run.
func (s *Store) Delete(id string) error {
	if _, err := s.Load(id); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.root, id))
}
