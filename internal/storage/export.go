package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/flashboil/internal/flash"
)

// csvHeader is the fixed column order shared by saved runs and exports.
var csvHeader = []string{
	"time", "radius_m", "temperature_k", "superheat_k",
	"psat_pa", "massflux_kgps", "regime",
}

// WriteCSV streams samples as CSV with a header row.
func WriteCSV(w io.Writer, samples []flash.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range samples {
		rec := []string{
			strconv.FormatFloat(s.T, 'g', -1, 64),
			strconv.FormatFloat(s.R, 'g', -1, 64),
			strconv.FormatFloat(s.Temp, 'g', -1, 64),
			strconv.FormatFloat(s.Superheat, 'g', -1, 64),
			strconv.FormatFloat(s.Psat, 'g', -1, 64),
			strconv.FormatFloat(s.MassFlux, 'g', -1, 64),
			s.Regime.String(),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// jsonExport is the export envelope: summary first, then the series.
type jsonExport struct {
	Metadata Metadata     `json:"metadata"`
	Samples  []jsonSample `json:"samples"`
}

type jsonSample struct {
	Time      float64 `json:"time"`
	Radius    float64 `json:"radius_m"`
	Temp      float64 `json:"temperature_k"`
	Superheat float64 `json:"superheat_k"`
	Psat      float64 `json:"psat_pa"`
	MassFlux  float64 `json:"massflux_kgps"`
	Regime    string  `json:"regime"`
}

// WriteJSON streams a run with its metadata as one JSON document.
func WriteJSON(w io.Writer, meta Metadata, samples []flash.Sample) error {
	out := jsonExport{Metadata: meta, Samples: make([]jsonSample, len(samples))}
	for i, s := range samples {
		out.Samples[i] = jsonSample{
			Time:      s.T,
			Radius:    s.R,
			Temp:      s.Temp,
			Superheat: s.Superheat,
			Psat:      s.Psat,
			MassFlux:  s.MassFlux,
			Regime:    s.Regime.String(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
