// Package plot renders run time series to PNG files with gonum/plot,
// one chart per quantity.
package plot

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/flashboil/internal/flash"
)

type chart struct {
	file   string
	title  string
	ylabel string
	values func(*flash.Series) []float64
	scale  float64
}

var charts = []chart{
	{"radius.png", "Droplet Radius", "R [mm]", (*flash.Series).Radii, 1e3},
	{"temperature.png", "Droplet Temperature", "T [K]", (*flash.Series).Temps, 1},
	{"superheat.png", "Superheat", "dT [K]", (*flash.Series).Superheats, 1},
	{"massflux.png", "Evaporation Rate", "mdot [kg/s]", (*flash.Series).Fluxes, 1},
}

// SavePNG writes one PNG per quantity into dir and returns the paths.
func SavePNG(series *flash.Series, dir string) ([]string, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("plot: empty series")
	}
	times := series.Times()

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		p := plot.New()
		p.Title.Text = c.title
		p.X.Label.Text = "t [s]"
		p.Y.Label.Text = c.ylabel
		p.Add(plotter.NewGrid())

		line, err := plotter.NewLine(xyPoints(times, c.values(series), c.scale))
		if err != nil {
			return nil, fmt.Errorf("plot %s: %w", c.file, err)
		}
		p.Add(line)

		path := filepath.Join(dir, c.file)
		if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return nil, fmt.Errorf("save %s: %w", c.file, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func xyPoints(times, values []float64, scale float64) plotter.XYs {
	pts := make(plotter.XYs, len(times))
	for i := range times {
		pts[i].X = times[i]
		pts[i].Y = values[i] * scale
	}
	return pts
}
