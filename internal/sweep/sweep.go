// Package sweep runs a grid of simulations over initial temperature and
// ambient pressure and reduces each run to its terminal regime. The
// resulting regime map shows where the flashing, fragmentation, and inert
// regions sit in parameter space.
package sweep

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/san-kum/flashboil/internal/droplet"
	"github.com/san-kum/flashboil/internal/flash"
	"github.com/san-kum/flashboil/internal/integrators"
	"github.com/san-kum/flashboil/internal/metrics"
	"github.com/san-kum/flashboil/internal/sim"
)

// Point is the reduced result of one grid cell.
type Point struct {
	Temp               float64
	Pressure           float64
	Regime             flash.Regime
	Outcome            sim.Outcome
	EvaporatedFraction float64
	FinalTime          float64
	Err                error
}

// Grid holds the sweep results, indexed [temperature][pressure].
type Grid struct {
	Temps     []float64
	Pressures []float64
	Points    [][]Point
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Run sweeps the grid with the given worker count. Each cell runs the
// base parameters with its own temperature and pressure; a cell that
// fails records its error instead of aborting the sweep.
func Run(ctx context.Context, base droplet.Params, cfg sim.Config, temps, pressures []float64, workers int) *Grid {
	g := &Grid{Temps: temps, Pressures: pressures, Points: make([][]Point, len(temps))}
	for i := range g.Points {
		g.Points[i] = make([]Point, len(pressures))
	}

	if workers < 1 {
		workers = 1
	}

	type cell struct{ ti, pi int }
	work := make(chan cell)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range work {
				g.Points[c.ti][c.pi] = runCell(ctx, base, cfg, temps[c.ti], pressures[c.pi])
			}
		}()
	}

	for ti := range temps {
		for pi := range pressures {
			work <- cell{ti, pi}
		}
	}
	close(work)
	wg.Wait()
	return g
}

func runCell(ctx context.Context, base droplet.Params, cfg sim.Config, temp, pressure float64) Point {
	pt := Point{Temp: temp, Pressure: pressure}

	params := base
	params.InitialTemp = temp
	params.AmbientPressure = pressure

	run, err := sim.New(params, cfg, integrators.NewRK4())
	if err != nil {
		pt.Err = err
		pt.Outcome = sim.OutcomeFailed
		return pt
	}
	frac := metrics.NewEvaporatedFraction()
	run.AddMetric(frac)

	res := run.RunToCompletion(ctx)
	pt.Regime = res.Regime
	pt.Outcome = res.Outcome
	pt.EvaporatedFraction = frac.Value()
	pt.FinalTime = res.FinalTime
	pt.Err = res.Err
	return pt
}

// regimeChar is the single-character legend of the map.
func regimeChar(p Point) byte {
	if p.Err != nil {
		return 'x'
	}
	switch p.Regime {
	case flash.SurfaceEvaporation:
		return '.'
	case flash.NucleateBoiling:
		return 'n'
	case flash.Fragmented:
		return 'F'
	case flash.Extinguished:
		return 'E'
	}
	return '?'
}

// RegimeMap renders the grid as text: temperature rows (hot at the top),
// pressure columns (low on the left).
func (g *Grid) RegimeMap() string {
	var b strings.Builder
	for ti := len(g.Temps) - 1; ti >= 0; ti-- {
		b.WriteString(formatAxis(g.Temps[ti], 7))
		b.WriteString(" K | ")
		for pi := range g.Pressures {
			b.WriteByte(regimeChar(g.Points[ti][pi]))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", 12))
	b.WriteString(strings.Repeat("--", len(g.Pressures)))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", 12))
	b.WriteString("low -> high pressure\n")
	b.WriteString("\nlegend: . surface  n nucleate  F fragmented  E extinguished  x failed\n")
	return b.String()
}

func formatAxis(v float64, width int) string {
	s := strconv.FormatFloat(v, 'g', 5, 64)
	for len(s) < width {
		s = " " + s
	}
	return s
}
