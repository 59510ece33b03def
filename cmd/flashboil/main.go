package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/flashboil/internal/config"
	"github.com/san-kum/flashboil/internal/flash"
	"github.com/san-kum/flashboil/internal/integrators"
	"github.com/san-kum/flashboil/internal/metrics"
	"github.com/san-kum/flashboil/internal/plot"
	"github.com/san-kum/flashboil/internal/sim"
	"github.com/san-kum/flashboil/internal/storage"
	"github.com/san-kum/flashboil/internal/sweep"
	"github.com/san-kum/flashboil/internal/thermo"
	"github.com/san-kum/flashboil/internal/viz"
)

var (
	dataDir string

	radiusMM     float64
	tempK        float64
	pressurePa   float64
	alpha        float64
	nucleation   float64
	onsetK       float64
	fragK        float64
	noBoiling    bool
	convection   bool
	hCoeff       float64
	ambientTempK float64

	dt         float64
	duration   float64
	integrator string
	adaptive   bool
	tolerance  float64

	configFile string
	preset     string
	outDir     string

	propTMin  float64
	propTMax  float64
	propTStep float64

	sweepTMin    float64
	sweepTMax    float64
	sweepTSteps  int
	sweepPMin    float64
	sweepPMax    float64
	sweepPSteps  int
	sweepWorkers int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flashboil",
		Short: "flash boiling droplet simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view with the standard configuration.
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".flashboil", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the result",
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}
	addParamFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	plotPNGCmd := &cobra.Command{
		Use:   "plot-png [run_id]",
		Short: "render run results to PNG files",
		Args:  cobra.ExactArgs(1),
		RunE:  plotPNG,
	}
	plotPNGCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	propsCmd := &cobra.Command{
		Use:   "props",
		Short: "tabulate water property correlations",
		RunE:  showProps,
	}
	propsCmd.Flags().Float64Var(&propTMin, "tmin", 300, "start temperature [K]")
	propsCmd.Flags().Float64Var(&propTMax, "tmax", 450, "end temperature [K]")
	propsCmd.Flags().Float64Var(&propTStep, "step", 10, "temperature step [K]")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "map terminal regimes over temperature and pressure",
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepTMin, "tmin", 310, "lowest initial temperature [K]")
	sweepCmd.Flags().Float64Var(&sweepTMax, "tmax", 440, "highest initial temperature [K]")
	sweepCmd.Flags().IntVar(&sweepTSteps, "tsteps", 14, "temperature steps")
	sweepCmd.Flags().Float64Var(&sweepPMin, "pmin", 500, "lowest ambient pressure [Pa]")
	sweepCmd.Flags().Float64Var(&sweepPMax, "pmax", 101325, "highest ambient pressure [Pa]")
	sweepCmd.Flags().IntVar(&sweepPSteps, "psteps", 20, "pressure steps")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 4, "parallel workers")

	equationsCmd := &cobra.Command{
		Use:   "equations",
		Short: "print the model equations",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(equationsText)
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, plotPNGCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, presetsCmd, propsCmd,
		sweepCmd, equationsCmd)
	addParamFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	d := config.Default()
	cmd.Flags().Float64Var(&radiusMM, "radius", d.RadiusMM, "initial radius [mm]")
	cmd.Flags().Float64Var(&tempK, "temp", d.TemperatureK, "initial temperature [K]")
	cmd.Flags().Float64Var(&pressurePa, "pressure", d.PressurePa, "ambient pressure [Pa]")
	cmd.Flags().Float64Var(&alpha, "alpha", d.Alpha, "evaporation coefficient")
	cmd.Flags().Float64Var(&nucleation, "nucleation", d.NucleationFactor, "nucleate boiling factor")
	cmd.Flags().Float64Var(&onsetK, "onset", d.NucleationOnsetK, "nucleation onset superheat [K]")
	cmd.Flags().Float64Var(&fragK, "frag", d.FragSuperheatK, "fragmentation superheat [K]")
	cmd.Flags().BoolVar(&noBoiling, "no-boiling", false, "disable nucleate boiling")
	cmd.Flags().BoolVar(&convection, "convection", d.Convection, "enable convective heating")
	cmd.Flags().Float64Var(&hCoeff, "hcoeff", d.ConvectionCoeff, "convection coefficient [W/m2K]")
	cmd.Flags().Float64Var(&ambientTempK, "ambient-temp", d.AmbientTempK, "ambient temperature [K]")
	cmd.Flags().Float64Var(&dt, "dt", d.Dt, "timestep [s]")
	cmd.Flags().Float64Var(&duration, "time", d.MaxTime, "max simulated time [s]")
	cmd.Flags().StringVar(&integrator, "integrator", d.Integrator, "integrator (euler, rk4, rk45)")
	cmd.Flags().BoolVar(&adaptive, "adaptive", d.Adaptive, "adaptive timestep (rk45)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", d.Tolerance, "adaptive error tolerance")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file, and explicit flags, in that
// order of increasing precedence.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p, err := config.Preset(preset)
		if err != nil {
			return cfg, err
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("radius") {
		cfg.RadiusMM = radiusMM
	}
	if flags.Changed("temp") {
		cfg.TemperatureK = tempK
	}
	if flags.Changed("pressure") {
		cfg.PressurePa = pressurePa
	}
	if flags.Changed("alpha") {
		cfg.Alpha = alpha
	}
	if flags.Changed("nucleation") {
		cfg.NucleationFactor = nucleation
	}
	if flags.Changed("onset") {
		cfg.NucleationOnsetK = onsetK
	}
	if flags.Changed("frag") {
		cfg.FragSuperheatK = fragK
	}
	if flags.Changed("no-boiling") {
		cfg.NucleateBoiling = !noBoiling
	}
	if flags.Changed("convection") {
		cfg.Convection = convection
	}
	if flags.Changed("hcoeff") {
		cfg.ConvectionCoeff = hCoeff
	}
	if flags.Changed("ambient-temp") {
		cfg.AmbientTempK = ambientTempK
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.MaxTime = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	stepper, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	run, err := sim.New(cfg.Params(), cfg.SimConfig(), stepper)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults() {
		run.AddMetric(m)
	}

	fmt.Printf("simulating a %.2f mm droplet at %.1f K into %.0f Pa...\n",
		cfg.RadiusMM, cfg.TemperatureK, cfg.PressurePa)
	start := time.Now()

	res := run.RunToCompletion(context.Background())
	if res.Err != nil {
		return res.Err
	}
	elapsed := time.Since(start)

	store, err := storage.NewStore(dataDir)
	if err != nil {
		return err
	}
	runID, err := store.Save(cfg, res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("outcome: %s\n", res.Outcome)
	fmt.Printf("regime: %s\n", res.Regime)
	fmt.Printf("final time: %.6g s\n", res.FinalTime)
	fmt.Printf("steps: %d\n", res.Steps)

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, res.Metrics[name])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store, err := storage.NewStore(dataDir)
	if err != nil {
		return err
	}
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tOUTCOME\tREGIME\tT_FINAL\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.6gs\t%d\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Outcome,
			run.Regime,
			run.FinalTime,
			run.Steps,
		)
	}
	return w.Flush()
}

func loadRun(id string) (storage.Metadata, []flash.Sample, error) {
	store, err := storage.NewStore(dataDir)
	if err != nil {
		return storage.Metadata{}, nil, err
	}
	meta, err := store.Load(id)
	if err != nil {
		return storage.Metadata{}, nil, err
	}
	samples, err := store.LoadSamples(id)
	if err != nil {
		return storage.Metadata{}, nil, err
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("outcome: %s (%s)\n", meta.Outcome, meta.Regime)
	fmt.Printf("samples: %d\n\n", len(samples))

	charts := []struct {
		caption string
		value   func(flash.Sample) float64
	}{
		{"radius [mm]", func(s flash.Sample) float64 { return s.R * 1e3 }},
		{"temperature [K]", func(s flash.Sample) float64 { return s.Temp }},
		{"superheat [K]", func(s flash.Sample) float64 { return s.Superheat }},
		{"mass flux [kg/s]", func(s flash.Sample) float64 { return s.MassFlux }},
	}
	for _, c := range charts {
		data := sampleColumn(samples, c.value, 320)
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

// sampleColumn extracts one quantity, downsampled to at most n points.
func sampleColumn(samples []flash.Sample, f func(flash.Sample) float64, n int) []float64 {
	if len(samples) <= n {
		out := make([]float64, len(samples))
		for i, s := range samples {
			out[i] = f(s)
		}
		return out
	}
	out := make([]float64, n)
	step := float64(len(samples)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = f(samples[int(float64(i)*step)])
	}
	return out
}

func plotPNG(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	series := flash.NewSeries(len(samples))
	for _, s := range samples {
		series.Append(s)
	}

	paths, err := plot.SavePNG(series, outDir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store, err := storage.NewStore(dataDir)
	if err != nil {
		return err
	}
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta, nil)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta, samples)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTEMP\tPRESSURE\tONSET\tFRAG\tDT\tMAX_TIME")
	for _, name := range config.PresetNames() {
		cfg, err := config.Preset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%.0fK\t%.0fPa\t%.0fK\t%.0fK\t%.2g\t%.2g\n",
			name, cfg.TemperatureK, cfg.PressurePa,
			cfg.NucleationOnsetK, cfg.FragSuperheatK, cfg.Dt, cfg.MaxTime)
	}
	return w.Flush()
}

func showProps(cmd *cobra.Command, args []string) error {
	if propTStep <= 0 {
		return fmt.Errorf("step must be positive")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T[K]\tP_SAT[Pa]\tH_FG[J/kg]\tRHO[kg/m3]\tCP[J/kgK]")
	for T := propTMin; T <= propTMax+1e-9; T += propTStep {
		psat, err := thermo.SaturationPressure(T)
		if err != nil {
			return err
		}
		hfg, err := thermo.LatentHeat(T)
		if err != nil {
			return err
		}
		rho, err := thermo.LiquidDensity(T)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%.1f\t%.4g\t%.4g\t%.1f\t%.0f\n",
			T, psat, hfg, rho, thermo.SpecificHeat(T))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if sweepTSteps < 1 || sweepPSteps < 1 {
		return fmt.Errorf("tsteps and psteps must be at least 1")
	}

	temps := sweep.Linspace(sweepTMin, sweepTMax, sweepTSteps)
	pressures := sweep.Linspace(sweepPMin, sweepPMax, sweepPSteps)

	fmt.Printf("sweeping %d x %d cells with %d workers...\n\n",
		sweepTSteps, sweepPSteps, sweepWorkers)

	grid := sweep.Run(context.Background(), cfg.Params(), cfg.SimConfig(),
		temps, pressures, sweepWorkers)
	fmt.Print(grid.RegimeMap())

	failures := 0
	for _, row := range grid.Points {
		for _, pt := range row {
			if pt.Err != nil {
				failures++
			}
		}
	}
	if failures > 0 {
		fmt.Printf("\n%d cells failed (outside the property correlation range)\n", failures)
	}
	return nil
}

const equationsText = `flash boiling droplet model

state: [R, T]  (radius [m], temperature [K])

surface evaporation (Hertz-Knudsen, clamped at zero):
  mdot_s = 4 pi R^2 alpha (p_sat(T) - p_inf) / sqrt(2 pi R_v T)

nucleate boiling (above the onset superheat):
  mdot_n = m(R,T) * k_n * (dT - dT_onset)^2,  dT = T - T_sat(p_inf)

mass balance:
  dR/dt = -(mdot_s + mdot_n) / (4 pi R^2 rho(T))

energy balance:
  dT/dt = (-(mdot_s + mdot_n) h_fg(T) + Q_conv) / (m(R,T) cp)
  Q_conv = h 4 pi R^2 (T_inf - T)    (optional)

correlations:
  p_sat : Antoine equation (water)
  h_fg  : Watson relation, n = 0.38
  rho   : quadratic density fit, floored at 500 kg/m3

regimes:
  surface_evaporation -> nucleate_boiling  at dT > dT_onset (one way)
  any                 -> fragmented        at dT > dT_frag  (terminal)
  any                 -> extinguished      at R <= 1e-9 m   (terminal)
`
