package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remi-v/intentsim/internal/analysis"
	"github.com/remi-v/intentsim/internal/config"
	"github.com/remi-v/intentsim/internal/dynamo"
	"github.com/remi-v/intentsim/internal/integrators"
	"github.com/remi-v/intentsim/internal/models"
	"github.com/remi-v/intentsim/internal/newton"
	"github.com/remi-v/intentsim/internal/predict"
	"github.com/remi-v/intentsim/internal/store"
	"github.com/remi-v/intentsim/internal/viz"
)

var (
	configFile string
	modelName  string
	stepper    string
	drag       float64
	rollDeg    float64
	pitchDeg   float64
	yawRateDps float64
	t0         float64
	tFinal     float64
	steps      int
	north      float64
	east       float64
	vNorth     float64
	vEast      float64
	yawDeg     float64
	iterMax    int
	minError   float64

	exportPath string
	plotKind   string
	plotWidth  int
	plotHeight int

	// region command
	scheme string
	reMin  float64
	reMax  float64
	imMin  float64
	imMax  float64
	cols   int
	rows   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "intentsim",
		Short: "short-horizon pilot-intent trajectory prediction",
	}

	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "integrate a model forward under a constant pilot input",
		RunE:  runPredict,
	}
	addRunFlags(predictCmd)
	predictCmd.Flags().StringVar(&exportPath, "export", "", "write run JSON to file")
	predictCmd.Flags().StringVar(&plotKind, "plot", "", "plot: xy or a state component name")
	predictCmd.Flags().IntVar(&plotWidth, "plot-width", 70, "plot width (chars)")
	predictCmd.Flags().IntVar(&plotHeight, "plot-height", 20, "plot height (chars)")

	eigenCmd := &cobra.Command{
		Use:   "eigen",
		Short: "per-step eigenvalues of jacobian*dt along a predicted trajectory",
		RunE:  runEigen,
	}
	addRunFlags(eigenCmd)
	eigenCmd.Flags().IntVar(&plotHeight, "plot-height", 20, "plot height (chars)")

	regionCmd := &cobra.Command{
		Use:   "region",
		Short: "stability-region grid for a stepping scheme",
		RunE:  runRegion,
	}
	addRunFlags(regionCmd)
	regionCmd.Flags().StringVar(&scheme, "scheme", "euler", "scheme: euler | backward-euler")
	regionCmd.Flags().Float64Var(&reMin, "re-min", -3, "real axis minimum")
	regionCmd.Flags().Float64Var(&reMax, "re-max", 1, "real axis maximum")
	regionCmd.Flags().Float64Var(&imMin, "im-min", -2, "imaginary axis minimum")
	regionCmd.Flags().Float64Var(&imMax, "im-max", 2, "imaginary axis maximum")
	regionCmd.Flags().IntVar(&cols, "cols", 72, "grid columns")
	regionCmd.Flags().IntVar(&rows, "rows", 36, "grid rows")
	regionCmd.Flags().BoolVar(&overlayEigen, "overlay", false, "overlay trajectory eigenvalues")

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a default scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	rootCmd.AddCommand(predictCmd, eigenCmd, regionCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var overlayEigen bool

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario YAML file")
	cmd.Flags().StringVar(&modelName, "model", "quadcopter", "model: quadcopter | planar")
	cmd.Flags().StringVar(&stepper, "stepper", "euler", "stepper: euler | rk4 | backward-euler")
	cmd.Flags().Float64Var(&drag, "drag", config.DefaultDrag, "linear drag coefficient (1/s)")
	cmd.Flags().Float64Var(&rollDeg, "roll", 0, "roll (degrees)")
	cmd.Flags().Float64Var(&pitchDeg, "pitch", 10, "pitch (degrees)")
	cmd.Flags().Float64Var(&yawRateDps, "yaw-rate", 0, "yaw rate (degrees/s)")
	cmd.Flags().Float64Var(&t0, "t0", 0, "start time (s)")
	cmd.Flags().Float64Var(&tFinal, "time", config.DefaultTFinal, "horizon (s)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of fixed steps")
	cmd.Flags().Float64Var(&north, "north", 0, "initial north position (m)")
	cmd.Flags().Float64Var(&east, "east", 0, "initial east position (m)")
	cmd.Flags().Float64Var(&vNorth, "v-north", 0, "initial north velocity (m/s)")
	cmd.Flags().Float64Var(&vEast, "v-east", 0, "initial east velocity (m/s)")
	cmd.Flags().Float64Var(&yawDeg, "yaw", 0, "initial yaw (degrees, quadcopter only)")
	cmd.Flags().IntVar(&iterMax, "newton-iter-max", config.DefaultIterMax, "newton iteration cap")
	cmd.Flags().Float64Var(&minError, "newton-min-error", config.DefaultMinError, "newton residual threshold")
}

// scenario merges the config file (if any) with command-line flags; flags
// the user set explicitly win.
func scenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if configFile == "" || set("model") {
		cfg.Model = modelName
	}
	if configFile == "" || set("stepper") {
		cfg.Stepper = stepper
	}
	if configFile == "" || set("drag") {
		cfg.Drag = drag
	}
	if configFile == "" || set("roll") {
		cfg.Input.RollDeg = rollDeg
	}
	if configFile == "" || set("pitch") {
		cfg.Input.PitchDeg = pitchDeg
	}
	if configFile == "" || set("yaw-rate") {
		cfg.Input.YawRateDps = yawRateDps
	}
	if configFile == "" || set("t0") {
		cfg.T0 = t0
	}
	if configFile == "" || set("time") {
		cfg.TFinal = tFinal
	}
	if configFile == "" || set("steps") {
		cfg.Steps = steps
	}
	if configFile == "" || set("north") {
		cfg.InitState.North = north
	}
	if configFile == "" || set("east") {
		cfg.InitState.East = east
	}
	if configFile == "" || set("v-north") {
		cfg.InitState.VNorth = vNorth
	}
	if configFile == "" || set("v-east") {
		cfg.InitState.VEast = vEast
	}
	if configFile == "" || set("yaw") {
		cfg.InitState.YawDeg = yawDeg
	}
	if configFile == "" || set("newton-iter-max") {
		cfg.Newton.IterMax = iterMax
	}
	if configFile == "" || set("newton-min-error") {
		cfg.Newton.MinError = minError
	}
	return cfg, nil
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	switch cfg.Model {
	case "quadcopter":
		model := models.NewQuadcopter(cfg.Drag)
		p, err := runQuad(cfg, model)
		if err != nil {
			return err
		}
		return report(p, cfg, quadComponents, p.Control.Components())
	case "planar":
		model := models.NewPlanar(cfg.Drag)
		p, err := runPlanar(cfg, model)
		if err != nil {
			return err
		}
		return report(p, cfg, planarComponents, p.Control.Components())
	default:
		return fmt.Errorf("unknown model %q", cfg.Model)
	}
}

func runEigen(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	radii, err := trajectoryRadii(cfg)
	if err != nil {
		return err
	}

	maxR := 0.0
	for _, r := range radii {
		if r > maxR {
			maxR = r
		}
	}
	fmt.Println(viz.Title.Render("spectral radius of jacobian*dt along trajectory"))
	fmt.Println(viz.KV("max |lambda*dt|", fmt.Sprintf("%.6f", maxR)))
	if chart := viz.SeriesPlot(radii, "|lambda*dt| vs step", plotHeight); chart != "" {
		fmt.Println(chart)
	}
	return nil
}

func runRegion(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}

	var fn analysis.StabilityFn
	switch scheme {
	case "euler":
		fn = analysis.ForwardEulerStability
	case "backward-euler":
		fn = analysis.BackwardEulerStability
	default:
		return fmt.Errorf("unknown scheme %q", scheme)
	}

	region, err := analysis.NewRegion(fn, reMin, reMax, imMin, imMax, cols, rows)
	if err != nil {
		return err
	}

	var overlay []complex128
	if overlayEigen {
		eigs, err := trajectoryEigs(cfg)
		if err != nil {
			return err
		}
		for _, vals := range eigs {
			overlay = append(overlay, vals...)
		}
	}

	fmt.Println(viz.Title.Render(scheme + " stability region"))
	fmt.Print(viz.RenderRegion(region, overlay))
	return nil
}

var (
	quadComponents   = []string{"north", "east", "v_north", "v_east", "yaw"}
	planarComponents = []string{"north", "east", "v_north", "v_east"}
)

func newtonOpts(cfg *config.Config) newton.Opts {
	return newton.Opts{IterMax: cfg.Newton.IterMax, MinError: cfg.Newton.MinError}
}

func runQuad(cfg *config.Config, model *models.Quadcopter) (*predict.Prediction[models.QuadState, models.QuadControl], error) {
	var st dynamo.Stepper[models.QuadState, models.QuadControl]
	switch cfg.Stepper {
	case "euler":
		st = integrators.NewEuler[models.QuadState, models.QuadControl](model)
	case "rk4":
		st = integrators.NewRK4[models.QuadState, models.QuadControl](model)
	case "backward-euler":
		st = integrators.NewBackwardEuler[models.QuadState, models.QuadControl](model, newtonOpts(cfg))
	default:
		return nil, fmt.Errorf("unknown stepper %q", cfg.Stepper)
	}
	x0 := models.QuadState{
		North:  cfg.InitState.North,
		East:   cfg.InitState.East,
		VNorth: cfg.InitState.VNorth,
		VEast:  cfg.InitState.VEast,
		Yaw:    cfg.YawRad(),
	}
	return predict.Predict(cfg.PilotInput(), x0, model, st, cfg.T0, cfg.TFinal, cfg.Steps)
}

func runPlanar(cfg *config.Config, model *models.Planar) (*predict.Prediction[models.PlanarState, models.PlanarControl], error) {
	var st dynamo.Stepper[models.PlanarState, models.PlanarControl]
	switch cfg.Stepper {
	case "euler":
		st = integrators.NewEuler[models.PlanarState, models.PlanarControl](model)
	case "rk4":
		st = integrators.NewRK4[models.PlanarState, models.PlanarControl](model)
	case "backward-euler":
		st = integrators.NewBackwardEuler[models.PlanarState, models.PlanarControl](model, newtonOpts(cfg))
	default:
		return nil, fmt.Errorf("unknown stepper %q", cfg.Stepper)
	}
	x0 := models.PlanarState{
		North:  cfg.InitState.North,
		East:   cfg.InitState.East,
		VNorth: cfg.InitState.VNorth,
		VEast:  cfg.InitState.VEast,
	}
	return predict.Predict(cfg.PilotInput(), x0, model, st, cfg.T0, cfg.TFinal, cfg.Steps)
}

func trajectoryEigs(cfg *config.Config) ([][]complex128, error) {
	switch cfg.Model {
	case "quadcopter":
		model := models.NewQuadcopter(cfg.Drag)
		p, err := runQuad(cfg, model)
		if err != nil {
			return nil, err
		}
		return analysis.TrajectoryEigenvalues(model, p)
	case "planar":
		model := models.NewPlanar(cfg.Drag)
		p, err := runPlanar(cfg, model)
		if err != nil {
			return nil, err
		}
		return analysis.TrajectoryEigenvalues(model, p)
	default:
		return nil, fmt.Errorf("unknown model %q", cfg.Model)
	}
}

func trajectoryRadii(cfg *config.Config) ([]float64, error) {
	eigs, err := trajectoryEigs(cfg)
	if err != nil {
		return nil, err
	}
	return analysis.SpectralRadii(eigs), nil
}

type plottableState[S any] interface {
	dynamo.VecState[S]
	dynamo.Positioned
}

func report[S plottableState[S], U any](p *predict.Prediction[S, U], cfg *config.Config, components []string, control []float64) error {
	fmt.Println(viz.Title.Render("prediction"))
	fmt.Println(viz.KV("model", cfg.Model))
	fmt.Println(viz.KV("stepper", cfg.Stepper))
	fmt.Println(viz.KV("dt", fmt.Sprintf("%.6f s", p.Dt())))
	fmt.Println(viz.KV("steps", fmt.Sprintf("%d", p.Steps())))
	fmt.Println(viz.KV("cpu time", p.CPUTime.String()))

	final := p.States[len(p.States)-1].Vector()
	var sb strings.Builder
	for i, name := range components {
		if i > 0 {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%s=%.4f", name, final.AtVec(i))
	}
	fmt.Println(viz.KV("final state", sb.String()))

	switch {
	case plotKind == "xy":
		chart, err := viz.TrajectoryXY(p.States, plotWidth, plotHeight)
		if err != nil {
			return err
		}
		fmt.Print(viz.Panel.Render(chart) + "\n")
	case plotKind != "":
		idx := -1
		for i, name := range components {
			if name == plotKind {
				idx = i
			}
		}
		if idx < 0 {
			return fmt.Errorf("unknown component %q (have %s)", plotKind, strings.Join(components, ", "))
		}
		series := make([]float64, len(p.States))
		for i, s := range p.States {
			series[i] = s.Vector().AtVec(idx)
		}
		fmt.Println(viz.SeriesPlot(series, plotKind+" vs time", plotHeight))
	}

	if exportPath != "" {
		data := store.FromPrediction(p, cfg.Model, cfg.Stepper, control)
		if err := store.WriteJSON(exportPath, data); err != nil {
			return err
		}
		fmt.Println(viz.KV("exported", exportPath))
	}
	return nil
}
