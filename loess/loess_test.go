package loess

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/loessgo/core/model"
	"github.com/YuminosukeSato/loessgo/dataset"
	"github.com/YuminosukeSato/loessgo/pkg/errors"
	"github.com/YuminosukeSato/loessgo/pkg/log"
)

var (
	_ model.CurveSmoother   = (*Smoother)(nil)
	_ model.Scorer          = (*Smoother)(nil)
	_ model.ParameterGetter = (*Smoother)(nil)
	_ model.ParameterSetter = (*Smoother)(nil)
)

func mustDataset(t *testing.T, xs, ys []float64) dataset.Dataset {
	t.Helper()
	data, err := dataset.FromSlices(xs, ys)
	if err != nil {
		t.Fatalf("FromSlices() error = %v", err)
	}
	return data
}

func mustSmoother(t *testing.T, options ...Option) *Smoother {
	t.Helper()
	s, err := NewSmoother(options...)
	if err != nil {
		t.Fatalf("NewSmoother() error = %v", err)
	}
	return s
}

func TestNewSmootherValidation(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		wantErr bool
	}{
		{name: "defaults", options: nil, wantErr: false},
		{name: "alpha upper bound inclusive", options: []Option{WithAlpha(1.0)}, wantErr: false},
		{name: "alpha zero", options: []Option{WithAlpha(0)}, wantErr: true},
		{name: "alpha negative", options: []Option{WithAlpha(-0.5)}, wantErr: true},
		{name: "alpha above one", options: []Option{WithAlpha(1.5)}, wantErr: true},
		{name: "alpha NaN", options: []Option{WithAlpha(math.NaN())}, wantErr: true},
		{name: "degree three", options: []Option{WithDegree(3)}, wantErr: true},
		{name: "degree negative", options: []Option{WithDegree(-1)}, wantErr: true},
		{name: "robust negative", options: []Option{WithRobustIterations(-1)}, wantErr: true},
		{name: "nil kernel", options: []Option{WithKernel(nil)}, wantErr: true},
		{name: "zero parallel threshold", options: []Option{WithParallelThreshold(0)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSmoother(tt.options...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSmoother() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var cfgErr *errors.ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("error %v is not a ConfigurationError", err)
				}
			}
		})
	}
}

func TestFitInsufficientData(t *testing.T) {
	data := mustDataset(t, []float64{1, 2}, []float64{1, 2})

	s := mustSmoother(t, WithDegree(2))
	_, err := s.Fit(data, []float64{1.5})
	if err == nil {
		t.Fatal("Fit() expected error for 2 samples with degree 2")
	}
	var insufficientErr *errors.InsufficientDataError
	if !errors.As(err, &insufficientErr) {
		t.Errorf("error %v is not an InsufficientDataError", err)
	}
}

func TestFitCurveLengthMatchesEvalPoints(t *testing.T) {
	data := mustDataset(t,
		[]float64{1, 2, 3, 4, 5, 6},
		[]float64{2, 4, 5, 4, 6, 7},
	)
	s := mustSmoother(t, WithAlpha(0.5))

	for _, n := range []int{0, 1, 7, 100} {
		points := make([]float64, n)
		for i := range points {
			points[i] = 0.5 + float64(i)*0.1
		}
		curve, err := s.Fit(data, points)
		if err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		if len(curve) != n {
			t.Errorf("len(curve) = %d, want %d", len(curve), n)
		}
		for i, p := range curve {
			if p.X != points[i] {
				t.Errorf("curve[%d].X = %v, want %v (input order must be preserved)", i, p.X, points[i])
			}
		}
	}
}

// With degree 0 the fitted value must equal the kernel-weighted mean of the
// neighborhood's y-values exactly.
func TestDegreeZeroIsWeightedMean(t *testing.T) {
	xs := []float64{10, 20, 30, 40, 50}
	ys := []float64{1, 2, 3, 10, 5}
	data := mustDataset(t, xs, ys)

	s := mustSmoother(t, WithAlpha(0.6), WithDegree(0)) // k = 3
	x0 := 30.0
	curve, err := s.Fit(data, []float64{x0})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// Neighborhood of x0=30 is {20, 30, 40}, dMax = 10.
	var num, den float64
	for _, i := range []int{1, 2, 3} {
		u := math.Abs(xs[i]-x0) / 10
		w := math.Exp(-(3 * u) * (3 * u) / 2)
		num += w * ys[i]
		den += w
	}
	want := num / den

	if got := curve[0].Y; math.Abs(got-want) > 1e-12 {
		t.Errorf("degree-0 fit = %v, want weighted mean %v", got, want)
	}
}

// A constant series must be reproduced exactly for any configuration.
func TestConstantSeriesIsInterpolated(t *testing.T) {
	const c = 4.25
	xs := []float64{1, 2, 3, 5, 8, 13, 21, 34}
	ys := make([]float64, len(xs))
	for i := range ys {
		ys[i] = c
	}
	data := mustDataset(t, xs, ys)

	kernels := map[string]Kernel{"gaussian": Gaussian, "uniform": Uniform, "tricube": Tricube}
	for name, kernel := range kernels {
		for _, alpha := range []float64{0.3, 0.6, 1.0} {
			for degree := 0; degree <= 2; degree++ {
				s := mustSmoother(t, WithAlpha(alpha), WithDegree(degree), WithKernel(kernel))
				curve, err := s.Fit(data, []float64{1, 4, 10, 34, 50})
				if err != nil {
					t.Fatalf("kernel=%s alpha=%v degree=%d: Fit() error = %v", name, alpha, degree, err)
				}
				for _, p := range curve {
					if math.Abs(p.Y-c) > 1e-9 {
						t.Errorf("kernel=%s alpha=%v degree=%d: fit at x=%v = %v, want %v",
							name, alpha, degree, p.X, p.Y, c)
					}
				}
			}
		}
	}
}

func TestFitIsIdempotent(t *testing.T) {
	data := mustDataset(t,
		[]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		[]float64{2.1, 3.9, 6.2, 8.1, 9.7, 12.3, 13.8, 16.2, 18.1, 19.9},
	)
	points := data.EvalGrid(37)
	s := mustSmoother(t, WithAlpha(0.4), WithDegree(2))

	first, err := s.Fit(data, points)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	second, err := s.Fit(data, points)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs between identical fits: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// Scenario from the smoothing contract: a tie in neighbor distance must
// yield a fit balanced between both sides, landing near the center value.
func TestScenarioTiedNeighborhood(t *testing.T) {
	data := mustDataset(t,
		[]float64{10, 20, 30, 40, 50},
		[]float64{1, 2, 3, 10, 5},
	)
	s := mustSmoother(t, WithAlpha(0.6), WithDegree(1)) // k = 3

	indices, dMax := nearestIndices(data, 30, 3)
	wantIndices := map[int]bool{1: true, 2: true, 3: true}
	for _, idx := range indices {
		if !wantIndices[idx] {
			t.Errorf("neighborhood of x0=30 contains index %d (x=%v), want {20, 30, 40}", idx, data[idx].X)
		}
	}
	if dMax != 10 {
		t.Errorf("dMax = %v, want 10", dMax)
	}

	curve, err := s.Fit(data, []float64{30})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	got := curve[0].Y
	if !(got > 2 && got < 10) {
		t.Errorf("fit at x0=30 = %v, want strictly between 2 and 10", got)
	}
	if math.Abs(got-3) > 0.5 {
		t.Errorf("fit at x0=30 = %v, want close to 3 (tied distances weight both sides equally)", got)
	}
}

// With alpha=1 and degree 0 the fit is the distance-weighted global mean;
// with the uniform kernel it collapses to the plain global mean.
func TestScenarioGlobalBandwidth(t *testing.T) {
	xs := []float64{10, 20, 30, 40, 50}
	ys := []float64{1, 2, 3, 10, 5}
	data := mustDataset(t, xs, ys)

	s := mustSmoother(t, WithAlpha(1.0), WithDegree(0))
	curve, err := s.Fit(data, []float64{30})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	got := curve[0].Y

	// Hand computation: dMax = 20, u = {1, 0.5, 0, 0.5, 1},
	// w = exp(-(3u)^2/2), yhat = Σwy / Σw.
	w := []float64{
		math.Exp(-4.5),
		math.Exp(-1.125),
		1,
		math.Exp(-1.125),
		math.Exp(-4.5),
	}
	var num, den float64
	for i := range w {
		num += w[i] * ys[i]
		den += w[i]
	}
	want := num / den

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("gaussian global fit at x0=30 = %v, want hand-computed %v", got, want)
	}
	// The query point's own value carries the highest weight, so the fit is
	// pulled from the global mean 4.2 toward y=3.
	if !(got < 4.2 && got > 3) {
		t.Errorf("gaussian global fit = %v, want in (3, 4.2)", got)
	}

	uniform := mustSmoother(t, WithAlpha(1.0), WithDegree(0), WithKernel(Uniform))
	uniformCurve, err := uniform.Fit(data, []float64{30, 10, 42.5})
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	const globalMean = 4.2
	for _, p := range uniformCurve {
		if math.Abs(p.Y-globalMean) > 1e-12 {
			t.Errorf("uniform global fit at x=%v = %v, want global mean %v", p.X, p.Y, globalMean)
		}
	}
}

func TestExtrapolationUsesOneSidedNeighborhood(t *testing.T) {
	data := mustDataset(t,
		[]float64{1, 2, 3, 4, 5},
		[]float64{2, 4, 6, 8, 10},
	)
	s := mustSmoother(t, WithAlpha(0.6), WithDegree(1))

	curve, err := s.Fit(data, []float64{-3, 0, 6, 20})
	if err != nil {
		t.Fatalf("Fit() error = %v (extrapolation must not fail)", err)
	}
	for _, p := range curve {
		if math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			t.Errorf("fit at x=%v = %v, want finite value", p.X, p.Y)
		}
	}

	// The data is exactly linear, so the one-sided local lines extend it.
	for _, p := range curve {
		if math.Abs(p.Y-2*p.X) > 1e-9 {
			t.Errorf("fit at x=%v = %v, want %v (local line extends exact linear data)", p.X, p.Y, 2*p.X)
		}
	}
}

func TestDegenerateNeighborhoodFallsBackToMean(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelDebug)
	prev := log.SetLogger(logger)
	defer log.SetLogger(prev)

	// All x-values coincide: a degree-1 design is rank-deficient everywhere.
	data := mustDataset(t,
		[]float64{5, 5, 5, 5},
		[]float64{1, 2, 3, 6},
	)
	s := mustSmoother(t, WithAlpha(1.0), WithDegree(1))

	curve, err := s.Fit(data, []float64{5, 7})
	if err != nil {
		t.Fatalf("Fit() error = %v (degenerate neighborhoods must not be fatal)", err)
	}

	const mean = 3.0
	for _, p := range curve {
		if !p.Degenerate {
			t.Errorf("point at x=%v not flagged degenerate", p.X)
		}
		if math.Abs(p.Y-mean) > 1e-12 {
			t.Errorf("fit at x=%v = %v, want fallback mean %v", p.X, p.Y, mean)
		}
	}
	if curve.DegenerateCount() != len(curve) {
		t.Errorf("DegenerateCount() = %d, want %d", curve.DegenerateCount(), len(curve))
	}
	if !logger.Contains("degenerate neighborhood") {
		t.Error("expected a degenerate-neighborhood warning in the log")
	}
}

func TestRobustSmoothingIgnoresOutlier(t *testing.T) {
	// Exactly collinear data with one gross outlier at x=6.
	xs := make([]float64, 10)
	ys := make([]float64, 10)
	for i := range xs {
		xs[i] = float64(i + 1)
		ys[i] = float64(i + 1)
	}
	ys[5] = 30
	data := mustDataset(t, xs, ys)

	plain := mustSmoother(t, WithAlpha(1.0), WithDegree(1))
	robust := mustSmoother(t, WithAlpha(1.0), WithDegree(1), WithRobustIterations(2))

	plainCurve, err := plain.Fit(data, []float64{6})
	if err != nil {
		t.Fatalf("plain Fit() error = %v", err)
	}
	robustCurve, err := robust.Fit(data, []float64{6})
	if err != nil {
		t.Fatalf("robust Fit() error = %v", err)
	}

	plainErr := math.Abs(plainCurve[0].Y - 6)
	robustErr := math.Abs(robustCurve[0].Y - 6)

	if plainErr < 1 {
		t.Errorf("plain fit error = %v, expected the outlier to drag the curve by more than 1", plainErr)
	}
	if robustErr > 1e-6 {
		t.Errorf("robust fit at x=6 = %v, want 6 (outlier fully down-weighted)", robustCurve[0].Y)
	}
	if robustErr >= plainErr {
		t.Errorf("robust error %v not smaller than plain error %v", robustErr, plainErr)
	}
}

func TestSmoothMatchesFit(t *testing.T) {
	data := mustDataset(t,
		[]float64{1, 2, 3, 4, 5, 6},
		[]float64{1.5, 2.2, 2.8, 4.4, 5.1, 5.8},
	)
	s := mustSmoother(t, WithAlpha(0.5))
	points := []float64{1.5, 3.5, 5.5}

	curve, err := s.Fit(data, points)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	ys, err := s.Smooth(data, points)
	if err != nil {
		t.Fatalf("Smooth() error = %v", err)
	}
	for i := range ys {
		if ys[i] != curve[i].Y {
			t.Errorf("Smooth()[%d] = %v, want %v", i, ys[i], curve[i].Y)
		}
	}
}

func TestScoreOnNearLinearData(t *testing.T) {
	data := mustDataset(t,
		[]float64{1, 2, 3, 4, 5, 6, 7, 8},
		[]float64{2.05, 3.98, 6.1, 7.9, 10.02, 12.1, 13.95, 16.02},
	)
	s := mustSmoother(t, WithAlpha(0.75), WithDegree(1))

	score, err := s.Score(data)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score < 0.99 {
		t.Errorf("Score() = %v, want > 0.99 for near-linear data", score)
	}
}

func TestResiduals(t *testing.T) {
	data := mustDataset(t,
		[]float64{1, 2, 3, 4, 5},
		[]float64{2, 4, 6, 8, 10},
	)
	s := mustSmoother(t, WithAlpha(1.0), WithDegree(1))

	residuals, err := s.Residuals(data)
	if err != nil {
		t.Fatalf("Residuals() error = %v", err)
	}
	if len(residuals) != len(data) {
		t.Fatalf("len(residuals) = %d, want %d", len(residuals), len(data))
	}
	for i, r := range residuals {
		if math.Abs(r) > 1e-9 {
			t.Errorf("residual[%d] = %v, want 0 for exact linear data", i, r)
		}
	}
}

func TestGetSetParams(t *testing.T) {
	s := mustSmoother(t, WithAlpha(0.4), WithDegree(2), WithRobustIterations(3))

	params := s.GetParams()
	if params["alpha"] != 0.4 || params["degree"] != 2 || params["robust_iterations"] != 3 {
		t.Errorf("GetParams() = %v, want alpha=0.4 degree=2 robust_iterations=3", params)
	}

	if err := s.SetParams(map[string]interface{}{"alpha": 0.9, "degree": 0}); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}
	params = s.GetParams()
	if params["alpha"] != 0.9 || params["degree"] != 0 {
		t.Errorf("GetParams() after SetParams = %v, want alpha=0.9 degree=0", params)
	}

	// Invalid values must be rejected and leave the smoother unchanged.
	if err := s.SetParams(map[string]interface{}{"alpha": 2.0}); err == nil {
		t.Fatal("SetParams() expected error for alpha=2.0")
	}
	if s.GetParams()["alpha"] != 0.9 {
		t.Errorf("alpha changed after failed SetParams: %v", s.GetParams()["alpha"])
	}
}

func TestParallelAndSequentialAgree(t *testing.T) {
	n := 200
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = math.Sin(float64(i) / 10)
	}
	data := mustDataset(t, xs, ys)
	points := data.EvalGrid(300)

	sequential := mustSmoother(t, WithAlpha(0.3), WithParallelThreshold(1<<30))
	parallel := mustSmoother(t, WithAlpha(0.3), WithParallelThreshold(1))

	seqCurve, err := sequential.Fit(data, points)
	if err != nil {
		t.Fatalf("sequential Fit() error = %v", err)
	}
	parCurve, err := parallel.Fit(data, points)
	if err != nil {
		t.Fatalf("parallel Fit() error = %v", err)
	}
	for i := range seqCurve {
		if seqCurve[i] != parCurve[i] {
			t.Errorf("point %d differs: sequential %+v, parallel %+v", i, seqCurve[i], parCurve[i])
		}
	}
}
