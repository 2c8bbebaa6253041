package linear

import (
	"bytes"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	coremodel "github.com/mlstack/entrain/core/model"
	"github.com/mlstack/entrain/pkg/errors"
)

func TestElasticNetFitRecoversLinearRelation(t *testing.T) {
	// y = 2x + 3; with negligible regularization coordinate descent should
	// land close to the least-squares solution.
	X := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})
	y := mat.NewDense(5, 1, []float64{5, 7, 9, 11, 13})

	en := NewElasticNet(WithAlpha(1e-8), WithMaxIter(10000), WithElasticNetTol(1e-10))
	if err := en.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if got := en.Coef_.AtVec(0); math.Abs(got-2.0) > 1e-3 {
		t.Errorf("Coef_ = %v, want ≈ 2.0", got)
	}
	if math.Abs(en.Intercept_-3.0) > 1e-3 {
		t.Errorf("Intercept_ = %v, want ≈ 3.0", en.Intercept_)
	}
	if !en.IsFitted() {
		t.Error("model not marked fitted after Fit()")
	}
}

func TestElasticNetRegularizationShrinksCoefficients(t *testing.T) {
	X := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
	y := mat.NewDense(6, 1, []float64{2, 4, 6, 8, 10, 12})

	weak := NewElasticNet(WithAlpha(1e-8))
	strong := NewElasticNet(WithAlpha(10.0))

	if err := weak.Fit(X, y); err != nil {
		t.Fatalf("weak Fit() error = %v", err)
	}
	if err := strong.Fit(X, y); err != nil {
		t.Fatalf("strong Fit() error = %v", err)
	}

	if math.Abs(strong.Coef_.AtVec(0)) >= math.Abs(weak.Coef_.AtVec(0)) {
		t.Errorf("strong regularization coef %v not smaller than weak %v",
			strong.Coef_.AtVec(0), weak.Coef_.AtVec(0))
	}
}

func TestElasticNetPredict(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 1,
		3, 2,
		4, 2,
	})
	y := mat.NewDense(4, 1, []float64{4, 6, 9, 11})

	en := NewElasticNet(WithAlpha(1e-8), WithMaxIter(10000), WithElasticNetTol(1e-10))
	if err := en.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	preds, err := en.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	for i := 0; i < 4; i++ {
		if math.Abs(preds.At(i, 0)-y.At(i, 0)) > 0.1 {
			t.Errorf("Predict()[%d] = %v, want ≈ %v", i, preds.At(i, 0), y.At(i, 0))
		}
	}
}

func TestElasticNetFitErrors(t *testing.T) {
	tests := []struct {
		name string
		X    *mat.Dense
		y    *mat.Dense
	}{
		{
			name: "row count mismatch",
			X:    mat.NewDense(3, 1, []float64{1, 2, 3}),
			y:    mat.NewDense(2, 1, []float64{1, 2}),
		},
		{
			name: "y not a column vector",
			X:    mat.NewDense(2, 1, []float64{1, 2}),
			y:    mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			en := NewElasticNet()
			if err := en.Fit(tt.X, tt.y); err == nil {
				t.Error("Fit() expected error, got nil")
			}
		})
	}
}

func TestElasticNetNotFitted(t *testing.T) {
	en := NewElasticNet()
	X := mat.NewDense(2, 1, []float64{1, 2})

	_, err := en.Predict(X)
	if err == nil {
		t.Fatal("Predict() on unfitted model expected error")
	}

	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Errorf("Predict() error = %v, want NotFittedError", err)
	}
}

func TestElasticNetParams(t *testing.T) {
	en := NewElasticNet(WithAlpha(0.5), WithL1Ratio(0.3))

	params := en.GetParams()
	if params["alpha"] != 0.5 || params["l1_ratio"] != 0.3 {
		t.Errorf("GetParams() = %v, want alpha=0.5 l1_ratio=0.3", params)
	}

	if err := en.SetParams(map[string]float64{"alpha": 1.5, "l1_ratio": 0.8}); err != nil {
		t.Fatalf("SetParams() error = %v", err)
	}
	params = en.GetParams()
	if params["alpha"] != 1.5 || params["l1_ratio"] != 0.8 {
		t.Errorf("GetParams() after SetParams = %v", params)
	}

	if err := en.SetParams(map[string]float64{"bogus": 1.0}); err == nil {
		t.Error("SetParams() expected error for unknown hyperparameter")
	}
	if err := en.SetParams(map[string]float64{"l1_ratio": 1.5}); err == nil {
		t.Error("SetParams() expected error for l1_ratio outside [0, 1]")
	}
	if err := en.SetParams(map[string]float64{"alpha": -1.0}); err == nil {
		t.Error("SetParams() expected error for negative alpha")
	}
}

func TestElasticNetClone(t *testing.T) {
	en := NewElasticNet(WithAlpha(0.7), WithL1Ratio(0.4))
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})
	if err := en.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	clone := en.Clone()
	if clone.IsFitted() {
		t.Error("Clone() must return an unfitted model")
	}
	params := clone.GetParams()
	if params["alpha"] != 0.7 || params["l1_ratio"] != 0.4 {
		t.Errorf("Clone() params = %v, want alpha=0.7 l1_ratio=0.4", params)
	}
}

func TestElasticNetConvergenceWarning(t *testing.T) {
	var captured error
	errors.SetWarningHandler(func(w error) { captured = w })
	defer errors.SetWarningHandler(nil)

	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{10, 20, 30, 40})

	en := NewElasticNet(WithAlpha(1e-8), WithMaxIter(1), WithElasticNetTol(1e-15))
	if err := en.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	var warning *errors.ConvergenceWarning
	if captured == nil || !errors.As(captured, &warning) {
		t.Errorf("expected ConvergenceWarning, got %v", captured)
	}
}

func TestElasticNetDisplayName(t *testing.T) {
	if got := coremodel.DisplayName(NewElasticNet()); got != "ElasticNet" {
		t.Errorf("DisplayName() = %q, want %q", got, "ElasticNet")
	}
}

func TestElasticNetGobRoundTrip(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		1, 2,
		2, 3,
		3, 4,
		4, 5,
		5, 6,
	})
	y := mat.NewDense(5, 1, []float64{5, 8, 11, 14, 17})

	en := NewElasticNet(WithAlpha(1e-6))
	if err := en.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	var buf bytes.Buffer
	if err := coremodel.SaveModelToWriter(en, &buf); err != nil {
		t.Fatalf("SaveModelToWriter() error = %v", err)
	}

	restored := &ElasticNet{}
	if err := coremodel.LoadModelFromReader(restored, &buf); err != nil {
		t.Fatalf("LoadModelFromReader() error = %v", err)
	}

	if !restored.IsFitted() {
		t.Fatal("restored model not marked fitted")
	}
	origPreds, err := en.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	restPreds, err := restored.Predict(X)
	if err != nil {
		t.Fatalf("restored Predict() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		if origPreds.At(i, 0) != restPreds.At(i, 0) {
			t.Errorf("prediction %d differs after round trip: %v vs %v",
				i, origPreds.At(i, 0), restPreds.At(i, 0))
		}
	}
}
