package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25, // ((0.5)^2 + (0.5)^2 + (-0.5)^2 + (-0.5)^2) / 4
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMAE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.5,
			tolerance: 1e-10,
		},
		{
			name:      "mixed signs",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      7.0 / 3.0,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MAE(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("MAE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MAE() = %v, want %v", got, tt.want)
			}
		})
	}
}

// RMSE must equal √MSE exactly, not approximately.
func TestRMSEEqualsSqrtMSE(t *testing.T) {
	yTrue := mat.NewVecDense(5, []float64{3.1, -0.2, 4.7, 8.0, 1.5})
	yPred := mat.NewVecDense(5, []float64{2.9, 0.1, 5.0, 7.2, 1.9})

	mse, err := MSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MSE() error = %v", err)
	}
	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() error = %v", err)
	}

	if rmse != math.Sqrt(mse) {
		t.Errorf("RMSE() = %v, want exactly sqrt(MSE) = %v", rmse, math.Sqrt(mse))
	}
	if mse < 0 {
		t.Errorf("MSE() = %v, want non-negative", mse)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			want:      1.0,
			tolerance: 1e-10,
		},
		{
			name:      "mean prediction gives zero",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:    "no variance in yTrue",
			yTrue:   mat.NewVecDense(3, []float64{2.0, 2.0, 2.0}),
			yPred:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)

			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
			if got > 1.0 {
				t.Errorf("R2Score() = %v, must never exceed 1", got)
			}
		})
	}
}

func TestAdjustedR2(t *testing.T) {
	t.Run("matches closed form", func(t *testing.T) {
		yTrue := mat.NewVecDense(6, []float64{1.0, 2.0, 3.0, 4.0, 5.0, 6.0})
		yPred := mat.NewVecDense(6, []float64{1.1, 1.9, 3.2, 3.8, 5.1, 5.9})
		const p = 2

		r2, err := R2Score(yTrue, yPred)
		if err != nil {
			t.Fatalf("R2Score() error = %v", err)
		}
		want := 1 - (1-r2)*float64(6-1)/float64(6-p-1)

		got, err := AdjustedR2(yTrue, yPred, p)
		if err != nil {
			t.Fatalf("AdjustedR2() error = %v", err)
		}
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("AdjustedR2() = %v, want %v", got, want)
		}
	})

	// With a single predictor and many samples, the penalty vanishes and
	// adjusted R² approaches plain R².
	t.Run("approaches R2 for p=1 and large n", func(t *testing.T) {
		const n = 10000
		yt := make([]float64, n)
		yp := make([]float64, n)
		for i := 0; i < n; i++ {
			yt[i] = float64(i)
			yp[i] = float64(i) + 0.5
		}
		yTrue := mat.NewVecDense(n, yt)
		yPred := mat.NewVecDense(n, yp)

		r2, err := R2Score(yTrue, yPred)
		if err != nil {
			t.Fatalf("R2Score() error = %v", err)
		}
		ar2, err := AdjustedR2(yTrue, yPred, 1)
		if err != nil {
			t.Fatalf("AdjustedR2() error = %v", err)
		}
		if math.Abs(ar2-r2) > 1e-6 {
			t.Errorf("AdjustedR2() = %v, want within 1e-6 of R2 = %v", ar2, r2)
		}
	})

	// n-p-1 <= 0 leaves the statistic undefined: NaN plus an explicit
	// error, never a silently coerced value.
	t.Run("degenerate degrees of freedom", func(t *testing.T) {
		yTrue := mat.NewVecDense(3, []float64{1.0, 2.0, 3.0})
		yPred := mat.NewVecDense(3, []float64{1.0, 2.0, 3.1})

		for _, p := range []int{2, 3, 5} {
			got, err := AdjustedR2(yTrue, yPred, p)
			if err == nil {
				t.Errorf("AdjustedR2(p=%d) expected error, got nil", p)
			}
			if !math.IsNaN(got) {
				t.Errorf("AdjustedR2(p=%d) = %v, want NaN", p, got)
			}
		}
	})
}
