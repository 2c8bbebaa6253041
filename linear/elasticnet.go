// Package linear implements linear regression models with an API modeled on
// scikit-learn: Fit/Predict/Score over gonum matrices, sklearn-style
// attribute naming, and structured errors.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mlstack/entrain/core/model"
	"github.com/mlstack/entrain/core/parallel"
	"github.com/mlstack/entrain/pkg/errors"
)

// ElasticNet is a linear regression model combining L1 and L2 regularization,
// fitted by cyclic coordinate descent. It minimizes
//
//	(1/2n)·‖y − Xw − b‖² + α·ρ·‖w‖₁ + (α(1−ρ)/2)·‖w‖₂²
//
// where α is the overall regularization strength and ρ the L1 mixing ratio.
type ElasticNet struct {
	model.BaseEstimator

	// Hyperparameters (scikit-learn defaults)
	alpha   float64 // overall regularization strength
	l1Ratio float64 // L1/L2 mix in [0, 1]
	maxIter int     // maximum coordinate descent sweeps
	tol     float64 // convergence tolerance on coefficient updates

	// Model attributes (scikit-learn compatible naming)
	Coef_        *mat.VecDense // fitted coefficients (n_features,)
	Intercept_   float64       // fitted intercept
	NFeaturesIn_ int           // number of features seen during fit
	NIter_       int           // sweeps actually run
}

// NewElasticNet creates an ElasticNet with scikit-learn's defaults
// (alpha=1.0, l1_ratio=0.5, max_iter=1000, tol=1e-4).
func NewElasticNet(opts ...ElasticNetOption) *ElasticNet {
	en := &ElasticNet{
		alpha:   1.0,
		l1Ratio: 0.5,
		maxIter: 1000,
		tol:     1e-4,
	}
	for _, opt := range opts {
		opt(en)
	}
	return en
}

// Fit trains the model by cyclic coordinate descent. A ConvergenceWarning is
// emitted when maxIter sweeps complete without reaching tol.
func (en *ElasticNet) Fit(X, y mat.Matrix) error {
	nSamples, nFeatures := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("ElasticNet.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return errors.NewDimensionError("ElasticNet.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("ElasticNet.Fit", "y must be a column vector")
	}
	if en.alpha < 0 {
		return errors.NewValidationError("alpha", "must be non-negative", en.alpha)
	}
	if en.l1Ratio < 0 || en.l1Ratio > 1 {
		return errors.NewValidationError("l1_ratio", "must be in [0, 1]", en.l1Ratio)
	}

	en.NFeaturesIn_ = nFeatures

	// Dense working copies; column accessor on mat.Matrix is O(1) only for
	// *mat.Dense.
	Xd := mat.DenseCopyOf(X)
	yv := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		yv[i] = y.At(i, 0)
	}

	// Per-feature squared column norms, z_j = (1/n)·Σ x_ij².
	colNorm := make([]float64, nFeatures)
	for j := 0; j < nFeatures; j++ {
		var s float64
		for i := 0; i < nSamples; i++ {
			v := Xd.At(i, j)
			s += v * v
		}
		colNorm[j] = s / float64(nSamples)
	}

	w := make([]float64, nFeatures)
	b := meanOf(yv)

	// residual r_i = y_i − Σ_j x_ij·w_j − b, maintained incrementally
	resid := make([]float64, nSamples)
	for i := 0; i < nSamples; i++ {
		resid[i] = yv[i] - b
	}

	l1Penalty := en.alpha * en.l1Ratio
	l2Penalty := en.alpha * (1 - en.l1Ratio)
	n := float64(nSamples)

	converged := false
	sweep := 0
	for ; sweep < en.maxIter; sweep++ {
		var maxDelta float64

		for j := 0; j < nFeatures; j++ {
			if colNorm[j] == 0 {
				continue
			}

			// Partial residual correlation with feature j, with w_j
			// temporarily removed: rho_j = (1/n)·Σ x_ij·(r_i + x_ij·w_j)
			var rho float64
			for i := 0; i < nSamples; i++ {
				rho += Xd.At(i, j) * resid[i]
			}
			rho = rho/n + colNorm[j]*w[j]

			wNew := softThreshold(rho, l1Penalty) / (colNorm[j] + l2Penalty)
			delta := wNew - w[j]
			if delta != 0 {
				for i := 0; i < nSamples; i++ {
					resid[i] -= Xd.At(i, j) * delta
				}
				w[j] = wNew
			}
			if math.Abs(delta) > maxDelta {
				maxDelta = math.Abs(delta)
			}
		}

		// Re-center the intercept on the mean residual.
		bDelta := meanOf(resid)
		if bDelta != 0 {
			b += bDelta
			for i := 0; i < nSamples; i++ {
				resid[i] -= bDelta
			}
		}
		if math.Abs(bDelta) > maxDelta {
			maxDelta = math.Abs(bDelta)
		}

		if maxDelta < en.tol {
			converged = true
			sweep++
			break
		}
	}
	en.NIter_ = sweep

	if !converged {
		errors.Warn(errors.NewConvergenceWarning("ElasticNet", en.maxIter,
			"coordinate descent did not reach tolerance"))
	}

	en.Coef_ = mat.NewVecDense(nFeatures, w)
	en.Intercept_ = b
	en.SetFitted()

	return nil
}

// Predict returns predictions as an n×1 matrix.
func (en *ElasticNet) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !en.IsFitted() {
		return nil, errors.NewNotFittedError("ElasticNet", "Predict")
	}

	r, c := X.Dims()
	if c != en.NFeaturesIn_ {
		return nil, errors.NewDimensionError("ElasticNet.Predict", en.NFeaturesIn_, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)

	const parallelThreshold = 1000
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := en.Intercept_
			for j := 0; j < c; j++ {
				pred += X.At(i, j) * en.Coef_.AtVec(j)
			}
			predictions.Set(i, 0, pred)
		}
	})

	return predictions, nil
}

// Score returns the coefficient of determination R² on the given data.
func (en *ElasticNet) Score(X, y mat.Matrix) (float64, error) {
	if !en.IsFitted() {
		return 0, errors.NewNotFittedError("ElasticNet", "Score")
	}

	yPred, err := en.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()

	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yPredVal := yPred.At(i, 0)

		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPredVal) * (yTrue - yPredVal)
	}

	if tss == 0 {
		return 0, errors.Newf("total sum of squares is zero")
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

// GetParams returns the model's hyperparameters under their scikit-learn
// names.
func (en *ElasticNet) GetParams() map[string]float64 {
	return map[string]float64{
		"alpha":    en.alpha,
		"l1_ratio": en.l1Ratio,
	}
}

// SetParams updates the model's hyperparameters. Unknown names are rejected
// so a misspelled grid key fails instead of being silently ignored.
func (en *ElasticNet) SetParams(params map[string]float64) error {
	for name, value := range params {
		switch name {
		case "alpha":
			if value < 0 {
				return errors.NewValidationError("alpha", "must be non-negative", value)
			}
			en.alpha = value
		case "l1_ratio":
			if value < 0 || value > 1 {
				return errors.NewValidationError("l1_ratio", "must be in [0, 1]", value)
			}
			en.l1Ratio = value
		case "max_iter":
			en.maxIter = int(value)
		case "tol":
			en.tol = value
		default:
			return errors.NewValidationError(name, "unknown hyperparameter", value)
		}
	}
	return nil
}

// Clone returns an unfitted copy with the same hyperparameters.
func (en *ElasticNet) Clone() *ElasticNet {
	return &ElasticNet{
		alpha:   en.alpha,
		l1Ratio: en.l1Ratio,
		maxIter: en.maxIter,
		tol:     en.tol,
	}
}

// GetWeights returns the fitted coefficients as a slice.
func (en *ElasticNet) GetWeights() []float64 {
	if en.Coef_ == nil {
		return nil
	}
	weights := make([]float64, en.Coef_.Len())
	for i := 0; i < en.Coef_.Len(); i++ {
		weights[i] = en.Coef_.AtVec(i)
	}
	return weights
}

// GetIntercept returns the fitted intercept.
func (en *ElasticNet) GetIntercept() float64 {
	if !en.IsFitted() {
		return 0
	}
	return en.Intercept_
}

// softThreshold is the soft-thresholding operator S(z, g) used by the L1
// proximal step.
func softThreshold(z, gamma float64) float64 {
	switch {
	case z > gamma:
		return z - gamma
	case z < -gamma:
		return z + gamma
	default:
		return 0
	}
}

func meanOf(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s / float64(len(vals))
}
