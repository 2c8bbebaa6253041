package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/mlstack/entrain/pkg/errors"
)

// RegressionReport bundles the five regression metrics computed for one
// training run. When the report is produced from predictions on the same
// data the model was fitted on, the values are in-sample (training) metrics,
// not test metrics.
type RegressionReport struct {
	MSE        float64
	MAE        float64
	RMSE       float64
	R2         float64
	AdjustedR2 float64
}

// NamedMetric is one metric value under its reporting key.
type NamedMetric struct {
	Key   string
	Value float64
}

// Evaluate computes the full regression report from a target vector, the
// model predictions, and the number of features used to fit the model.
// It fails when the adjusted R² is undefined (n-p-1 <= 0).
func Evaluate(yTrue, yPred *mat.VecDense, nFeatures int) (*RegressionReport, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	ar2, err := AdjustedR2(yTrue, yPred, nFeatures)
	if err != nil {
		return nil, err
	}

	return &RegressionReport{
		MSE:        mse,
		MAE:        mae,
		RMSE:       rmse,
		R2:         r2,
		AdjustedR2: ar2,
	}, nil
}

// Named returns the metrics in reporting order under their fixed keys.
func (r *RegressionReport) Named() []NamedMetric {
	return []NamedMetric{
		{Key: "MSE", Value: r.MSE},
		{Key: "MAE", Value: r.MAE},
		{Key: "RMSE", Value: r.RMSE},
		{Key: "R2", Value: r.R2},
		{Key: "Adjusted R2", Value: r.AdjustedR2},
	}
}

// ColumnVec converts an n×1 matrix (the shape returned by Predict) into a
// dense vector. It errors if the matrix has more than one column.
func ColumnVec(m mat.Matrix) (*mat.VecDense, error) {
	r, c := m.Dims()
	if c != 1 {
		return nil, errors.NewDimensionError("ColumnVec", 1, c, 1)
	}

	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v, nil
}
