// Package model provides the common estimator plumbing shared by all models:
// fitted-state tracking, the regressor interfaces, display names, and
// serialization of trained models.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the interface for models that can be trained.
type Estimator interface {
	// Fit trains the model on the given feature matrix and target.
	Fit(X, y mat.Matrix) error

	// IsFitted reports whether Fit has completed successfully.
	IsFitted() bool
}

// Predictor is the interface for models that can predict.
type Predictor interface {
	// Predict returns predictions for the given feature matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces for regression models.
type Regressor interface {
	Estimator
	Predictor
	Scorer
}

// ParamGetter is the interface for models that expose their hyperparameters.
type ParamGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]float64
}

// ParamSetter is the interface for models that allow hyperparameter changes.
type ParamSetter interface {
	// SetParams sets the model's hyperparameters.
	SetParams(params map[string]float64) error
}
