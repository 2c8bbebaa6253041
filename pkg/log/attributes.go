// Package log defines standard attribute keys for training operations.
//
// Using these keys keeps log output consistent across packages and makes
// run output easy to filter.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "ElasticNet".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "search", "score", "log_run"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Metrics and search context.
const (
	// R2ScoreKey records the R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// CandidatesKey is the number of hyperparameter candidates evaluated.
	CandidatesKey = "search.candidates"

	// FoldsKey is the number of cross-validation folds.
	FoldsKey = "search.folds"
)

// Tracking context.
const (
	// RunIDKey is the tracking-service run identifier.
	RunIDKey = "tracking.run_id"

	// TrackingURIKey is the tracking-service base URI.
	TrackingURIKey = "tracking.uri"
)
