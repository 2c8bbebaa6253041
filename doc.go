// Package entrain is the model-training stage of an ML pipeline: it fits an
// ElasticNet regressor to encoded CSV training data with cross-validated
// randomized hyperparameter search and records the outcome to an
// MLflow-compatible tracking server.
//
// The packages compose bottom-up:
//
//   - dataset loads the feature matrix and target vector from CSV
//   - config loads the YAML hyperparameter grid document
//   - linear implements the ElasticNet coordinate-descent solver
//   - modelselection implements k-fold splitting and RandomizedSearchCV
//   - metrics computes MSE, MAE, RMSE, R², and adjusted R²
//   - diagnostics renders evaluation plots
//   - tracking records runs, metrics, parameters, and model artifacts
//
// cmd/entrain wires these into the pipeline stage. See each package's
// documentation for the details of its API.
package entrain
