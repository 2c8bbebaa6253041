// Command entrain is the model-training stage of the pipeline: it loads the
// encoded training data and the hyperparameter grid, fits an ElasticNet via
// cross-validated randomized search, and records metrics, best parameters,
// and the fitted model to the tracking server.
//
// Every failure is terminal. This stage performs no retries and leaves no
// partial state behind: a run either logs completely or is marked FAILED.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mlstack/entrain/config"
	"github.com/mlstack/entrain/core/model"
	"github.com/mlstack/entrain/dataset"
	"github.com/mlstack/entrain/diagnostics"
	"github.com/mlstack/entrain/linear"
	"github.com/mlstack/entrain/metrics"
	"github.com/mlstack/entrain/modelselection"
	"github.com/mlstack/entrain/pkg/log"
	"github.com/mlstack/entrain/tracking"
)

// Stage inputs and the tracking destination are fixed; this binary is
// invoked by the pipeline runner, not by hand.
const (
	xTrainPath  = "data/04_encoded_data/X_train.csv"
	yTrainPath  = "data/04_encoded_data/y_train.csv"
	paramsPath  = "params.yaml"
	trackingURI = "http://localhost:5000"

	modelFamily = "elasticnet"
)

func main() {
	log.SetupLogger("info")

	X, err := dataset.LoadMatrix(xTrainPath)
	if err != nil {
		fatal("failed to load feature matrix", err)
	}
	y, err := dataset.LoadVector(yTrainPath)
	if err != nil {
		fatal("failed to load target vector", err)
	}

	params, err := config.Load(paramsPath)
	if err != nil {
		fatal("failed to load hyperparameter document", err)
	}
	fmt.Println("----------------------------------------------------")
	fmt.Print(params)

	grid, err := params.Grid(modelFamily)
	if err != nil {
		fatal("hyperparameter grid lookup failed", err)
	}
	fmt.Println(grid)

	nSamples, nFeatures := X.Dims()
	slog.Info("training data loaded",
		slog.Int(log.SamplesKey, nSamples),
		slog.Int(log.FeaturesKey, nFeatures),
	)

	search := modelselection.NewRandomizedSearchCV(
		linear.NewElasticNet(), grid, modelselection.SearchConfig{})
	result, err := search.Fit(X, y)
	if err != nil {
		fatal("hyperparameter search failed", err)
	}

	// These are in-sample metrics: the best model is refit on the full
	// training set and evaluated on that same data.
	report, err := metrics.Evaluate(y, result.Predictions, nFeatures)
	if err != nil {
		fatal("metric computation failed", err)
	}

	modelName := model.DisplayName(result.BestEstimator)
	fmt.Printf("Model Name: %s\n", modelName)
	for _, m := range report.Named() {
		fmt.Printf("%s: %v\n", m.Key, m.Value)
	}

	var artifacts []tracking.Artifact
	if png, err := diagnostics.PredictedVsActual(y, result.Predictions); err != nil {
		slog.Warn("skipping prediction plot", log.ErrAttr(err))
	} else {
		artifacts = append(artifacts, tracking.Artifact{Name: "predicted_vs_actual.png", Body: png})
	}

	client := tracking.NewClient(trackingURI)
	logger := tracking.NewLogger(client)
	if err := logger.LogRun(context.Background(), modelName, result.BestEstimator,
		result.BestParams, report, artifacts...); err != nil {
		fatal("failed to log run", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, log.ErrAttr(err))
	os.Exit(1)
}
