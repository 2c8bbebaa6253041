package modelselection

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/mlstack/entrain/pkg/errors"
	"github.com/mlstack/entrain/pkg/log"
)

// Estimator is the model contract required by the search: it must be
// trainable, score itself with R², expose its hyperparameters, and produce
// unfitted copies of itself.
type Estimator[E any] interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
	Score(X, y mat.Matrix) (float64, error)
	GetParams() map[string]float64
	SetParams(params map[string]float64) error
	Clone() E
}

// SearchConfig controls a RandomizedSearchCV.
type SearchConfig struct {
	// NIter is the number of parameter combinations sampled (default 10).
	// When the grid has no more than NIter combinations, all of them are
	// evaluated.
	NIter int

	// NSplits is the number of cross-validation folds (default 5).
	NSplits int

	// Seed fixes the sampling and fold shuffling for reproducibility.
	// Zero means time-based: results are then NOT reproducible run-to-run,
	// matching the behavior of a search with no fixed random state.
	Seed int64
}

// CandidateResult records the cross-validated score of one sampled
// parameter combination.
type CandidateResult struct {
	Params     map[string]float64
	FoldScores []float64
	MeanScore  float64
}

// SearchResult is the outcome of RandomizedSearchCV.Fit: the model refit on
// the full training set, its hyperparameters, its in-sample predictions, and
// the per-candidate cross-validation scores.
//
// Predictions are made on the same data the best model was refit on, so any
// metrics derived from them are in-sample (training) metrics.
type SearchResult[E any] struct {
	BestEstimator E
	BestParams    map[string]float64
	BestScore     float64
	Predictions   *mat.VecDense
	Candidates    []CandidateResult
}

// RandomizedSearchCV samples parameter combinations from a grid, scores each
// by mean cross-validated R², refits the best combination on the entire
// training set, and returns the refit model with its in-sample predictions.
type RandomizedSearchCV[E Estimator[E]] struct {
	estimator E
	grid      ParamGrid
	cfg       SearchConfig
}

// NewRandomizedSearchCV creates a search over the given estimator template
// and parameter grid.
func NewRandomizedSearchCV[E Estimator[E]](estimator E, grid ParamGrid, cfg SearchConfig) *RandomizedSearchCV[E] {
	if cfg.NIter <= 0 {
		cfg.NIter = 10
	}
	if cfg.NSplits <= 0 {
		cfg.NSplits = 5
	}
	return &RandomizedSearchCV[E]{
		estimator: estimator,
		grid:      grid,
		cfg:       cfg,
	}
}

// Fit runs the randomized search against the training set.
func (s *RandomizedSearchCV[E]) Fit(X, y mat.Matrix) (*SearchResult[E], error) {
	if err := s.grid.Validate(); err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return nil, errors.NewDimensionError("RandomizedSearchCV.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewValueError("RandomizedSearchCV.Fit", "y must be a column vector")
	}
	if nSamples < s.cfg.NSplits {
		return nil, errors.NewValueError("RandomizedSearchCV.Fit",
			"fewer samples than cross-validation folds")
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	candidates := s.sampleCandidates(rng)
	kf := NewKFold(s.cfg.NSplits, true, seed)
	folds := kf.Split(X, y)

	slog.Debug("starting randomized search",
		slog.Int(log.CandidatesKey, len(candidates)),
		slog.Int(log.FoldsKey, len(folds)),
		slog.Int(log.SamplesKey, nSamples),
	)

	results := make([]CandidateResult, len(candidates))

	// Candidates are independent; evaluate them concurrently the same way
	// fold fits fan out in cross-validation.
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for ci, params := range candidates {
		g.Go(func() error {
			res, err := s.evaluateCandidate(X, y, folds, params)
			if err != nil {
				return err
			}
			results[ci] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Best mean score wins; ties keep the earlier candidate so a fixed seed
	// gives a fixed winner.
	bestIdx := 0
	for i := 1; i < len(results); i++ {
		if results[i].MeanScore > results[bestIdx].MeanScore {
			bestIdx = i
		}
	}
	best := results[bestIdx]

	// Refit the winning combination on the entire training set. There is no
	// held-out split in this stage: downstream metrics computed from these
	// predictions are training-set metrics.
	bestEstimator := s.estimator.Clone()
	if err := bestEstimator.SetParams(best.Params); err != nil {
		return nil, err
	}
	if err := bestEstimator.Fit(X, y); err != nil {
		return nil, errors.Wrap(err, "refit of best estimator failed")
	}

	predMat, err := bestEstimator.Predict(X)
	if err != nil {
		return nil, err
	}
	predictions := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		predictions.SetVec(i, predMat.At(i, 0))
	}

	return &SearchResult[E]{
		BestEstimator: bestEstimator,
		BestParams:    best.Params,
		BestScore:     best.MeanScore,
		Predictions:   predictions,
		Candidates:    results,
	}, nil
}

// sampleCandidates draws parameter combinations without replacement. Grids
// no larger than NIter are evaluated exhaustively in deterministic order.
func (s *RandomizedSearchCV[E]) sampleCandidates(rng *rand.Rand) []map[string]float64 {
	combos := s.grid.Combinations()
	if len(combos) <= s.cfg.NIter {
		return combos
	}
	rng.Shuffle(len(combos), func(i, j int) {
		combos[i], combos[j] = combos[j], combos[i]
	})
	return combos[:s.cfg.NIter]
}

// evaluateCandidate computes the mean cross-validated R² of one parameter
// combination.
func (s *RandomizedSearchCV[E]) evaluateCandidate(X, y mat.Matrix, folds []Fold, params map[string]float64) (CandidateResult, error) {
	res := CandidateResult{
		Params:     params,
		FoldScores: make([]float64, len(folds)),
	}

	for fi, fold := range folds {
		trainX, trainY := extractSubset(X, y, fold.TrainIndices)
		testX, testY := extractSubset(X, y, fold.TestIndices)

		est := s.estimator.Clone()
		if err := est.SetParams(params); err != nil {
			return res, err
		}
		if err := est.Fit(trainX, trainY); err != nil {
			return res, errors.Wrapf(err, "fold %d training failed", fi)
		}

		score, err := est.Score(testX, testY)
		if err != nil {
			return res, errors.Wrapf(err, "fold %d scoring failed", fi)
		}
		if err := errors.CheckScalar("cross_validation_score", score); err != nil {
			return res, err
		}
		res.FoldScores[fi] = score
	}

	var sum float64
	for _, score := range res.FoldScores {
		sum += score
	}
	res.MeanScore = sum / float64(len(res.FoldScores))
	if math.IsNaN(res.MeanScore) {
		return res, errors.NewNumericalInstabilityError("cross_validation_mean", res.FoldScores)
	}
	return res, nil
}
