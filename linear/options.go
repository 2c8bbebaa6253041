package linear

// ElasticNetOption is a function that configures ElasticNet
type ElasticNetOption func(*ElasticNet)

// WithAlpha sets the overall regularization strength
func WithAlpha(alpha float64) ElasticNetOption {
	return func(en *ElasticNet) {
		en.alpha = alpha
	}
}

// WithL1Ratio sets the L1/L2 mixing ratio
func WithL1Ratio(ratio float64) ElasticNetOption {
	return func(en *ElasticNet) {
		en.l1Ratio = ratio
	}
}

// WithMaxIter sets the maximum number of coordinate descent sweeps
func WithMaxIter(n int) ElasticNetOption {
	return func(en *ElasticNet) {
		en.maxIter = n
	}
}

// WithElasticNetTol sets the convergence tolerance
func WithElasticNetTol(tol float64) ElasticNetOption {
	return func(en *ElasticNet) {
		en.tol = tol
	}
}
