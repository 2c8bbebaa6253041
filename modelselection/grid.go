package modelselection

import (
	"sort"

	"github.com/mlstack/entrain/pkg/errors"
)

// ParamGrid maps a hyperparameter name to its candidate values.
type ParamGrid map[string][]float64

// Validate checks that the grid has at least one parameter and that every
// parameter has at least one candidate.
func (g ParamGrid) Validate() error {
	if len(g) == 0 {
		return errors.NewValueError("ParamGrid.Validate", "empty parameter grid")
	}
	for name, candidates := range g {
		if len(candidates) == 0 {
			return errors.NewValidationError(name, "no candidate values", candidates)
		}
	}
	return nil
}

// NumCombinations returns the size of the cartesian product of the grid.
func (g ParamGrid) NumCombinations() int {
	total := 1
	for _, candidates := range g {
		total *= len(candidates)
	}
	return total
}

// Combinations enumerates the cartesian product of the grid in a
// deterministic order (parameter names sorted lexicographically).
func (g ParamGrid) Combinations() []map[string]float64 {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	combos := []map[string]float64{{}}
	for _, name := range names {
		next := make([]map[string]float64, 0, len(combos)*len(g[name]))
		for _, combo := range combos {
			for _, value := range g[name] {
				expanded := make(map[string]float64, len(combo)+1)
				for k, v := range combo {
					expanded[k] = v
				}
				expanded[name] = value
				next = append(next, expanded)
			}
		}
		combos = next
	}
	return combos
}
