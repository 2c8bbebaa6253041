// Package config loads the hyperparameter-grid document. The document is
// YAML keyed by model family name, each family mapping hyperparameter names
// to candidate values:
//
//	elasticnet:
//	  alpha: [0.1, 1.0]
//	  l1_ratio: [0.2, 0.8]
//
// No schema is enforced; a missing family section surfaces as a KeyError at
// the lookup site.
package config

import (
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mlstack/entrain/modelselection"
	"github.com/mlstack/entrain/pkg/errors"
)

// Params holds the candidate grids of every model family in the document.
type Params map[string]modelselection.ParamGrid

// Load reads and parses the hyperparameter document at path.
func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: cannot read %s", path)
	}

	var params Params
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, errors.Wrapf(err, "config: cannot parse %s", path)
	}

	return params, nil
}

// Grid returns the candidate grid for the given model family.
func (p Params) Grid(family string) (modelselection.ParamGrid, error) {
	grid, ok := p[family]
	if !ok {
		return nil, errors.NewKeyError("config.Grid", family)
	}
	return grid, nil
}

// String renders the document for console output, families and parameters
// in sorted order.
func (p Params) String() string {
	families := make([]string, 0, len(p))
	for family := range p {
		families = append(families, family)
	}
	sort.Strings(families)

	var b strings.Builder
	for _, family := range families {
		b.WriteString(family)
		b.WriteString(":\n")

		names := make([]string, 0, len(p[family]))
		for name := range p[family] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			out, _ := yaml.Marshal(map[string][]float64{name: p[family][name]})
			b.WriteString("  ")
			b.WriteString(strings.TrimSpace(string(out)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
