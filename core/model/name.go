package model

import (
	"reflect"
)

// DisplayName returns the concrete type name of a model instance, e.g.
// "ElasticNet" for *linear.ElasticNet. It has no side effects.
func DisplayName(model interface{}) string {
	t := reflect.TypeOf(model)
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
