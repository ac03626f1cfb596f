package targets

import (
	"fmt"
	"sort"
)

var constructors = map[string]func() Target{
	"gaussian":    func() Target { return NewGaussian(1) },
	"correlated":  func() Target { return NewCorrelated() },
	"doublewell":  func() Target { return NewDoubleWell() },
	"banana":      func() Target { return NewBanana() },
	"uniform":     func() Target { return NewUniform(1) },
	"exponential": func() Target { return NewExponential(1) },
	"studentt":    func() Target { return NewStudentT(1) },
}

type validator interface {
	Validate() error
}

// New builds the named target and applies params on top of its defaults.
func New(name string, params map[string]float64) (Target, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTarget, name)
	}
	t := fn()

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := t.SetParam(k, params[k]); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if v, ok := t.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return t, nil
}

// Names lists the registered targets in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
