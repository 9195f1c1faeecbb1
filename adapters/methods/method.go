package methods

import (
	"lifestat/domain/lifedata"
)

// Method is one analysis method instance. It caches its last successful
// result so that GraphData can be requested after Calculate. A Method is not
// safe for concurrent use; create one per caller.
type Method struct {
	kind Kind
	opts Options
	last *FitResult
}

// New creates a method instance of the given kind.
func New(kind Kind, opts Options) *Method {
	return &Method{kind: kind, opts: opts}
}

// Kind returns the method kind.
func (m *Method) Kind() Kind { return m.kind }

// Run fits the method and caches the result for GraphData. A failure clears
// the cache.
func (m *Method) Run(values []float64, flags []int) (FitResult, error) {
	res, err := Fit(m.kind, values, flags, m.opts)
	if err != nil {
		m.last = nil
		return FitResult{}, err
	}
	m.last = &res
	return res, nil
}

// Calculate runs the method and returns its text report. Failures are
// reported as text starting with "Error: "; use Run for typed errors.
func (m *Method) Calculate(values []float64, flags []int) string {
	res, err := m.Run(values, flags)
	if err != nil {
		m.opts.Logger.Named(string(m.kind)).Debug("calculate failed: %v", err)
		return "Error: " + err.Error()
	}
	return res.Report()
}

// GraphData returns the series of the last successful Calculate, or an empty
// slice when there is none or the method has no graph.
func (m *Method) GraphData() []lifedata.GraphSeries {
	if m.last == nil {
		return []lifedata.GraphSeries{}
	}
	return Plot(*m.last)
}

// Last returns the cached result of the last successful Calculate.
func (m *Method) Last() (FitResult, bool) {
	if m.last == nil {
		return FitResult{}, false
	}
	return *m.last, true
}
