package anchorid

import "testing"

// UseNext configures a predefined list of ids
func UseNext(t *testing.T, ids ...string) {
	generator = NewSuiteGenerator(ids...)
	t.Cleanup(Reset)
}

// UseFixed configures a fixed id value
func UseFixed(t *testing.T, value ID) {
	generator = NewFixedGenerator(value)
	t.Cleanup(Reset)
}

// UseSequence configures a predefined sequence
func UseSequence(t *testing.T) {
	generator = NewSequenceGenerator()
	t.Cleanup(Reset)
}
