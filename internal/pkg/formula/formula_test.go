package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine()
	require.NoError(t, err)
	return e
}

func TestValidate(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		name  string
		expr  string
		valid bool
	}{
		{"simple subtraction", "gross - pension - exemption", true},
		{"parenthesized", "(gross - exemption) * 0.8", true},
		{"all variables", "gross + basic + pensionable + pension + nhf + exemption", true},
		{"empty", "", false},
		{"unknown variable", "gross - bonus", false},
		{"syntax error", "gross -", false},
		{"non-numeric result", "gross > pension", false},
		{"string literal", "'hello'", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			valid, msg := e.Validate(c.expr)
			assert.Equal(t, c.valid, valid, "message: %s", msg)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestValidate_DivisionByZeroOnSampleInput(t *testing.T) {
	e := newTestEngine(t)
	// compiles fine but fails on the sample input
	valid, msg := e.Validate("int(gross) / (int(pension) - int(pension))")
	assert.False(t, valid)
	assert.Contains(t, msg, "sample input")
}

func TestEvaluate(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Evaluate("gross - pension - exemption", map[string]float64{
		"gross":     1800000,
		"pension":   96000,
		"exemption": 560000,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1144000, got, 0.001)
}

func TestEvaluate_MissingVariablesDefaultToZero(t *testing.T) {
	e := newTestEngine(t)

	got, err := e.Evaluate("gross - nhf", map[string]float64{"gross": 100})
	require.NoError(t, err)
	assert.InDelta(t, 100, got, 0.001)
}

func TestEvaluate_CompileErrorSurfaces(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Evaluate("gross ++", nil)
	require.Error(t, err)
}

func TestProgramCacheReuse(t *testing.T) {
	e := newTestEngine(t)
	const expr = "gross * 0.5"

	_, err := e.Evaluate(expr, map[string]float64{"gross": 10})
	require.NoError(t, err)

	cached, ok := e.programs.Load(expr)
	require.True(t, ok)

	_, err = e.Evaluate(expr, map[string]float64{"gross": 20})
	require.NoError(t, err)

	again, _ := e.programs.Load(expr)
	assert.Same(t, cached, again)
}
