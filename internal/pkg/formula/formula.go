package formula

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types/ref"
)

// Variables every payroll formula may reference, all numeric.
var payrollVariables = []string{
	"gross",
	"basic",
	"pensionable",
	"pension",
	"nhf",
	"exemption",
}

// Engine compiles and evaluates payroll formulas written as CEL expressions
// over the payroll variable set. Compiled programs are cached by expression
// text; the engine is safe for concurrent use.
type Engine struct {
	env      *cel.Env
	programs sync.Map // expr -> cel.Program
}

func NewEngine() (*Engine, error) {
	opts := make([]cel.EnvOption, 0, len(payrollVariables))
	for _, name := range payrollVariables {
		opts = append(opts, cel.Variable(name, cel.DoubleType))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create formula environment: %w", err)
	}
	return &Engine{env: env}, nil
}

func (e *Engine) program(expr string) (cel.Program, error) {
	if cached, ok := e.programs.Load(expr); ok {
		return cached.(cel.Program), nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	if ast.OutputType() != cel.DoubleType && ast.OutputType() != cel.IntType {
		return nil, fmt.Errorf("formula must produce a number, got %s", ast.OutputType())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, err
	}
	e.programs.Store(expr, prg)
	return prg, nil
}

// Validate compiles the expression and runs it against sample inputs.
// It reports a human-readable verdict rather than an error so the
// settings endpoint can surface it directly.
func (e *Engine) Validate(expr string) (bool, string) {
	if expr == "" {
		return false, "formula is empty"
	}
	prg, err := e.program(expr)
	if err != nil {
		return false, err.Error()
	}

	sample := map[string]interface{}{
		"gross":       1800000.0,
		"basic":       1200000.0,
		"pensionable": 1200000.0,
		"pension":     96000.0,
		"nhf":         30000.0,
		"exemption":   560000.0,
	}
	out, _, err := prg.Eval(sample)
	if err != nil {
		return false, fmt.Sprintf("formula failed on sample input: %v", err)
	}
	if _, err := toFloat(out); err != nil {
		return false, err.Error()
	}
	return true, "formula is valid"
}

// Evaluate runs the expression with the given variable values. Missing
// variables default to zero so partial inputs do not fail evaluation.
func (e *Engine) Evaluate(expr string, vars map[string]float64) (float64, error) {
	prg, err := e.program(expr)
	if err != nil {
		return 0, err
	}

	activation := make(map[string]interface{}, len(payrollVariables))
	for _, name := range payrollVariables {
		activation[name] = vars[name]
	}
	out, _, err := prg.Eval(activation)
	if err != nil {
		return 0, fmt.Errorf("evaluate formula: %w", err)
	}
	return toFloat(out)
}

func toFloat(v ref.Val) (float64, error) {
	switch val := v.Value().(type) {
	case float64:
		return val, nil
	case int64:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("formula produced %s, expected a number", v.Type().TypeName())
	}
}
