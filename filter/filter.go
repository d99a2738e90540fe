package filter

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
)

// DefaultCacheSize is the number of compiled expressions Compile keeps
const DefaultCacheSize = 64

// Filter is a compiled boolean expression evaluated against a field map
type Filter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// CompilerOption configures a Compiler
type CompilerOption func(*Compiler)

// WithCache keeps up to size compiled filters. A size of 0 disables caching.
func WithCache(size int) CompilerOption {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Filter](size)
		} else {
			c.cache = nil
		}
	}
}

// WithFunctions adds helper functions available to expressions
func WithFunctions(funcs map[string]any) CompilerOption {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler compiles expressions into filters
type Compiler struct {
	helpers map[string]any
	cache   *lruCache[*Filter]
}

// NewCompiler creates a Compiler with the string helpers registered
func NewCompiler(opts ...CompilerOption) *Compiler {
	c := &Compiler{helpers: helperFunctions()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCompiler = NewCompiler(WithCache(DefaultCacheSize))

// Compile compiles expression with the shared cached compiler
func Compile(expression string) (*Filter, error) {
	return defaultCompiler.Compile(expression)
}

// Compile compiles expression. Field names are resolved when the filter runs,
// so any field of the evaluated item may be referenced.
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helpers),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		position := -1
		var fileErr *file.Error
		if errors.As(err, &fileErr) {
			position = fileErr.Column
		}
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   position,
			Err:        err,
		}
	}

	f := &Filter{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.Put(expression, f)
	}

	return f, nil
}

// CacheSize returns the number of cached filters
func (c *Compiler) CacheSize() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}

// Match evaluates the filter against fields. Fields shadow helpers of the
// same name.
func (f *Filter) Match(fields map[string]any) (bool, error) {
	env := make(map[string]any, len(f.helpers)+len(fields))
	maps.Copy(env, f.helpers)
	maps.Copy(env, fields)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     fmt.Sprintf("expression returned %T, expected bool", result),
		}
	}
	return matched, nil
}

// String returns the expression the filter was compiled from
func (f *Filter) String() string {
	return f.expression
}

// Apply returns the items f matches, in their original order. A nil filter
// matches everything.
func Apply[T any](f *Filter, items []T, fields func(T) map[string]any) ([]T, error) {
	if f == nil {
		return items, nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		matched, err := f.Match(fields(item))
		if err != nil {
			var evalErr *EvaluationError
			if errors.As(err, &evalErr) {
				evalErr.Item = fmt.Sprintf("item %d", i)
			}
			return nil, err
		}
		if matched {
			out = append(out, item)
		}
	}
	return out, nil
}

// helperFunctions are case-insensitive variants of the contains, startsWith
// and endsWith operators.
func helperFunctions() map[string]any {
	return map[string]any{
		"containsFold": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWithFold": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWithFold": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
	}
}
