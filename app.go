// Package plumb is the application facade over the plumb geometry kernel.
// It evaluates kernel queries written in Lisp and returns JSON-serializable
// results for a frontend.
package plumb

import (
	"fmt"
	"math"

	"github.com/chazu/plumb/pkg/engine"
	"github.com/chazu/plumb/pkg/geom"
	"github.com/chazu/plumb/pkg/xform"
	"go.uber.org/zap"
)

// EvalErrorData is a JSON-serializable evaluation error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the JSON-serializable result of evaluating source code.
type EvalResult struct {
	Value    any             `json:"value"`
	Kind     string          `json:"kind"`
	Printed  string          `json:"printed"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []string        `json:"warnings"`
}

// App holds the engine used for evaluation.
type App struct {
	engine *engine.Engine
}

// NewApp creates a new App.
func NewApp(opts ...engine.Option) *App {
	return &App{engine: engine.NewEngine(opts...)}
}

// NewAppFromConfig creates an App from the YAML configuration at path, with
// a logger at the configured level.
func NewAppFromConfig(path string) (*App, error) {
	cfg, err := engine.ReadConfig(path)
	if err != nil {
		return nil, err
	}
	logger, err := engine.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return NewApp(engine.WithConfig(cfg), engine.WithLogger(logger)), nil
}

// Engine returns the underlying engine.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Evaluate parses and evaluates Lisp source code and returns the value of
// the last expression. Fatal engine failures are reported as errors with no
// line information.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Kind:     "nil",
		Errors:   []EvalErrorData{},
		Warnings: []string{},
	}

	v, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.engine.Logger().Error("evaluate", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    e.Line,
			Col:     e.Col,
			Message: e.Message,
		})
	}
	if len(result.Errors) > 0 {
		return result
	}

	result.Kind = kindOf(v)
	if v != nil {
		result.Printed = fmt.Sprint(v)
	}
	// encoding/json rejects NaN and Inf.
	if !finite(v) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s value is not finite; printed form only", result.Kind))
		return result
	}
	result.Value = v
	return result
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case int64:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case string:
		return "string"
	case geom.Vec2:
		return "vec2"
	case geom.Vec3:
		return "vec3"
	case xform.Quat:
		return "quat"
	case xform.Mat4:
		return "mat4"
	case geom.Circle:
		return "circle"
	case engine.SolidBounds:
		return "solid"
	case []any:
		return "list"
	}
	return "unknown"
}

func finite(v any) bool {
	ok := func(fs ...float64) bool {
		for _, f := range fs {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
		return true
	}
	switch v := v.(type) {
	case float64:
		return ok(v)
	case geom.Vec2:
		return ok(v.X, v.Y)
	case geom.Vec3:
		return ok(v.X, v.Y, v.Z)
	case xform.Quat:
		return ok(v.W, v.V[0], v.V[1], v.V[2])
	case xform.Mat4:
		return ok(v[:]...)
	case geom.Circle:
		return ok(v.Center.X, v.Center.Y, v.Radius)
	case engine.SolidBounds:
		return ok(v.Min.X, v.Min.Y, v.Min.Z, v.Max.X, v.Max.Y, v.Max.Z)
	case []any:
		for _, item := range v {
			if !finite(item) {
				return false
			}
		}
	}
	return true
}
