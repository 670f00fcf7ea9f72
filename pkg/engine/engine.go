// Package engine provides the Lisp query engine for plumb.
// It wraps zygomys in a sandboxed environment with the geometry kernel
// installed as builtins, so kernel expressions can be evaluated at run time.
package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chazu/plumb/pkg/random"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrTimeout is returned when an evaluation exceeds its time limit.
var ErrTimeout = errors.New("engine: evaluation timed out")

// ErrSuperseded is returned when a newer call to Evaluate started before
// this one finished; its result is discarded.
var ErrSuperseded = errors.New("engine: evaluation superseded by newer request")

// sandboxMu serializes sandbox construction. zygomys keeps package-level
// state that is not safe for concurrent sandbox creation.
var sandboxMu sync.Mutex

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine wraps the zygomys interpreter for kernel queries.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment and a fresh random generator.
type Engine struct {
	gen generation
	cfg Config
	log *zap.Logger

	// seedBase offsets generation-based seeds when no seed is configured.
	seedBase uint64
}

// engineSeq keeps the seed bases of engines created within one clock tick
// apart.
var engineSeq atomic.Uint64

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithConfig sets the configuration. It is resolved against the defaults.
func WithConfig(c Config) Option {
	return func(e *Engine) { e.cfg = c }
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log:      zap.NewNop(),
		seedBase: uint64(time.Now().UnixNano()) + engineSeq.Add(1)<<32,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cfg = e.cfg.Resolve()
	return e
}

// Config returns the resolved configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger {
	return e.log
}

// Evaluate takes Lisp source code and returns the value of its last
// expression, converted to a Go value (see SolidBounds for the solid form).
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns value + nil errors + nil error
//   - On parse/eval failure: returns nil value + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (any, []EvalError, error) {
	return e.EvaluateContext(context.Background(), source)
}

// EvaluateContext is Evaluate with a context that can cut the wait short.
func (e *Engine) EvaluateContext(ctx context.Context, source string) (any, []EvalError, error) {
	gen := e.gen.next()
	return e.run(ctx, source, e.seedFor(gen), gen, &e.gen)
}

// seedFor returns the configured seed, or a clock-based seed offset by gen
// when none is configured.
func (e *Engine) seedFor(gen uint64) uint64 {
	if e.cfg.Seed != 0 {
		return e.cfg.Seed
	}
	return e.seedBase + gen
}

// run evaluates source in a goroutine and waits for it. When current is
// non-nil the result is discarded if current moved past gen meanwhile.
func (e *Engine) run(ctx context.Context, source string, seed, gen uint64, current *generation) (any, []EvalError, error) {
	id := uuid.New()
	log := e.log.With(zap.Stringer("eval_id", id), zap.Uint64("generation", gen))
	log.Debug("evaluation started", zap.Uint64("seed", seed), zap.Int("source_len", len(source)))

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("engine: panic during evaluation: %v", r)}
			}
		}()

		v, evalErrs, err := e.evaluate(source, seed)
		ch <- evalResult{value: v, errors: evalErrs, err: err}
	}()

	v, evalErrs, err := waitWithTimeout(ctx, ch, e.cfg.Timeout, gen, current)
	switch {
	case err != nil:
		log.Error("evaluation failed", zap.Error(err))
	case len(evalErrs) > 0:
		log.Debug("evaluation produced errors", zap.Int("count", len(evalErrs)), zap.String("first", evalErrs[0].Error()))
	default:
		log.Debug("evaluation finished")
	}
	return v, evalErrs, err
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string, seed uint64) (any, []EvalError, error) {
	// Empty source is a valid program with no value.
	if strings.TrimSpace(source) == "" {
		return nil, nil, nil
	}

	st := &evalState{
		rng:         random.NewPCG(seed),
		parallelTol: e.cfg.ParallelTolerance,
		maxParts:    e.cfg.MaxParts,
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	sandboxMu.Lock()
	env := zygo.NewZlispSandbox()
	registerBuiltins(env, st)
	sandboxMu.Unlock()
	defer env.Stop()

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}

	res, err := env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}
	return toValue(res), nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, p := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := p.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// No line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
