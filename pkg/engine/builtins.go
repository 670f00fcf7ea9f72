package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/plumb/pkg/geom"
	"github.com/chazu/plumb/pkg/random"
	"github.com/chazu/plumb/pkg/solid"
	"github.com/chazu/plumb/pkg/xform"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms plumb Lisp source code before passing it to
// zygomys. It performs three transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: is-parallel -> is_parallel
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
//  3. Line comments: ; and ;; become //, which is what zygomys expects.
//
// All transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, kwPrefix...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Only a hyphen between identifier characters is kebab-case; anything
		// else is the minus operator or a negative literal.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Trailing keyword with no value is a flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

// argName names positional argument i the way the builtin docs do: a, b, c.
func argName(i int) string {
	return string(rune('a' + i))
}

func wantArgs(fn string, args []zygo.Sexp, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s requires exactly %d arguments, got %d", fn, n, len(args))
	}
	return nil
}

// vectors extracts n vector arguments that must all share one dimension.
// Exactly one of the returned slices is non-nil on success.
func vectors(fn string, args []zygo.Sexp, n int) ([]geom.Vec2, []geom.Vec3, error) {
	if err := wantArgs(fn, args, n); err != nil {
		return nil, nil, err
	}
	switch args[0].(type) {
	case *sexpVec2:
		out := make([]geom.Vec2, n)
		for i, a := range args {
			v, err := toVec2(a)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %s: %w", fn, argName(i), err)
			}
			out[i] = v
		}
		return out, nil, nil
	case *sexpVec3:
		out := make([]geom.Vec3, n)
		for i, a := range args {
			v, err := toVec3(a)
			if err != nil {
				return nil, nil, fmt.Errorf("%s: %s: %w", fn, argName(i), err)
			}
			out[i] = v
		}
		return nil, out, nil
	}
	return nil, nil, fmt.Errorf("%s: a: expected vector, got %s", fn, describe(args[0]))
}

// vec2Args extracts n vec2 arguments.
func vec2Args(fn string, args []zygo.Sexp, n int) ([]geom.Vec2, error) {
	if err := wantArgs(fn, args, n); err != nil {
		return nil, err
	}
	out := make([]geom.Vec2, n)
	for i, a := range args {
		v, err := toVec2(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, argName(i), err)
		}
		out[i] = v
	}
	return out, nil
}

// vec3Args extracts n vec3 arguments.
func vec3Args(fn string, args []zygo.Sexp, n int) ([]geom.Vec3, error) {
	if err := wantArgs(fn, args, n); err != nil {
		return nil, err
	}
	out := make([]geom.Vec3, n)
	for i, a := range args {
		v, err := toVec3(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, argName(i), err)
		}
		out[i] = v
	}
	return out, nil
}

func floatArgs(fn string, args []zygo.Sexp, names ...string) ([]float64, error) {
	if err := wantArgs(fn, args, len(names)); err != nil {
		return nil, err
	}
	out := make([]float64, len(names))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
		out[i] = f
	}
	return out, nil
}

// vectorFunc registers a builtin over n same-dimension vectors whose Vec2
// and Vec3 forms share a result type.
func vectorFunc(
	env *zygo.Zlisp,
	fn string,
	n int,
	f2 func([]geom.Vec2) zygo.Sexp,
	f3 func([]geom.Vec3) zygo.Sexp,
) {
	env.AddFunction(identifier(fn), func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v2s, v3s, err := vectors(fn, args, n)
		if err != nil {
			return zygo.SexpNull, err
		}
		if v2s != nil {
			return f2(v2s), nil
		}
		return f3(v3s), nil
	})
}

// identifier is the name zygomys sees for a kebab-case builtin after
// preprocessing.
func identifier(fn string) string {
	return strings.ReplaceAll(fn, "-", "_")
}

// evalState is the per-evaluation state the builtins close over. Nothing in
// it is shared between evaluations.
type evalState struct {
	rng         random.Source
	parallelTol float64
	maxParts    int
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the kernel builtins into a zygomys environment.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens and kebab-case names are recognizable.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	registerVectorBuiltins(env, st)
	registerTransformBuiltins(env)
	registerRandomBuiltins(env, st)
	registerSolidBuiltins(env)
}

func registerVectorBuiltins(env *zygo.Zlisp, st *evalState) {

	// -----------------------------------------------------------------------
	// (vec2 1 2) (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("vec2", args, "x", "y")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec2{vec: geom.Vec2{X: f[0], Y: f[1]}}, nil
	})
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("vec3", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: geom.Vec3{X: f[0], Y: f[1], Z: f[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (dot a b) (abs-sq v) (mult a b) over vec2 or vec3
	// -----------------------------------------------------------------------
	vectorFunc(env, "dot", 2,
		func(v []geom.Vec2) zygo.Sexp { return sexpFloat(geom.Dot(v[0], v[1])) },
		func(v []geom.Vec3) zygo.Sexp { return sexpFloat(geom.Dot(v[0], v[1])) })
	vectorFunc(env, "abs-sq", 1,
		func(v []geom.Vec2) zygo.Sexp { return sexpFloat(geom.AbsSq(v[0])) },
		func(v []geom.Vec3) zygo.Sexp { return sexpFloat(geom.AbsSq(v[0])) })
	vectorFunc(env, "mult", 2,
		func(v []geom.Vec2) zygo.Sexp { return &sexpVec2{vec: geom.Mult(v[0], v[1])} },
		func(v []geom.Vec3) zygo.Sexp { return &sexpVec3{vec: geom.Mult(v[0], v[1])} })
	vectorFunc(env, "normalize", 1,
		func(v []geom.Vec2) zygo.Sexp { return &sexpVec2{vec: v[0].Normalize()} },
		func(v []geom.Vec3) zygo.Sexp { return &sexpVec3{vec: v[0].Normalize()} })

	// -----------------------------------------------------------------------
	// (lerp a b 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("lerp", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("lerp", args, 3); err != nil {
			return zygo.SexpNull, err
		}
		t, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("lerp: t: %w", err)
		}
		v2s, v3s, err := vectors("lerp", args[:2], 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		if v2s != nil {
			return &sexpVec2{vec: geom.Lerp(v2s[0], v2s[1], t)}, nil
		}
		return &sexpVec3{vec: geom.Lerp(v3s[0], v3s[1], t)}, nil
	})

	// -----------------------------------------------------------------------
	// (det a b) on vec2, (cross a b) on vec3
	// -----------------------------------------------------------------------
	env.AddFunction("det", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec2Args("det", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpFloat(geom.Det(v[0], v[1])), nil
	})
	env.AddFunction("cross", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec3Args("cross", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: geom.Cross(v[0], v[1])}, nil
	})

	// -----------------------------------------------------------------------
	// (abs -3) => 3 on numbers, (abs (vec2 3 4)) => 5 on vectors
	// -----------------------------------------------------------------------
	env.AddFunction("abs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("abs", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		switch v := args[0].(type) {
		case *zygo.SexpInt:
			if v.Val < 0 {
				return sexpInt(-v.Val), nil
			}
			return sexpInt(v.Val), nil
		case *zygo.SexpFloat:
			return sexpFloat(math.Abs(v.Val)), nil
		}
		v2s, v3s, err := vectors("abs", args, 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("abs: x: expected number or vector, got %s", describe(args[0]))
		}
		if v2s != nil {
			return sexpFloat(geom.Abs(v2s[0])), nil
		}
		return sexpFloat(geom.Abs(v3s[0])), nil
	})

	// -----------------------------------------------------------------------
	// (sqr 3) => 9, (sqr 1.5) => 2.25
	// -----------------------------------------------------------------------
	env.AddFunction("sqr", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("sqr", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		switch v := args[0].(type) {
		case *zygo.SexpInt:
			return sexpInt(geom.Sqr(v.Val)), nil
		case *zygo.SexpFloat:
			return sexpFloat(geom.Sqr(v.Val)), nil
		}
		return zygo.SexpNull, fmt.Errorf("sqr: x: expected number, got %s", describe(args[0]))
	})

	// -----------------------------------------------------------------------
	// (normal a b c) triangle normal, (perp a b) horizontal perpendicular
	// -----------------------------------------------------------------------
	env.AddFunction("normal", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec3Args("normal", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: geom.Normal(v[0], v[1], v[2])}, nil
	})
	env.AddFunction("perp", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec3Args("perp", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: geom.Perp(v[0], v[1])}, nil
	})

	// -----------------------------------------------------------------------
	// Predicates
	// -----------------------------------------------------------------------
	vectorFunc(env, "is-orthogonal", 2,
		func(v []geom.Vec2) zygo.Sexp { return sexpBool(geom.IsOrthogonal(v[0], v[1])) },
		func(v []geom.Vec3) zygo.Sexp { return sexpBool(geom.IsOrthogonal(v[0], v[1])) })

	// is-parallel uses the exact comparison unless a tolerance is configured.
	tol := st.parallelTol
	vectorFunc(env, "is-parallel", 2,
		func(v []geom.Vec2) zygo.Sexp {
			if tol > 0 {
				return sexpBool(geom.IsParallelTol(v[0], v[1], tol))
			}
			return sexpBool(geom.IsParallel(v[0], v[1]))
		},
		func(v []geom.Vec3) zygo.Sexp {
			if tol > 0 {
				return sexpBool(geom.IsParallelTol(v[0], v[1], tol))
			}
			return sexpBool(geom.IsParallel(v[0], v[1]))
		})

	vectorFunc(env, "is-between", 3,
		func(v []geom.Vec2) zygo.Sexp { return sexpBool(geom.IsBetween(v[0], v[1], v[2])) },
		func(v []geom.Vec3) zygo.Sexp { return sexpBool(geom.IsBetween(v[0], v[1], v[2])) })

	env.AddFunction("left_of", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec2Args("left-of", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpFloat(geom.LeftOf(v[0], v[1], v[2])), nil
	})

	// -----------------------------------------------------------------------
	// (dist-sq-segment a b c) squared distance from c to segment a-b
	// -----------------------------------------------------------------------
	vectorFunc(env, "dist-sq-segment", 3,
		func(v []geom.Vec2) zygo.Sexp { return sexpFloat(geom.DistSqPointLineSegment(v[0], v[1], v[2])) },
		func(v []geom.Vec3) zygo.Sexp { return sexpFloat(geom.DistSqPointLineSegment(v[0], v[1], v[2])) })

	// -----------------------------------------------------------------------
	// (circle (vec2 0 0) 2)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("circle", args, 2); err != nil {
			return zygo.SexpNull, err
		}
		center, err := toVec2(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: center: %w", err)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
		}
		if r < 0 {
			return zygo.SexpNull, fmt.Errorf("circle: radius: must not be negative, got %g", r)
		}
		return &sexpCircle{c: geom.Circle{Center: center, Radius: r}}, nil
	})

	env.AddFunction("circle_intersects", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := circlePair("circle-intersects", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpBool(geom.CircleIntersects(a, b)), nil
	})

	// -----------------------------------------------------------------------
	// (circle-intersection a b) => (p1 p2), or () when there is no answer
	// -----------------------------------------------------------------------
	env.AddFunction("circle_intersection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := circlePair("circle-intersection", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		p1, p2, ok := geom.CircleIntersection(a, b)
		if !ok {
			return zygo.SexpNull, nil
		}
		return zygo.MakeList([]zygo.Sexp{&sexpVec2{vec: p1}, &sexpVec2{vec: p2}}), nil
	})
}

func circlePair(fn string, args []zygo.Sexp) (geom.Circle, geom.Circle, error) {
	if err := wantArgs(fn, args, 2); err != nil {
		return geom.Circle{}, geom.Circle{}, err
	}
	a, err := toCircle(args[0])
	if err != nil {
		return geom.Circle{}, geom.Circle{}, fmt.Errorf("%s: a: %w", fn, err)
	}
	b, err := toCircle(args[1])
	if err != nil {
		return geom.Circle{}, geom.Circle{}, fmt.Errorf("%s: b: %w", fn, err)
	}
	return a, b, nil
}

func registerTransformBuiltins(env *zygo.Zlisp) {

	// -----------------------------------------------------------------------
	// (translation-matrix (vec3 1 2 3))
	// -----------------------------------------------------------------------
	env.AddFunction("translation_matrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec3Args("translation-matrix", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpMat4{m: xform.TranslationMatrix(v[0])}, nil
	})

	// -----------------------------------------------------------------------
	// (euler (vec3 0 90 0)) (look-rotation forward up)
	// -----------------------------------------------------------------------
	env.AddFunction("euler", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec3Args("euler", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpQuat{q: xform.Euler(v[0])}, nil
	})
	env.AddFunction("look_rotation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec3Args("look-rotation", args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpQuat{q: xform.LookRotation(v[0], v[1])}, nil
	})

	// -----------------------------------------------------------------------
	// (trs (vec3 1 2 3) (euler (vec3 0 90 0)) (vec3 1 1 1))
	// The rotation may also be given directly as a vec3 of Euler angles.
	// -----------------------------------------------------------------------
	env.AddFunction("trs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("trs", args, 3); err != nil {
			return zygo.SexpNull, err
		}
		t, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trs: translation: %w", err)
		}
		r, err := toRotation(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trs: rotation: %w", err)
		}
		s, err := toVec3(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trs: scale: %w", err)
		}
		return &sexpMat4{m: xform.TRS(t, r, s)}, nil
	})

	// -----------------------------------------------------------------------
	// (extract-translation m) (extract-rotation m) (extract-scale m)
	// (decompose m) => (translation rotation scale)
	// -----------------------------------------------------------------------
	mat := func(fn string, args []zygo.Sexp) (xform.Mat4, error) {
		if err := wantArgs(fn, args, 1); err != nil {
			return xform.Mat4{}, err
		}
		m, err := toMat4(args[0])
		if err != nil {
			return xform.Mat4{}, fmt.Errorf("%s: m: %w", fn, err)
		}
		return m, nil
	}
	env.AddFunction("extract_translation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := mat("extract-translation", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: xform.ExtractTranslation(m)}, nil
	})
	env.AddFunction("extract_rotation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := mat("extract-rotation", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpQuat{q: xform.ExtractRotation(m)}, nil
	})
	env.AddFunction("extract_scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := mat("extract-scale", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: xform.ExtractScale(m)}, nil
	})
	env.AddFunction("decompose", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		m, err := mat("decompose", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		t, r, s := xform.Decompose(m)
		return zygo.MakeList([]zygo.Sexp{&sexpVec3{vec: t}, &sexpQuat{q: r}, &sexpVec3{vec: s}}), nil
	})

	// -----------------------------------------------------------------------
	// (transform-point m p)
	// (rotate-around-pivot point pivot rotation-or-euler)
	// -----------------------------------------------------------------------
	env.AddFunction("transform_point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("transform-point", args, 2); err != nil {
			return zygo.SexpNull, err
		}
		m, err := toMat4(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform-point: m: %w", err)
		}
		p, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform-point: p: %w", err)
		}
		return &sexpVec3{vec: xform.TransformPoint(m, p)}, nil
	})
	env.AddFunction("rotate_around_pivot", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("rotate-around-pivot", args, 3); err != nil {
			return zygo.SexpNull, err
		}
		v, err := vec3Args("rotate-around-pivot", args[:2], 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		q, err := toRotation(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate-around-pivot: rotation: %w", err)
		}
		return &sexpVec3{vec: xform.RotateAroundPivot(v[0], v[1], q)}, nil
	})
}

func registerRandomBuiltins(env *zygo.Zlisp, st *evalState) {

	// -----------------------------------------------------------------------
	// (rand 10) mirrored by default, (rand 10 :mirror false)
	// -----------------------------------------------------------------------
	env.AddFunction("rand", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("rand requires a range argument")
		}
		rng, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rand: range: %w", err)
		}
		mirror := true
		if v, ok := pa.kw["mirror"]; ok {
			mirror, err = toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("rand: mirror: %w", err)
			}
		}
		return sexpFloat(random.Rand(st.rng, rng, mirror)), nil
	})

	env.AddFunction("rand_range", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("rand-range", args, "min", "max")
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpFloat(random.RandRange(st.rng, f[0], f[1])), nil
	})

	env.AddFunction("rand_index", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("rand-index", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		n, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rand-index: n: %w", err)
		}
		return sexpInt(int64(random.Index(st.rng, n))), nil
	})

	// -----------------------------------------------------------------------
	// (distribute-random 100 4) (distribute-halves 100 3) => (50 25 25)
	// -----------------------------------------------------------------------
	distribute := func(fn string, args []zygo.Sexp) (int, int, error) {
		if err := wantArgs(fn, args, 2); err != nil {
			return 0, 0, err
		}
		total, err := toInt(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("%s: total: %w", fn, err)
		}
		parts, err := toInt(args[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%s: parts: %w", fn, err)
		}
		if parts < 1 {
			return 0, 0, fmt.Errorf("%s: parts: must be at least 1, got %d", fn, parts)
		}
		if parts > st.maxParts {
			return 0, 0, fmt.Errorf("%s: parts: must be at most %d, got %d", fn, st.maxParts, parts)
		}
		return total, parts, nil
	}
	env.AddFunction("distribute_random", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		total, parts, err := distribute("distribute-random", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpInts(random.DistributeAmountRandom(st.rng, total, parts)), nil
	})
	env.AddFunction("distribute_halves", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		total, parts, err := distribute("distribute-halves", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpInts(random.DistributeAmountHalves(total, parts)), nil
	})
}

func registerSolidBuiltins(env *zygo.Zlisp) {

	// -----------------------------------------------------------------------
	// (box (vec3 100 50 25)) min corner at the origin, (sphere 5)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := vec3Args("box", args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := solid.Box(v[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: s}, nil
	})
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		f, err := floatArgs("sphere", args, "radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		s, err := solid.Sphere(f[0])
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: s}, nil
	})

	// -----------------------------------------------------------------------
	// (place solid (trs ...))
	// -----------------------------------------------------------------------
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("place", args, 2); err != nil {
			return zygo.SexpNull, err
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: solid: %w", err)
		}
		m, err := toMat4(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: m: %w", err)
		}
		return &sexpSolid{s: solid.Place(s, m)}, nil
	})

	// (translate solid (vec3 10 0 0))
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("translate", args, 2); err != nil {
			return zygo.SexpNull, err
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: solid: %w", err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: offset: %w", err)
		}
		return &sexpSolid{s: solid.Translate(s, v)}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b ...) (difference a b) (intersection a b)
	// -----------------------------------------------------------------------
	env.AddFunction("union", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("union requires at least one solid")
		}
		solids := make([]*solid.Solid, len(args))
		for i, a := range args {
			s, err := toSolid(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("union: solid %d: %w", i, err)
			}
			solids[i] = s
		}
		return &sexpSolid{s: solid.Union(solids...)}, nil
	})
	binary := func(fn string, op func(a, b *solid.Solid) *solid.Solid) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if err := wantArgs(fn, args, 2); err != nil {
				return zygo.SexpNull, err
			}
			a, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: a: %w", fn, err)
			}
			b, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: b: %w", fn, err)
			}
			return &sexpSolid{s: op(a, b)}, nil
		}
	}
	env.AddFunction("difference", binary("difference", solid.Difference))
	env.AddFunction("intersection", binary("intersection", solid.Intersection))

	// -----------------------------------------------------------------------
	// (bounds solid) => (min max), (distance solid p)
	// -----------------------------------------------------------------------
	env.AddFunction("bounds", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("bounds", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bounds: solid: %w", err)
		}
		min, max := s.Bounds()
		return zygo.MakeList([]zygo.Sexp{&sexpVec3{vec: min}, &sexpVec3{vec: max}}), nil
	})
	env.AddFunction("distance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("distance", args, 2); err != nil {
			return zygo.SexpNull, err
		}
		s, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: solid: %w", err)
		}
		p, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("distance: p: %w", err)
		}
		return sexpFloat(s.Distance(p)), nil
	})
}
