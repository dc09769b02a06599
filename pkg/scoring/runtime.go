// Package scoring builds a Runtime from a parsed profile and scores graph
// edges with it.
//
// A Runtime is built once per profile load: constants are evaluated in
// declaration order and the node-penalty, way-penalty and cost-factor
// expressions are compiled, each with its own slot numbering. After that it is
// read-only and Score may be called from any number of goroutines.
//
// # Example
//
//	rt, err := scoring.New(profile, dict)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	score, err := rt.Score(srcTags, dstTags, wayTags, globals)
package scoring

import (
	"fmt"
	"log/slog"

	"github.com/sandrolain/gomint/pkg/compiler"
	"github.com/sandrolain/gomint/pkg/evaluator"
	"github.com/sandrolain/gomint/pkg/tagdict"
	"github.com/sandrolain/gomint/pkg/types"
)

// Impassable is the score contribution of an expression that evaluates to Invalid.
const Impassable float32 = 500_000.0

// expectScore lists the kinds a top-level expression may produce.
const expectScore = "number|invalid"

// DefaultGlobals are the per-edge globals profiles may reference when no
// WithGlobals option is given.
var DefaultGlobals = []string{"way.popularity-self", "way.popularity-global", "way.length"}

// EdgeScore is the cost assigned to traversing one edge.
type EdgeScore struct {
	Penalty    float32
	CostFactor float32
}

// Runtime is a compiled profile.
type Runtime struct {
	name      string
	constants []types.Value
	names     map[string]int

	wayPenalty  *compiler.Unit
	nodePenalty *compiler.Unit
	costFactor  *compiler.Unit
}

// Options configures runtime construction.
type Options struct {
	// Globals is the whitelist of names resolved per edge through the
	// GlobalLookup passed to Score.
	Globals []string
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// Option configures runtime construction.
type Option func(*Options)

// WithGlobals replaces the whitelist of run-time globals.
func WithGlobals(names ...string) Option {
	return func(opts *Options) {
		opts.Globals = names
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) Option {
	return func(opts *Options) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// New compiles profile against dict.
//
// The first error aborts construction; no partial Runtime is returned.
func New(profile *types.Profile, dict *tagdict.Dict, opts ...Option) (*Runtime, error) {
	options := Options{
		Globals: DefaultGlobals,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	c := compiler.New(dict, options.Globals)
	rt := &Runtime{
		name:  profile.Name,
		names: make(map[string]int, len(profile.Constants)),
	}

	var err error
	if rt.constants, err = rt.evaluateConstants(c, profile.Constants); err != nil {
		return nil, err
	}
	if rt.wayPenalty, err = buildOptional(c, profile.WayPenalty); err != nil {
		return nil, err
	}
	if rt.nodePenalty, err = buildOptional(c, profile.NodePenalty); err != nil {
		return nil, err
	}
	if rt.costFactor, err = buildOptional(c, profile.CostFactor); err != nil {
		return nil, err
	}

	if options.Debug {
		options.Logger.Debug("profile compiled",
			slog.String("profile", rt.name),
			slog.Int("constants", len(rt.constants)),
			slog.Bool("way_penalty", rt.wayPenalty != nil),
			slog.Bool("node_penalty", rt.nodePenalty != nil),
			slog.Bool("cost_factor", rt.costFactor != nil),
		)
	}

	return rt, nil
}

func buildOptional(c *compiler.Compiler, expr types.Expression) (*compiler.Unit, error) {
	if expr == nil {
		return nil, nil
	}
	return c.Build(expr)
}

// evaluateConstants compiles and evaluates each definition in order. A
// definition only sees the constants declared before it.
func (r *Runtime) evaluateConstants(c *compiler.Compiler, defs []types.Definition) ([]types.Value, error) {
	if len(defs) > compiler.MaxConstants {
		extra := defs[compiler.MaxConstants]
		return nil, types.NewError(types.ErrTooManyConstants,
			fmt.Sprintf("too many constants defined (limit %d)", compiler.MaxConstants), extra.Expr.Pos()).
			WithToken(extra.Name)
	}

	consts := make([]types.Value, 0, len(defs))

	for _, def := range defs {
		unit, err := c.Build(def.Expr)
		if err != nil {
			return nil, err
		}

		ctx := evaluator.NewConstantContext(consts, unit.Slots)
		value, err := ctx.Evaluate(unit.Expr)
		if err != nil {
			return nil, types.NewError(types.ErrConstEval,
				fmt.Sprintf("evaluating constant %q", def.Name), def.Expr.Pos()).
				WithToken(def.Name).
				WithCause(err)
		}

		if _, err := c.AddConstant(def.Name); err != nil {
			return nil, err
		}
		r.names[def.Name] = len(consts)
		consts = append(consts, value)
	}

	return consts, nil
}

// Name returns the profile name.
func (r *Runtime) Name() string {
	return r.name
}

// Constants returns a copy of the evaluated constants in declaration order.
func (r *Runtime) Constants() []types.Value {
	out := make([]types.Value, len(r.constants))
	copy(out, r.constants)
	return out
}

// Constant returns the value of the named constant.
func (r *Runtime) Constant(name string) (types.Value, bool) {
	i, ok := r.names[name]
	if !ok {
		return types.Invalid(), false
	}
	return r.constants[i], true
}

// Score computes the cost of traversing the way between two nodes.
//
// The node penalty is evaluated once for each end node and the way penalty
// once for the way; both are added to the penalty. The cost factor is added to
// a base of 1. An expression that evaluates to Invalid contributes Impassable.
func (r *Runtime) Score(sourceNode, targetNode, way tagdict.Source, globals evaluator.GlobalLookup) (EdgeScore, error) {
	var penalty float32
	costFactor := float32(1.0)

	if r.nodePenalty != nil {
		v, err := r.evaluate(r.nodePenalty, sourceNode, globals)
		if err != nil {
			return EdgeScore{}, err
		}
		penalty += v

		if v, err = r.evaluate(r.nodePenalty, targetNode, globals); err != nil {
			return EdgeScore{}, err
		}
		penalty += v
	}

	if r.wayPenalty != nil {
		v, err := r.evaluate(r.wayPenalty, way, globals)
		if err != nil {
			return EdgeScore{}, err
		}
		penalty += v
	}

	if r.costFactor != nil {
		v, err := r.evaluate(r.costFactor, way, globals)
		if err != nil {
			return EdgeScore{}, err
		}
		// Additive: a cost-factor result is an offset from the base of 1.
		costFactor += v
	}

	return EdgeScore{Penalty: penalty, CostFactor: costFactor}, nil
}

func (r *Runtime) evaluate(unit *compiler.Unit, tags tagdict.Source, globals evaluator.GlobalLookup) (float32, error) {
	if tags == nil {
		tags = tagdict.Empty
	}
	ctx := evaluator.NewContext(r.constants, unit.Slots, tags, globals)

	v, err := ctx.Evaluate(unit.Expr)
	if err != nil {
		return 0, err
	}

	if n, ok := v.AsNumber(); ok {
		return n, nil
	}
	if v.IsInvalid() {
		return Impassable, nil
	}
	return 0, types.NewTypeError(v, expectScore)
}
