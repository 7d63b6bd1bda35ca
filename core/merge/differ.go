package merge

import (
	"fmt"
	"sync"

	"asset-diff/core/tree"

	"go.uber.org/zap"
)

// Option configures a Differ.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	removals bool
}

// WithLogger sets the logger used for debug output of the engine.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRemovals reports list items dropped by one side. Each removed base item
// becomes a node holding the base item and the unchanged side, tagged with the
// side that dropped it. By default only contributed items are reported.
func WithRemovals() Option {
	return func(o *options) {
		o.removals = true
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Differ holds three input trees and caches the merge tree computed from them.
// It is safe for concurrent use.
type Differ struct {
	base  *tree.Node
	side1 *tree.Node
	side2 *tree.Node
	opts  options

	mu       sync.Mutex
	computed *Node
}

// NewDiffer creates a Differ for the given base and sides. Any of them may be nil.
func NewDiffer(base, side1, side2 *tree.Node, opts ...Option) *Differ {
	return &Differ{
		base:  base,
		side1: side1,
		side2: side2,
		opts:  buildOptions(opts),
	}
}

// Base returns the base tree.
func (d *Differ) Base() *tree.Node { return d.base }

// Side1 returns the first derived tree.
func (d *Differ) Side1() *tree.Node { return d.side1 }

// Side2 returns the second derived tree.
func (d *Differ) Side2() *tree.Node { return d.side2 }

// Compute returns the merge tree. The result is cached; force discards the
// cached tree and computes a new one.
func (d *Differ) Compute(force bool) (*Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.computed != nil && !force {
		return d.computed, nil
	}

	root, err := newEngine(d.opts).diffNode(d.base, d.side1, d.side2)
	if err != nil {
		return nil, err
	}
	d.computed = root
	return root, nil
}

// Reset drops the cached merge tree.
func (d *Differ) Reset() {
	d.mu.Lock()
	d.computed = nil
	d.mu.Unlock()
}

// Compute diffs three trees in one shot without caching.
func Compute(base, side1, side2 *tree.Node, opts ...Option) (*Node, error) {
	return newEngine(buildOptions(opts)).diffNode(base, side1, side2)
}

// DiffValues extracts trees from three Go values and diffs them.
func DiffValues(base, side1, side2 any, opts ...Option) (*Node, error) {
	var nodes [3]*tree.Node
	for i, v := range [...]any{base, side1, side2} {
		n, err := tree.FromValue(v)
		if err != nil {
			return nil, fmt.Errorf("extract side %d: %w", i, err)
		}
		nodes[i] = n
	}
	return Compute(nodes[0], nodes[1], nodes[2], opts...)
}
