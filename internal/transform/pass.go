// Package transform mutates an ir.Root in a fixed pipeline of passes, per
// spec.md §4.5: TextOptimizer, EntityCollector, PatchFlagMarker,
// SlotFlagMarker, ExpressionProcessor, CacheHandlers, HoistStatic.
//
// spec.md §9 specifies pass composition as a right-leaning enter/exit pair
// and explicitly permits any equivalent that preserves traversal order. Each
// pass here is a value with one Run(root) method instead of a trait-object
// visitor combinator — Go has no generic associated-type machinery to make
// the Rust original's Fold/VisitMut composition worth porting literally, and
// a plain ordered slice of whole-tree passes preserves the same guarantee
// the spec actually requires: every pass completes before the next begins.
package transform

import "github.com/vuec/compiler/internal/ir"

// Pass is one pipeline stage.
type Pass interface {
	Name() string
	Run(root *ir.Root)
}

// Chain runs passes in order over the same root, one full pass at a time.
type Chain struct {
	Passes []Pass
}

func (c Chain) Run(root *ir.Root) {
	for _, p := range c.Passes {
		p.Run(root)
	}
}

// Default builds the standard pipeline, gated by the flags CompileOption
// exposes (prefix_identifier, cache_handlers, hoist_static); cache_handlers
// only takes effect when prefix_identifier is also set, per spec.md §6.
func Default(opt Options) Chain {
	passes := []Pass{
		&TextOptimizer{},
		&EntityCollector{},
		&PatchFlagMarker{},
	}
	passes = append(passes, &SlotFlagMarker{})
	if opt.PrefixIdentifier {
		passes = append(passes, &ExpressionProcessor{NeedPrefix: true})
	}
	if opt.CacheHandlers && opt.PrefixIdentifier {
		passes = append(passes, &CacheHandlers{})
	}
	if opt.HoistStatic {
		passes = append(passes, &HoistStatic{})
	}
	return Chain{Passes: passes}
}

// Options mirrors the subset of CompileOption (spec.md §6) the pipeline
// itself branches on.
type Options struct {
	PrefixIdentifier bool
	CacheHandlers    bool
	HoistStatic      bool
}
