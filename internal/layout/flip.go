package layout

import (
	"slices"
	"time"

	"github.com/julien-sobczak/sprout/internal/dom"
)

// Rect is the position and size of a node, in abstract units.
type Rect struct {
	X, Y          int
	Width, Height int
}

// PositionMap associates the anchor id of every measured card with its position.
type PositionMap map[string]Rect

// Measurer reads the geometry of the cards once the host laid them out.
type Measurer interface {
	Measure(scope *dom.Node) PositionMap
}

// Transition moves a card from its old position to its new one.
// DX and DY are the offsets to apply first so that the card appears unmoved.
type Transition struct {
	AnchorID string
	DX, DY   int
	Duration time.Duration
}

type Options struct {
	Duration time.Duration
	// Cards that must not be animated (ex: the card whose size changed)
	Exclude []string
}

// Snapshot captures the position of every card inside the scope (First).
func Snapshot(scope *dom.Node, measurer Measurer) PositionMap {
	if scope == nil || !scope.Connected() {
		return PositionMap{}
	}
	return measurer.Measure(scope)
}

// Reconcile compares positions before and after a change (Last) and returns
// the transitions to play (Invert, Play). Cards that didn't move, appeared, or
// disappeared are ignored.
func Reconcile(before, after PositionMap, options Options) []Transition {
	var ids []string
	for id := range after {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var transitions []Transition
	for _, id := range ids {
		if slices.Contains(options.Exclude, id) {
			continue
		}
		first, ok := before[id]
		if !ok {
			continue
		}
		last := after[id]
		dx, dy := first.X-last.X, first.Y-last.Y
		if dx == 0 && dy == 0 {
			continue
		}
		transitions = append(transitions, Transition{
			AnchorID: id,
			DX:       dx,
			DY:       dy,
			Duration: options.Duration,
		})
	}
	return transitions
}
