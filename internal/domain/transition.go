package domain

import (
	"context"
	"maps"
	"slices"
)

// Transition defines a valid state change: an event moves a record from Src to Dst.
type Transition[S ~string, E ~string] struct {
	Event E
	Src   S
	Dst   S
}

// TransitionValidator checks an event against a transition table and returns the
// destination state, or a *TransitionError when the event is not valid from current.
type TransitionValidator[S ~string, E ~string] interface {
	Apply(ctx context.Context, current S, event E) (S, error)
}

// fanIn builds one transition per source for each (event, dst) pair.
func fanIn[S ~string, E ~string](states []S, targets map[E]S) []Transition[S, E] {
	var out []Transition[S, E]
	for _, event := range sortedEvents(targets) {
		dst := targets[event]
		for _, src := range states {
			if src == dst {
				continue
			}
			out = append(out, Transition[S, E]{Event: event, Src: src, Dst: dst})
		}
	}
	return out
}

func sortedEvents[S ~string, E ~string](targets map[E]S) []E {
	return slices.Sorted(maps.Keys(targets))
}
