package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/neomorfeo/siteadmin/internal/domain"
)

// Compile-time checks: both lifecycles are served by Validator.
var (
	_ domain.TransitionValidator[domain.PageStatus, domain.PageEvent] = (*Validator[domain.PageStatus, domain.PageEvent])(nil)
	_ domain.TransitionValidator[domain.LeadStatus, domain.LeadEvent] = (*Validator[domain.LeadStatus, domain.LeadEvent])(nil)
)

// buildEvents converts a transition table into looplab/fsm EventDesc format.
// Transitions sharing an event and destination are consolidated into one EventDesc
// with several source states.
func buildEvents[S ~string, E ~string](transitions []domain.Transition[S, E]) []loopfsm.EventDesc {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0)

	for _, t := range transitions {
		k := key{event: string(t.Event), dst: string(t.Dst)}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], string(t.Src))
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		out = append(out, loopfsm.EventDesc{
			Name: k.event,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}
	return out
}

// Validator implements domain.TransitionValidator using looplab/fsm.
// It creates a short-lived FSM per Apply call, initialized with the record's
// current state, because looplab/fsm tracks the current state internally.
type Validator[S ~string, E ~string] struct {
	events []loopfsm.EventDesc
}

// New creates a validator for the given transition table.
func New[S ~string, E ~string](transitions []domain.Transition[S, E]) *Validator[S, E] {
	return &Validator[S, E]{events: buildEvents(transitions)}
}

// NewPublication creates the validator for the page publication lifecycle.
func NewPublication() *Validator[domain.PageStatus, domain.PageEvent] {
	return New(domain.PageTransitions)
}

// NewFunnel creates the validator for the lead funnel.
func NewFunnel() *Validator[domain.LeadStatus, domain.LeadEvent] {
	return New(domain.LeadTransitions)
}

// Apply checks if the given event is valid from the current status and returns the
// destination status. Returns a domain.TransitionError if the transition is not allowed.
func (v *Validator[S, E]) Apply(ctx context.Context, current S, event E) (S, error) {
	machine := loopfsm.NewFSM(string(current), v.events, nil)

	if err := machine.Event(ctx, string(event)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) || errors.As(err, &noTransition) {
			return "", &domain.TransitionError{
				Event:   string(event),
				Current: string(current),
			}
		}
		return "", err
	}

	return S(machine.Current()), nil
}
