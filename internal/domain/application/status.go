package application

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusForwarded     Status = "forwarded"
	StatusRejected      Status = "rejected"
	StatusApproved      Status = "approved"
	StatusInfoRequested Status = "info-requested"
)

// Statuses lists every workflow state in display order.
var Statuses = []Status{StatusPending, StatusForwarded, StatusRejected, StatusApproved, StatusInfoRequested}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// statusEvents is the full 5x5 matrix: every status is an event whose
// sources are all statuses. Decisions can be reopened at any time.
var statusEvents = func() fsm.Events {
	src := make([]string, len(Statuses))
	for i, s := range Statuses {
		src[i] = string(s)
	}
	events := make(fsm.Events, 0, len(Statuses))
	for _, s := range Statuses {
		events = append(events, fsm.EventDesc{Name: string(s), Src: src, Dst: string(s)})
	}
	return events
}()

func newStatusMachine(current Status) *fsm.FSM {
	return fsm.NewFSM(string(current), statusEvents, fsm.Callbacks{})
}

// CanTransition reports whether the workflow allows from -> to.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	return newStatusMachine(from).Can(string(to))
}

// Transition runs the workflow from the stored status to the requested one
// and returns the resulting status. Setting the current status again is
// accepted; only the timestamps move.
func Transition(ctx context.Context, from, to Status) (Status, error) {
	if !to.Valid() {
		return from, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}
	if !from.Valid() {
		return from, fmt.Errorf("%w: stored status %q", ErrInvalidStatus, from)
	}
	// looplab/fsm reports self transitions as NoTransitionError
	if from == to {
		return to, nil
	}
	m := newStatusMachine(from)
	if err := m.Event(ctx, string(to)); err != nil {
		return from, fmt.Errorf("%w: %s -> %s: %v", ErrInvalidTransition, from, to, err)
	}
	return Status(m.Current()), nil
}

// TenantMessage is the text shown on the tenant status link and used in
// status notifications.
func TenantMessage(s Status) (message, description string) {
	switch s {
	case StatusApproved:
		return "Congratulations! Your application has been approved.",
			"The property manager will contact you soon with next steps."
	case StatusRejected:
		return "We're sorry, but your application has been declined.",
			"Please contact the property manager for more information."
	case StatusForwarded:
		return "Your application has been forwarded to the property owner for review.",
			"The property owner is reviewing your application and will make a decision soon."
	case StatusInfoRequested:
		return "Additional information has been requested for your application.",
			"Please check your email for details on what additional information is needed."
	default:
		return "Your application is currently under review.",
			"We'll notify you when there's an update on your application status."
	}
}
