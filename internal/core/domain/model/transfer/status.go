package transfer

import (
	"fmt"
	"slices"
	"strings"

	"transferflow/internal/pkg/errs"
)

// Status is the lifecycle state of a transfer order.
//
// State transitions:
//
//	Draft ──submit──> PendingApproval ──approve──> Approved ──start──> InTransit
//	                        │                                            │
//	                        └──reject──> Rejected          receive ──> PartialReceived
//	                                                                     │
//	                                  InTransit / PartialReceived ──complete──> Completed
//
//	any non-terminal ──cancel──> Cancelled
//
// Completed, Rejected and Cancelled are terminal.
type Status int

const (
	// UnknownStatus catches uninitialized values.
	UnknownStatus Status = iota
	Draft
	PendingApproval
	Approved
	Rejected
	InTransit
	PartialReceived
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:   "UNKNOWN",
		Draft:           "DRAFT",
		PendingApproval: "PENDING_APPROVAL",
		Approved:        "APPROVED",
		Rejected:        "REJECTED",
		InTransit:       "IN_TRANSIT",
		PartialReceived: "PARTIAL_RECEIVED",
		Completed:       "COMPLETED",
		Cancelled:       "CANCELLED",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Draft, PendingApproval, Approved, Rejected, InTransit, PartialReceived, Completed, Cancelled}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus accepts the String form, case-insensitively.
func ParseStatus(s string) (Status, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range AllStatuses() {
		if status.String() == want {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Rejected || s == Cancelled
}

// IsEditable reports whether the order header and items may still be changed.
func (s Status) IsEditable() bool {
	return s == Draft
}

// HasReceipts reports whether line items may carry actual and received quantities.
func (s Status) HasReceipts() bool {
	return s == PartialReceived || s == Completed
}

type transitionRule struct {
	from []Status
	to   Status
}

// getTransitionRules is the single allowed-transition table of the workflow.
func getTransitionRules() map[Action]transitionRule {
	nonTerminal := make([]Status, 0, len(AllStatuses()))
	for _, s := range AllStatuses() {
		if !s.IsTerminal() {
			nonTerminal = append(nonTerminal, s)
		}
	}

	return map[Action]transitionRule{
		Submit:   {from: []Status{Draft}, to: PendingApproval},
		Approve:  {from: []Status{PendingApproval}, to: Approved},
		Reject:   {from: []Status{PendingApproval}, to: Rejected},
		Start:    {from: []Status{Approved}, to: InTransit},
		Receive:  {from: []Status{InTransit, PartialReceived}, to: PartialReceived},
		Complete: {from: []Status{InTransit, PartialReceived}, to: Completed},
		Cancel:   {from: nonTerminal, to: Cancelled},
	}
}

// Apply resolves action against the transition table.
//
// Returns:
//   - (target, false, nil) when the transition is allowed
//   - (s, true, nil) when s already is the terminal target of action; nothing must change
//   - (UnknownStatus, false, StateConflictError) otherwise
func (s Status) Apply(action Action) (Status, bool, error) {
	rule, ok := getTransitionRules()[action]
	if !ok {
		return UnknownStatus, false, errs.NewValueIsInvalidErrorWithCause(
			"action is invalid", fmt.Errorf("%d is not a valid action", action))
	}

	if slices.Contains(rule.from, s) {
		return rule.to, false, nil
	}

	if s == rule.to && rule.to.IsTerminal() {
		return s, true, nil
	}

	return UnknownStatus, false, errs.NewStateConflictError("status", "", s.String(), action.String())
}

// AllowedActions lists the actions that would change s.
func (s Status) AllowedActions() []Action {
	actions := make([]Action, 0)
	for _, a := range AllActions() {
		if rule := getTransitionRules()[a]; slices.Contains(rule.from, s) {
			actions = append(actions, a)
		}
	}
	return actions
}
