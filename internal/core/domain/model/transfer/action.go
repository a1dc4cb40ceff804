package transfer

import (
	"fmt"
	"strings"

	"transferflow/internal/pkg/errs"
)

// Action names a workflow operation.
type Action int

const (
	UnknownAction Action = iota
	Submit
	Approve
	Reject
	Start
	Receive
	Complete
	Cancel
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		UnknownAction: "unknown",
		Submit:        "submit",
		Approve:       "approve",
		Reject:        "reject",
		Start:         "start",
		Receive:       "receive",
		Complete:      "complete",
		Cancel:        "cancel",
	}
}

func AllActions() []Action {
	return []Action{Submit, Approve, Reject, Start, Receive, Complete, Cancel}
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// ParseAction accepts the String form, case-insensitively.
func ParseAction(s string) (Action, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for _, a := range AllActions() {
		if a.String() == want {
			return a, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%q is not a valid action", s))
}
