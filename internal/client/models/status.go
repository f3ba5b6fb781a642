package models

import "fmt"

// Status is the moderation state of a testimonial.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists every moderation state.
var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// ParseStatus accepts the wire value of a status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", v)}
	}
	return s, nil
}

// Action is a moderation action a view may offer for a testimonial.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionDelete  Action = "delete"
)

// Actions returns the moderation actions offered for t: approve unless already
// approved, reject unless already rejected, delete always.
func Actions(t Testimonial) []Action {
	var out []Action
	switch t.Status {
	case StatusPending:
		out = append(out, ActionApprove, ActionReject)
	case StatusApproved:
		out = append(out, ActionReject)
	case StatusRejected:
		out = append(out, ActionApprove)
	default:
		// unknown state from the server: allow moving it to either
		out = append(out, ActionApprove, ActionReject)
	}
	return append(out, ActionDelete)
}

// Target is the status an approve/reject action moves a testimonial to.
func (a Action) Target() (Status, bool) {
	switch a {
	case ActionApprove:
		return StatusApproved, true
	case ActionReject:
		return StatusRejected, true
	case ActionDelete:
		return "", false
	default:
		return "", false
	}
}
