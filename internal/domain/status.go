package domain

import "regexp"

// AssignmentStatus is the lifecycle state of an assignment.
type AssignmentStatus string

// Assignment statuses.
const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentAssigned  AssignmentStatus = "assigned"
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentPickedUp  AssignmentStatus = "picked_up"
	AssignmentInTransit AssignmentStatus = "in_transit"
	AssignmentDelivered AssignmentStatus = "delivered"
	AssignmentFailed    AssignmentStatus = "failed"
)

var allowedAssignmentStatuses = [...]AssignmentStatus{
	AssignmentPending, AssignmentAssigned, AssignmentAccepted, AssignmentPickedUp,
	AssignmentInTransit, AssignmentDelivered, AssignmentFailed,
}

// ActiveStatuses are the states in which an assignment occupies an agent slot.
var ActiveStatuses = []AssignmentStatus{
	AssignmentAssigned, AssignmentAccepted, AssignmentPickedUp, AssignmentInTransit,
}

var transitions = map[AssignmentStatus][]AssignmentStatus{
	AssignmentPending:   {AssignmentAssigned, AssignmentFailed},
	AssignmentAssigned:  {AssignmentAccepted, AssignmentPending, AssignmentFailed},
	AssignmentAccepted:  {AssignmentPickedUp, AssignmentFailed},
	AssignmentPickedUp:  {AssignmentInTransit, AssignmentDelivered, AssignmentFailed},
	AssignmentInTransit: {AssignmentInTransit, AssignmentDelivered, AssignmentFailed},
}

// Valid checks if the AssignmentStatus is known.
func (s AssignmentStatus) Valid() bool {
	for _, v := range allowedAssignmentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s AssignmentStatus) Terminal() bool {
	return s == AssignmentDelivered || s == AssignmentFailed
}

// Active reports whether the assignment holds an agent slot in this state.
func (s AssignmentStatus) Active() bool {
	for _, v := range ActiveStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to AssignmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AgentAvailability is the self-reported availability of an agent.
type AgentAvailability string

// Agent availability values.
const (
	AvailabilityAvailable AgentAvailability = "available"
	AvailabilityBusy      AgentAvailability = "busy"
	AvailabilityOffline   AgentAvailability = "offline"
)

var allowedAvailability = [...]AgentAvailability{
	AvailabilityAvailable, AvailabilityBusy, AvailabilityOffline,
}

// Valid checks if the AgentAvailability is valid.
func (a AgentAvailability) Valid() bool {
	for _, v := range allowedAvailability {
		if a == v {
			return true
		}
	}
	return false
}

// Dispatchable reports whether the scorer may consider an agent with this availability.
func (a AgentAvailability) Dispatchable() bool {
	return a == AvailabilityAvailable || a == AvailabilityBusy
}

// rePhone is a regex to validate phone numbers
var rePhone = regexp.MustCompile(`^\+[0-9]{10,14}$`)

// ValidatePhone validates the phone number format
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}
