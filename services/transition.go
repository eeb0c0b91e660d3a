package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
)

// Transition engine errors.
var (
	// ErrAlreadyTerminal means the shipment is delivered or cancelled and
	// accepts no further scans or status changes.
	ErrAlreadyTerminal = errors.New("shipment already in a terminal status")
	// ErrInvalidTarget means an explicit target status is unknown, would
	// regress the shipment, or is not reachable on this path.
	ErrInvalidTarget = errors.New("invalid target status")
)

// statusOrder fixes the linear lifecycle ordering. Cancelled sits outside
// the order; it is only reachable via the admin override.
var statusOrder = map[string]int{
	models.StatusBooked:             0,
	models.StatusPickedUp:           1,
	models.StatusAtFacility:         2,
	models.StatusInTransit:          3,
	models.StatusArrivedDestination: 4,
	models.StatusOutForDelivery:     5,
	models.StatusDelivered:          6,
}

// lifecycleStatuses is the expected journey in order, used to build the
// customer-facing skeleton.
var lifecycleStatuses = []string{
	models.StatusBooked,
	models.StatusPickedUp,
	models.StatusAtFacility,
	models.StatusInTransit,
	models.StatusArrivedDestination,
	models.StatusOutForDelivery,
	models.StatusDelivered,
}

var scanTypeLabels = map[string]string{
	models.ScanTypePickup:     "Picked up",
	models.ScanTypeHandover:   "Handed over",
	models.ScanTypeCheckpoint: "Checkpoint passed",
	models.ScanTypeDelivery:   "Delivery completed",
}

// Transition is the computed effect of a scan or back-office action:
// the status outcome plus the timeline event it produces.
type Transition struct {
	NewStatus      string
	StatusChanged  bool
	Description    string
	EventStatus    string
	EventCompleted bool
	EventCurrent   bool
	ActualDelivery *time.Time
}

// ExpectedSteps returns the lifecycle statuses in their fixed order.
func ExpectedSteps() []string {
	steps := make([]string, len(lifecycleStatuses))
	copy(steps, lifecycleStatuses)
	return steps
}

// StatusLabel returns the customer-facing label for a status, with the
// destination country spelled out for route-dependent steps.
func StatusLabel(status, route string) string {
	destination := "Bangladesh"
	if route == models.RouteBDToCA {
		destination = "Canada"
	}
	switch status {
	case models.StatusBooked:
		return "Booking Confirmed"
	case models.StatusPickedUp:
		return "Picked Up"
	case models.StatusAtFacility:
		return "At Origin Facility"
	case models.StatusInTransit:
		return "In Transit to " + destination
	case models.StatusArrivedDestination:
		return "Arrived in " + destination
	case models.StatusOutForDelivery:
		return "Out for Delivery"
	case models.StatusDelivered:
		return "Delivered"
	case models.StatusCancelled:
		return "Cancelled"
	}
	return status
}

// ComputeScanTransition decides what a scan does to a shipment: the new
// status (if any) and the timeline event to append. It is pure; the caller
// persists the result atomically.
//
// Out-of-order scans never regress the status. A pickup scan on a shipment
// already past booked is recorded as a checkpoint-style re-confirmation
// rather than rejected, since field scans routinely arrive late or twice.
func ComputeScanTransition(shipment *models.Shipment, scanType, location, targetStatus string, now time.Time) (*Transition, error) {
	if models.IsTerminalStatus(shipment.Status) {
		return nil, ErrAlreadyTerminal
	}

	description := scanTypeLabels[scanType]
	if location != "" {
		description += " - " + location
	}

	switch scanType {
	case models.ScanTypePickup:
		if shipment.Status == models.StatusBooked {
			return advance(models.StatusPickedUp, description), nil
		}
		return eventOnly(shipment, description), nil

	case models.ScanTypeHandover:
		if targetStatus == "" {
			return eventOnly(shipment, description), nil
		}
		target, ok := statusOrder[targetStatus]
		if !ok || targetStatus == models.StatusDelivered {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, targetStatus)
		}
		if target <= statusOrder[shipment.Status] {
			return nil, fmt.Errorf("%w: %q does not advance %q", ErrInvalidTarget, targetStatus, shipment.Status)
		}
		return advance(targetStatus, description), nil

	case models.ScanTypeCheckpoint:
		return eventOnly(shipment, description), nil

	case models.ScanTypeDelivery:
		t := advance(models.StatusDelivered, description)
		t.ActualDelivery = &now
		return t, nil
	}

	return nil, fmt.Errorf("unknown scan type %q", scanType)
}

// ComputeAdminTransition decides a back-office status override. Admins can
// advance to any later lifecycle status, or cancel; they cannot regress a
// shipment or touch one already terminal.
func ComputeAdminTransition(shipment *models.Shipment, targetStatus, description string, now time.Time) (*Transition, error) {
	if models.IsTerminalStatus(shipment.Status) {
		return nil, ErrAlreadyTerminal
	}

	if targetStatus == models.StatusCancelled {
		if description == "" {
			description = "Shipment cancelled"
		}
		t := advance(models.StatusCancelled, description)
		return t, nil
	}

	target, ok := statusOrder[targetStatus]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, targetStatus)
	}
	if target <= statusOrder[shipment.Status] {
		return nil, fmt.Errorf("%w: %q does not advance %q", ErrInvalidTarget, targetStatus, shipment.Status)
	}
	if description == "" {
		description = StatusLabel(targetStatus, shipment.Route)
	}
	t := advance(targetStatus, description)
	if targetStatus == models.StatusDelivered {
		t.ActualDelivery = &now
	}
	return t, nil
}

// advance builds a status-changing transition. The new event takes the
// current flag; it is completed immediately only for terminal statuses,
// otherwise it completes when the next event supersedes it.
func advance(newStatus, description string) *Transition {
	return &Transition{
		NewStatus:      newStatus,
		StatusChanged:  true,
		Description:    description,
		EventStatus:    newStatus,
		EventCompleted: models.IsTerminalStatus(newStatus),
		EventCurrent:   true,
	}
}

// eventOnly builds a transition that records passage without moving the
// status. The event carries the present status and never takes the
// current flag.
func eventOnly(shipment *models.Shipment, description string) *Transition {
	return &Transition{
		NewStatus:      shipment.Status,
		StatusChanged:  false,
		Description:    description,
		EventStatus:    shipment.Status,
		EventCompleted: true,
		EventCurrent:   false,
	}
}
