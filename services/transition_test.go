package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/services"
)

func shipmentIn(status string) *models.Shipment {
	return &models.Shipment{
		TrackingID: "WC-SH-10245",
		Route:      models.RouteBDToCA,
		Status:     status,
	}
}

func TestComputeScanTransition_PickupAdvancesFromBooked(t *testing.T) {
	now := time.Now()
	tr, err := services.ComputeScanTransition(shipmentIn(models.StatusBooked), models.ScanTypePickup, "Dhaka Hub", "", now)

	assert.NoError(t, err)
	assert.True(t, tr.StatusChanged)
	assert.Equal(t, models.StatusPickedUp, tr.NewStatus)
	assert.Equal(t, models.StatusPickedUp, tr.EventStatus)
	assert.Equal(t, "Picked up - Dhaka Hub", tr.Description)
	assert.True(t, tr.EventCurrent)
	assert.False(t, tr.EventCompleted)
	assert.Nil(t, tr.ActualDelivery)
}

func TestComputeScanTransition_LatePickupDoesNotRegress(t *testing.T) {
	// A pickup scan arriving after the shipment has moved on is recorded
	// as a re-confirmation, not a status change.
	tr, err := services.ComputeScanTransition(shipmentIn(models.StatusInTransit), models.ScanTypePickup, "", "", time.Now())

	assert.NoError(t, err)
	assert.False(t, tr.StatusChanged)
	assert.Equal(t, models.StatusInTransit, tr.NewStatus)
	assert.Equal(t, models.StatusInTransit, tr.EventStatus)
	assert.True(t, tr.EventCompleted)
	assert.False(t, tr.EventCurrent)
}

func TestComputeScanTransition_CheckpointNeverMovesStatus(t *testing.T) {
	for _, status := range []string{models.StatusBooked, models.StatusPickedUp, models.StatusInTransit, models.StatusOutForDelivery} {
		tr, err := services.ComputeScanTransition(shipmentIn(status), models.ScanTypeCheckpoint, "Dubai Transit", "", time.Now())

		assert.NoError(t, err)
		assert.False(t, tr.StatusChanged, "status %s", status)
		assert.Equal(t, status, tr.NewStatus)
		assert.Equal(t, "Checkpoint passed - Dubai Transit", tr.Description)
	}
}

func TestComputeScanTransition_HandoverWithoutTarget(t *testing.T) {
	tr, err := services.ComputeScanTransition(shipmentIn(models.StatusPickedUp), models.ScanTypeHandover, "", "", time.Now())

	assert.NoError(t, err)
	assert.False(t, tr.StatusChanged)
}

func TestComputeScanTransition_HandoverAdvancesToTarget(t *testing.T) {
	tr, err := services.ComputeScanTransition(shipmentIn(models.StatusPickedUp), models.ScanTypeHandover, "", models.StatusInTransit, time.Now())

	assert.NoError(t, err)
	assert.True(t, tr.StatusChanged)
	assert.Equal(t, models.StatusInTransit, tr.NewStatus)
	assert.True(t, tr.EventCurrent)
}

func TestComputeScanTransition_HandoverRejectsBackwardTarget(t *testing.T) {
	_, err := services.ComputeScanTransition(shipmentIn(models.StatusInTransit), models.ScanTypeHandover, "", models.StatusPickedUp, time.Now())
	assert.ErrorIs(t, err, services.ErrInvalidTarget)

	_, err = services.ComputeScanTransition(shipmentIn(models.StatusInTransit), models.ScanTypeHandover, "", models.StatusInTransit, time.Now())
	assert.ErrorIs(t, err, services.ErrInvalidTarget)
}

func TestComputeScanTransition_HandoverRejectsDeliveredTarget(t *testing.T) {
	// Delivery is only reachable through a delivery scan.
	_, err := services.ComputeScanTransition(shipmentIn(models.StatusOutForDelivery), models.ScanTypeHandover, "", models.StatusDelivered, time.Now())
	assert.ErrorIs(t, err, services.ErrInvalidTarget)
}

func TestComputeScanTransition_HandoverRejectsUnknownTarget(t *testing.T) {
	_, err := services.ComputeScanTransition(shipmentIn(models.StatusPickedUp), models.ScanTypeHandover, "", "warehouse", time.Now())
	assert.ErrorIs(t, err, services.ErrInvalidTarget)
}

func TestComputeScanTransition_DeliveryCompletesShipment(t *testing.T) {
	now := time.Now()
	tr, err := services.ComputeScanTransition(shipmentIn(models.StatusOutForDelivery), models.ScanTypeDelivery, "Toronto", "", now)

	assert.NoError(t, err)
	assert.True(t, tr.StatusChanged)
	assert.Equal(t, models.StatusDelivered, tr.NewStatus)
	assert.True(t, tr.EventCompleted)
	assert.True(t, tr.EventCurrent)
	assert.NotNil(t, tr.ActualDelivery)
	assert.Equal(t, now, *tr.ActualDelivery)
}

func TestComputeScanTransition_TerminalShipmentRejectsAllScans(t *testing.T) {
	for _, status := range []string{models.StatusDelivered, models.StatusCancelled} {
		for _, scanType := range []string{models.ScanTypePickup, models.ScanTypeHandover, models.ScanTypeCheckpoint, models.ScanTypeDelivery} {
			_, err := services.ComputeScanTransition(shipmentIn(status), scanType, "", "", time.Now())
			assert.ErrorIs(t, err, services.ErrAlreadyTerminal, "%s scan on %s shipment", scanType, status)
		}
	}
}

func TestComputeScanTransition_UnknownScanType(t *testing.T) {
	_, err := services.ComputeScanTransition(shipmentIn(models.StatusBooked), "teleport", "", "", time.Now())
	assert.Error(t, err)
}

func TestComputeAdminTransition_AdvancesForward(t *testing.T) {
	tr, err := services.ComputeAdminTransition(shipmentIn(models.StatusInTransit), models.StatusArrivedDestination, "", time.Now())

	assert.NoError(t, err)
	assert.True(t, tr.StatusChanged)
	assert.Equal(t, models.StatusArrivedDestination, tr.NewStatus)
	assert.Equal(t, "Arrived in Canada", tr.Description)
	assert.True(t, tr.EventCurrent)
	assert.False(t, tr.EventCompleted)
}

func TestComputeAdminTransition_DeliveredSetsActualDelivery(t *testing.T) {
	now := time.Now()
	tr, err := services.ComputeAdminTransition(shipmentIn(models.StatusOutForDelivery), models.StatusDelivered, "", now)

	assert.NoError(t, err)
	assert.NotNil(t, tr.ActualDelivery)
	assert.Equal(t, now, *tr.ActualDelivery)
	assert.True(t, tr.EventCompleted)
}

func TestComputeAdminTransition_CancelFromAnyActiveStatus(t *testing.T) {
	for _, status := range []string{models.StatusBooked, models.StatusInTransit, models.StatusOutForDelivery} {
		tr, err := services.ComputeAdminTransition(shipmentIn(status), models.StatusCancelled, "", time.Now())

		assert.NoError(t, err, "cancel from %s", status)
		assert.Equal(t, models.StatusCancelled, tr.NewStatus)
		assert.Equal(t, "Shipment cancelled", tr.Description)
		assert.True(t, tr.EventCompleted)
	}
}

func TestComputeAdminTransition_RejectsRegression(t *testing.T) {
	_, err := services.ComputeAdminTransition(shipmentIn(models.StatusArrivedDestination), models.StatusPickedUp, "", time.Now())
	assert.ErrorIs(t, err, services.ErrInvalidTarget)
}

func TestComputeAdminTransition_RejectsTerminal(t *testing.T) {
	_, err := services.ComputeAdminTransition(shipmentIn(models.StatusCancelled), models.StatusInTransit, "", time.Now())
	assert.ErrorIs(t, err, services.ErrAlreadyTerminal)
}

func TestStatusLabel_RouteAwareDestination(t *testing.T) {
	assert.Equal(t, "In Transit to Canada", services.StatusLabel(models.StatusInTransit, models.RouteBDToCA))
	assert.Equal(t, "Arrived in Bangladesh", services.StatusLabel(models.StatusArrivedDestination, models.RouteCAToBD))
	assert.Equal(t, "Booking Confirmed", services.StatusLabel(models.StatusBooked, models.RouteBDToCA))
	assert.Equal(t, "Delivered", services.StatusLabel(models.StatusDelivered, models.RouteCAToBD))
}

func TestExpectedSteps_FixedOrder(t *testing.T) {
	steps := services.ExpectedSteps()
	assert.Equal(t, []string{
		models.StatusBooked,
		models.StatusPickedUp,
		models.StatusAtFacility,
		models.StatusInTransit,
		models.StatusArrivedDestination,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}, steps)

	// Callers may mutate the returned slice freely.
	steps[0] = "mutated"
	assert.Equal(t, models.StatusBooked, services.ExpectedSteps()[0])
}
