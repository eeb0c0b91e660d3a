package services_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/repository"
)

// mockShipmentRepo is a hand-rolled ShipmentRepository double. Fields set
// the canned responses; call captures let tests assert what was written.
type mockShipmentRepo struct {
	shipment    *models.Shipment
	findErr     error
	exists      bool
	existsErr   error
	timeline    []models.TimelineEvent
	timelineErr error
	createErr   error
	applyErr    error

	findCalls     int
	existsCalls   int
	createdRecord *models.Shipment
	createdEvent  *models.TimelineEvent
	applied       *repository.ScanApplication
}

func (m *mockShipmentRepo) Create(ctx context.Context, shipment *models.Shipment, initial *models.TimelineEvent) error {
	if m.createErr != nil {
		return m.createErr
	}
	shipment.ID = uuid.New()
	m.createdRecord = shipment
	m.createdEvent = initial
	return nil
}

func (m *mockShipmentRepo) FindByTrackingID(ctx context.Context, trackingID string) (*models.Shipment, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.shipment, nil
}

func (m *mockShipmentRepo) ExistsByTrackingID(ctx context.Context, trackingID string) (bool, error) {
	m.existsCalls++
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

func (m *mockShipmentRepo) FindTimeline(ctx context.Context, shipmentID uuid.UUID) ([]models.TimelineEvent, error) {
	if m.timelineErr != nil {
		return nil, m.timelineErr
	}
	return m.timeline, nil
}

func (m *mockShipmentRepo) ApplyScan(ctx context.Context, app *repository.ScanApplication) error {
	if m.applyErr != nil {
		return m.applyErr
	}
	m.applied = app
	return nil
}

type mockFlightRepo struct {
	booking   *models.FlightBooking
	findErr   error
	exists    bool
	existsErr error
	createErr error

	createdRecord *models.FlightBooking
}

func (m *mockFlightRepo) Create(ctx context.Context, booking *models.FlightBooking) error {
	if m.createErr != nil {
		return m.createErr
	}
	booking.ID = uuid.New()
	m.createdRecord = booking
	return nil
}

func (m *mockFlightRepo) FindByBookingRef(ctx context.Context, bookingRef string) (*models.FlightBooking, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.booking, nil
}

func (m *mockFlightRepo) ExistsByBookingRef(ctx context.Context, bookingRef string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

// mockSNS records published messages.
type mockSNS struct {
	published [][]byte
	err       error
}

func (m *mockSNS) Publish(ctx context.Context, topicArn string, message []byte) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, message)
	return nil
}
