package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/repository"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/services"
)

func newTrackingService(shipments *mockShipmentRepo, flights *mockFlightRepo) services.TrackingService {
	return services.NewTrackingService(shipments, flights, zap.NewNop())
}

func recordedEvent(status, description string, completed, current bool, at time.Time) models.TimelineEvent {
	return models.TimelineEvent{
		ID:          uuid.New(),
		Status:      status,
		Description: description,
		Completed:   completed,
		IsCurrent:   current,
		CreatedAt:   at,
	}
}

func TestGetTrackingView_CargoMidJourney(t *testing.T) {
	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	shipment := storedShipment(models.StatusArrivedDestination)
	repo := &mockShipmentRepo{
		shipment: shipment,
		timeline: []models.TimelineEvent{
			recordedEvent(models.StatusBooked, "Your shipment has been booked", true, false, base),
			recordedEvent(models.StatusPickedUp, "Picked up - Dhaka Hub", true, false, base.Add(24*time.Hour)),
			recordedEvent(models.StatusAtFacility, "Handed over", true, false, base.Add(36*time.Hour)),
			recordedEvent(models.StatusInTransit, "In Transit to Canada", true, false, base.Add(48*time.Hour)),
			recordedEvent(models.StatusArrivedDestination, "Arrived in Canada", false, true, base.Add(96*time.Hour)),
		},
	}
	svc := newTrackingService(repo, &mockFlightRepo{})

	view, svcErr := svc.GetTrackingView(context.Background(), "WC-SH-10245")

	assert.Nil(t, svcErr)
	assert.Equal(t, models.TrackingTypeCargo, view.Type)
	assert.Nil(t, view.Flight)

	cargo := view.Cargo
	assert.Equal(t, "WC-SH-10245", cargo.TrackingID)
	assert.Equal(t, models.StatusArrivedDestination, cargo.CurrentStatus)

	// Five recorded steps plus skeleton entries for the two remaining ones.
	assert.Len(t, cargo.Timeline, 7)

	currentCount := 0
	for _, step := range cargo.Timeline {
		if step.Current {
			currentCount++
			assert.Equal(t, models.StatusArrivedDestination, step.Status)
		}
	}
	assert.Equal(t, 1, currentCount)

	pending := cargo.Timeline[5]
	assert.Equal(t, models.StatusOutForDelivery, pending.Status)
	assert.Equal(t, "Out for Delivery", pending.Label)
	assert.Equal(t, "Pending", pending.Description)
	assert.False(t, pending.Completed)
	assert.Nil(t, pending.Date)

	last := cargo.Timeline[6]
	assert.Equal(t, models.StatusDelivered, last.Status)
	assert.Equal(t, "Pending final delivery", last.Description)
}

func TestGetTrackingView_DeliveredHasNoPendingSteps(t *testing.T) {
	now := time.Now().UTC()
	shipment := storedShipment(models.StatusDelivered)
	shipment.ActualDelivery = &now
	repo := &mockShipmentRepo{
		shipment: shipment,
		timeline: []models.TimelineEvent{
			recordedEvent(models.StatusBooked, "Your shipment has been booked", true, false, now.Add(-7*24*time.Hour)),
			recordedEvent(models.StatusDelivered, "Delivery completed - Toronto", true, true, now),
		},
	}
	svc := newTrackingService(repo, &mockFlightRepo{})

	view, svcErr := svc.GetTrackingView(context.Background(), "WC-SH-10245")

	assert.Nil(t, svcErr)
	assert.Len(t, view.Cargo.Timeline, 2)
	for _, step := range view.Cargo.Timeline {
		assert.NotEqual(t, "Pending", step.Description)
	}
}

func TestGetTrackingView_CancelledHasNoPendingSteps(t *testing.T) {
	shipment := storedShipment(models.StatusCancelled)
	repo := &mockShipmentRepo{
		shipment: shipment,
		timeline: []models.TimelineEvent{
			recordedEvent(models.StatusBooked, "Your shipment has been booked", true, false, time.Now()),
			recordedEvent(models.StatusCancelled, "Shipment cancelled", true, true, time.Now()),
		},
	}
	svc := newTrackingService(repo, &mockFlightRepo{})

	view, svcErr := svc.GetTrackingView(context.Background(), "WC-SH-10245")

	assert.Nil(t, svcErr)
	assert.Len(t, view.Cargo.Timeline, 2)
}

func TestGetTrackingView_FlightBooking(t *testing.T) {
	departure := time.Date(2026, 9, 15, 2, 30, 0, 0, time.UTC)
	flights := &mockFlightRepo{
		booking: &models.FlightBooking{
			ID:             uuid.New(),
			BookingRef:     "WC-FL-20891",
			PNR:            "X4K9PQ",
			Status:         models.FlightStatusConfirmed,
			Airline:        "Emirates",
			FlightNumber:   "EK585",
			Origin:         "DAC",
			Destination:    "YYZ",
			DepartureAt:    departure,
			ArrivalAt:      departure.Add(22 * time.Hour),
			CabinClass:     "economy",
			PassengersJSON: `[{"name":"Rahim Uddin","ticket_no":"176-2401882211"}]`,
			TotalAmount:    1450,
		},
	}
	svc := newTrackingService(&mockShipmentRepo{}, flights)

	view, svcErr := svc.GetTrackingView(context.Background(), "WC-FL-20891")

	assert.Nil(t, svcErr)
	assert.Equal(t, models.TrackingTypeFlight, view.Type)
	assert.Nil(t, view.Cargo)
	assert.Equal(t, "WC-FL-20891", view.Flight.BookingRef)
	assert.Equal(t, "EK585", view.Flight.FlightNumber)
	assert.Len(t, view.Flight.Passengers, 1)
	assert.Equal(t, "Rahim Uddin", view.Flight.Passengers[0].Name)
}

func TestGetTrackingView_UnknownPrefixSkipsLookups(t *testing.T) {
	repo := &mockShipmentRepo{}
	svc := newTrackingService(repo, &mockFlightRepo{})

	_, svcErr := svc.GetTrackingView(context.Background(), "DHL-123456")

	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Equal(t, "No shipment or booking found for this tracking ID", svcErr.Message)
	assert.Equal(t, 0, repo.findCalls)
}

func TestGetTrackingView_NotFoundIsGeneric(t *testing.T) {
	// Unknown shipment and unknown flight come back indistinguishable.
	shipSvc := newTrackingService(&mockShipmentRepo{findErr: repository.ErrNotFound}, &mockFlightRepo{})
	_, shipErr := shipSvc.GetTrackingView(context.Background(), "WC-SH-99999")

	flightSvc := newTrackingService(&mockShipmentRepo{}, &mockFlightRepo{findErr: repository.ErrNotFound})
	_, flightErr := flightSvc.GetTrackingView(context.Background(), "WC-FL-99999")

	assert.NotNil(t, shipErr)
	assert.NotNil(t, flightErr)
	assert.Equal(t, shipErr.StatusCode, flightErr.StatusCode)
	assert.Equal(t, shipErr.Message, flightErr.Message)
}

func TestGetTrackingView_TrimsWhitespace(t *testing.T) {
	repo := &mockShipmentRepo{shipment: storedShipment(models.StatusBooked)}
	svc := newTrackingService(repo, &mockFlightRepo{})

	view, svcErr := svc.GetTrackingView(context.Background(), "  WC-SH-10245  ")

	assert.Nil(t, svcErr)
	assert.Equal(t, models.TrackingTypeCargo, view.Type)
}
