package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/repository"
)

// TrackingService is the public, unauthenticated read path. Lookups are
// exact-match only and unknown identifiers always come back as a generic
// not-found, regardless of why the lookup failed to match.
type TrackingService interface {
	GetTrackingView(ctx context.Context, trackingID string) (*models.TrackingView, *ServiceError)
}

type trackingServiceImpl struct {
	shipments repository.ShipmentRepository
	flights   repository.FlightRepository
	logger    *zap.Logger
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(
	shipments repository.ShipmentRepository,
	flights repository.FlightRepository,
	logger *zap.Logger,
) TrackingService {
	return &trackingServiceImpl{shipments: shipments, flights: flights, logger: logger}
}

var errTrackingNotFound = &ServiceError{StatusCode: 404, Message: "No shipment or booking found for this tracking ID"}

// GetTrackingView builds the display-ready projection for a tracking
// identifier, routed by prefix to the cargo or flight variant.
func (s *trackingServiceImpl) GetTrackingView(ctx context.Context, trackingID string) (*models.TrackingView, *ServiceError) {
	trackingID = strings.TrimSpace(trackingID)

	switch {
	case strings.HasPrefix(trackingID, models.TrackingPrefixShipment):
		return s.cargoView(ctx, trackingID)
	case strings.HasPrefix(trackingID, models.TrackingPrefixFlight):
		return s.flightView(ctx, trackingID)
	}
	return nil, errTrackingNotFound
}

func (s *trackingServiceImpl) cargoView(ctx context.Context, trackingID string) (*models.TrackingView, *ServiceError) {
	shipment, err := s.shipments.FindByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTrackingNotFound
		}
		s.logger.Error("Tracking lookup failed", zap.String("tracking_id", trackingID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Unable to retrieve tracking information"}
	}

	events, err := s.shipments.FindTimeline(ctx, shipment.ID)
	if err != nil {
		s.logger.Error("Timeline lookup failed", zap.String("tracking_id", trackingID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Unable to retrieve tracking information"}
	}

	view := &models.CargoTrackingView{
		Type:              models.TrackingTypeCargo,
		TrackingID:        shipment.TrackingID,
		Route:             shipment.Route,
		CargoType:         shipment.CargoType,
		WeightKg:          shipment.WeightKg,
		Packages:          shipment.Packages,
		SenderName:        shipment.SenderName,
		ReceiverName:      shipment.ReceiverName,
		Amount:            shipment.Amount,
		CurrentStatus:     shipment.Status,
		BookedAt:          shipment.CreatedAt,
		EstimatedDelivery: shipment.EstimatedDelivery,
		ActualDelivery:    shipment.ActualDelivery,
		Timeline:          buildTimeline(shipment, events),
	}
	return &models.TrackingView{Type: models.TrackingTypeCargo, Cargo: view}, nil
}

// buildTimeline turns recorded events into display steps and appends
// pending placeholders for lifecycle steps not yet reached, so customers
// always see the whole expected journey.
func buildTimeline(shipment *models.Shipment, events []models.TimelineEvent) []models.TimelineStep {
	steps := make([]models.TimelineStep, 0, len(events)+len(lifecycleStatuses))
	for _, ev := range events {
		date := ev.CreatedAt
		steps = append(steps, models.TimelineStep{
			Status:      ev.Status,
			Label:       StatusLabel(ev.Status, shipment.Route),
			Description: ev.Description,
			Location:    ev.Location,
			Date:        &date,
			Completed:   ev.Completed,
			Current:     ev.IsCurrent,
		})
	}

	// Cancelled shipments have no expected future steps.
	if shipment.Status == models.StatusCancelled {
		return steps
	}

	currentIdx, ok := statusOrder[shipment.Status]
	if !ok {
		return steps
	}
	for _, status := range lifecycleStatuses {
		if statusOrder[status] <= currentIdx {
			continue
		}
		description := "Pending"
		if status == models.StatusDelivered {
			description = "Pending final delivery"
		}
		steps = append(steps, models.TimelineStep{
			Status:      status,
			Label:       StatusLabel(status, shipment.Route),
			Description: description,
			Completed:   false,
			Current:     false,
		})
	}
	return steps
}

func (s *trackingServiceImpl) flightView(ctx context.Context, bookingRef string) (*models.TrackingView, *ServiceError) {
	booking, err := s.flights.FindByBookingRef(ctx, bookingRef)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errTrackingNotFound
		}
		s.logger.Error("Booking lookup failed", zap.String("booking_ref", bookingRef), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Unable to retrieve tracking information"}
	}

	var passengers []models.Passenger
	if booking.PassengersJSON != "" {
		// Stored by us at booking time; a decode failure means a corrupt
		// row, not a caller mistake.
		if err := json.Unmarshal([]byte(booking.PassengersJSON), &passengers); err != nil {
			s.logger.Warn("Corrupt passengers payload", zap.String("booking_ref", bookingRef), zap.Error(err))
		}
	}

	view := &models.FlightTrackingView{
		Type:         models.TrackingTypeFlight,
		BookingRef:   booking.BookingRef,
		PNR:          booking.PNR,
		Status:       booking.Status,
		Airline:      booking.Airline,
		FlightNumber: booking.FlightNumber,
		Origin:       booking.Origin,
		Destination:  booking.Destination,
		DepartureAt:  booking.DepartureAt,
		ArrivalAt:    booking.ArrivalAt,
		CabinClass:   booking.CabinClass,
		Passengers:   passengers,
		TotalAmount:  booking.TotalAmount,
	}
	return &models.TrackingView{Type: models.TrackingTypeFlight, Flight: view}, nil
}
