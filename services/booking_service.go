package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	aws_pkg "github.com/iammarkzubarkusa-prog/wing-way-connect/pkg/aws"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/repository"
)

// trackingIDAttempts bounds the number of collision retries when minting a
// new WC- identifier.
const trackingIDAttempts = 5

// BookingService is the back-office intake and override surface: creating
// shipments and flight bookings, and the admin status path that writes
// timeline events without a scan.
type BookingService interface {
	CreateShipment(ctx context.Context, req *models.CreateShipmentRequest) (*models.Shipment, *ServiceError)
	CreateFlightBooking(ctx context.Context, req *models.CreateFlightBookingRequest) (*models.FlightBooking, *ServiceError)
	UpdateShipmentStatus(ctx context.Context, trackingID string, req *models.AdminStatusRequest, adminID string) (*models.ScanResult, *ServiceError)
}

type bookingServiceImpl struct {
	shipments repository.ShipmentRepository
	flights   repository.FlightRepository
	events    eventPublisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	shipments repository.ShipmentRepository,
	flights repository.FlightRepository,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) BookingService {
	return &bookingServiceImpl{
		shipments: shipments,
		flights:   flights,
		events:    eventPublisher{sns: snsClient, topicArn: snsTopicArn, logger: logger},
		logger:    logger,
	}
}

// CreateShipment books a new shipment with a freshly minted tracking
// identifier, status booked and its initial timeline event.
func (s *bookingServiceImpl) CreateShipment(ctx context.Context, req *models.CreateShipmentRequest) (*models.Shipment, *ServiceError) {
	trackingID, err := s.newTrackingID(ctx, models.TrackingPrefixShipment, s.shipments.ExistsByTrackingID)
	if err != nil {
		s.logger.Error("Tracking ID generation failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to allocate tracking ID"}
	}

	packages := req.Packages
	if packages == 0 {
		packages = 1
	}
	estimated := time.Now().UTC().AddDate(0, 0, TransitDays(req.ServiceType))

	shipment := &models.Shipment{
		TrackingID:        trackingID,
		Route:             req.Route,
		CargoType:         req.CargoType,
		WeightKg:          req.WeightKg,
		Packages:          packages,
		SenderName:        req.SenderName,
		SenderPhone:       req.SenderPhone,
		ReceiverName:      req.ReceiverName,
		ReceiverPhone:     req.ReceiverPhone,
		Amount:            req.Amount,
		Status:            models.StatusBooked,
		EstimatedDelivery: &estimated,
	}
	initial := &models.TimelineEvent{
		Status:      models.StatusBooked,
		Description: "Your shipment has been booked",
		Location:    "Online",
		Completed:   true,
		IsCurrent:   true,
	}

	if err := s.shipments.Create(ctx, shipment, initial); err != nil {
		s.logger.Error("Failed to persist shipment", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save shipment record"}
	}

	s.logger.Info("Shipment booked",
		zap.String("tracking_id", shipment.TrackingID),
		zap.String("route", shipment.Route),
	)

	s.events.publish(ctx, models.ShipmentCreatedEvent{
		EventType:  "shipment_created",
		ShipmentID: shipment.ID.String(),
		TrackingID: shipment.TrackingID,
		Route:      shipment.Route,
		Timestamp:  time.Now().UTC(),
	})

	return shipment, nil
}

// CreateFlightBooking records a flight booking under a WC-FL reference.
func (s *bookingServiceImpl) CreateFlightBooking(ctx context.Context, req *models.CreateFlightBookingRequest) (*models.FlightBooking, *ServiceError) {
	bookingRef, err := s.newTrackingID(ctx, models.TrackingPrefixFlight, s.flights.ExistsByBookingRef)
	if err != nil {
		s.logger.Error("Booking ref generation failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to allocate booking reference"}
	}

	passengers, err := json.Marshal(req.Passengers)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid passenger list"}
	}

	booking := &models.FlightBooking{
		BookingRef:     bookingRef,
		PNR:            req.PNR,
		Status:         models.FlightStatusConfirmed,
		Airline:        req.Airline,
		FlightNumber:   req.FlightNumber,
		Origin:         req.Origin,
		Destination:    req.Destination,
		DepartureAt:    req.DepartureAt,
		ArrivalAt:      req.ArrivalAt,
		CabinClass:     req.CabinClass,
		PassengersJSON: string(passengers),
		TotalAmount:    req.TotalAmount,
	}

	if err := s.flights.Create(ctx, booking); err != nil {
		s.logger.Error("Failed to persist flight booking", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to save flight booking"}
	}

	s.logger.Info("Flight booked",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("flight", booking.FlightNumber),
	)
	return booking, nil
}

// UpdateShipmentStatus is the back-office writer: it advances or cancels a
// shipment and appends a timeline event directly, with no scan record.
func (s *bookingServiceImpl) UpdateShipmentStatus(ctx context.Context, trackingID string, req *models.AdminStatusRequest, adminID string) (*models.ScanResult, *ServiceError) {
	shipment, err := s.shipments.FindByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Shipment not found"}
		}
		s.logger.Error("Shipment lookup failed", zap.String("tracking_id", trackingID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Unable to look up shipment"}
	}

	now := time.Now().UTC()
	transition, err := ComputeAdminTransition(shipment, req.Status, req.Description, now)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyTerminal):
			return nil, &ServiceError{StatusCode: 409, Message: "Shipment was already completed"}
		default:
			return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
		}
	}

	event := &models.TimelineEvent{
		Status:      transition.EventStatus,
		Description: transition.Description,
		Location:    req.Location,
		Completed:   transition.EventCompleted,
		IsCurrent:   transition.EventCurrent,
	}
	app := &repository.ScanApplication{
		ShipmentID: shipment.ID,
		Event:      event,
		Change: &repository.StatusChange{
			From:           shipment.Status,
			To:             transition.NewStatus,
			ActualDelivery: transition.ActualDelivery,
		},
	}

	if err := s.shipments.ApplyScan(ctx, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, &ServiceError{StatusCode: 404, Message: "Shipment not found"}
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, &ServiceError{StatusCode: 409, Message: "Shipment was updated concurrently, please retry"}
		default:
			s.logger.Error("Status override failed", zap.String("tracking_id", trackingID), zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to update shipment status"}
		}
	}

	s.logger.Info("Status overridden",
		zap.String("tracking_id", shipment.TrackingID),
		zap.String("old_status", shipment.Status),
		zap.String("new_status", transition.NewStatus),
		zap.String("admin", adminID),
	)

	s.events.publish(ctx, models.ShipmentUpdatedEvent{
		EventType:  "shipment_updated",
		ShipmentID: shipment.ID.String(),
		TrackingID: shipment.TrackingID,
		OldStatus:  shipment.Status,
		NewStatus:  transition.NewStatus,
		ChangedBy:  adminID,
		Timestamp:  now,
	})

	return &models.ScanResult{
		TrackingID:    shipment.TrackingID,
		Status:        transition.NewStatus,
		StatusChanged: true,
		TimelineEvent: *event,
	}, nil
}

// newTrackingID mints a WC- identifier with a 5-digit suffix, retrying on
// the unlikely collision with an existing record.
func (s *bookingServiceImpl) newTrackingID(ctx context.Context, prefix string, exists func(context.Context, string) (bool, error)) (string, error) {
	for i := 0; i < trackingIDAttempts; i++ {
		candidate := fmt.Sprintf("%s%05d", prefix, 10000+rand.Intn(90000))
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique identifier after %d attempts", trackingIDAttempts)
}
