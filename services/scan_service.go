package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	aws_pkg "github.com/iammarkzubarkusa-prog/wing-way-connect/pkg/aws"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/qr"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/repository"
)

// ScanService is the agent-facing scan workflow: resolve a scanned QR
// payload to a shipment, then apply a confirmed scan to it.
type ScanService interface {
	ResolveScan(ctx context.Context, raw string) (*models.Shipment, *ServiceError)
	SubmitScan(ctx context.Context, req *models.SubmitScanRequest, agentID string) (*models.ScanResult, *ServiceError)
}

type scanServiceImpl struct {
	repo   repository.ShipmentRepository
	events eventPublisher
	logger *zap.Logger
}

// NewScanService creates a new ScanService.
func NewScanService(
	repo repository.ShipmentRepository,
	snsClient aws_pkg.SNSPublisher,
	snsTopicArn string,
	logger *zap.Logger,
) ScanService {
	return &scanServiceImpl{
		repo:   repo,
		events: eventPublisher{sns: snsClient, topicArn: snsTopicArn, logger: logger},
		logger: logger,
	}
}

// ResolveScan decodes raw scanner text and resolves it against the
// shipment store. The payload carries no authority of its own; only a
// shipment found here may be scanned against. Decode failures are routine
// camera noise and come back as retryable 4xx errors.
func (s *scanServiceImpl) ResolveScan(ctx context.Context, raw string) (*models.Shipment, *ServiceError) {
	payload, err := qr.Decode(raw)
	if err != nil {
		if errors.Is(err, qr.ErrWrongType) {
			return nil, &ServiceError{StatusCode: 400, Message: "QR code is not a shipment label"}
		}
		return nil, &ServiceError{StatusCode: 400, Message: "Invalid QR code, try scanning again"}
	}

	shipment, err := s.repo.FindByTrackingID(ctx, payload.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "No shipment found for this QR code"}
		}
		s.logger.Error("Shipment lookup failed", zap.String("tracking_id", payload.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Unable to look up shipment"}
	}
	return shipment, nil
}

// SubmitScan applies a confirmed scan: computes the transition, then
// commits the scan record, status update and timeline append as one unit.
func (s *scanServiceImpl) SubmitScan(ctx context.Context, req *models.SubmitScanRequest, agentID string) (*models.ScanResult, *ServiceError) {
	shipment, err := s.repo.FindByTrackingID(ctx, req.TrackingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Shipment not found"}
		}
		s.logger.Error("Shipment lookup failed", zap.String("tracking_id", req.TrackingID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Unable to look up shipment"}
	}

	now := time.Now().UTC()
	transition, err := ComputeScanTransition(shipment, req.ScanType, req.Location, req.TargetStatus, now)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyTerminal):
			return nil, &ServiceError{StatusCode: 409, Message: "Shipment was already completed"}
		case errors.Is(err, ErrInvalidTarget):
			return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
		default:
			return nil, &ServiceError{StatusCode: 400, Message: err.Error()}
		}
	}

	scan := &models.ShipmentScan{
		ScannedBy: agentID,
		ScanType:  req.ScanType,
		Location:  req.Location,
		Notes:     req.Notes,
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
		Scan:       scan,
		Event:      event,
	}
	if transition.StatusChanged {
		app.Change = &repository.StatusChange{
			From:           shipment.Status,
			To:             transition.NewStatus,
			ActualDelivery: transition.ActualDelivery,
		}
	}

	if err := s.repo.ApplyScan(ctx, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, &ServiceError{StatusCode: 404, Message: "Shipment not found"}
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, &ServiceError{StatusCode: 409, Message: "Shipment was updated by another scan, please rescan"}
		default:
			s.logger.Error("Scan write failed",
				zap.String("tracking_id", req.TrackingID),
				zap.String("scan_type", req.ScanType),
				zap.Error(err),
			)
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to record scan"}
		}
	}

	s.logger.Info("Scan recorded",
		zap.String("tracking_id", shipment.TrackingID),
		zap.String("scan_type", req.ScanType),
		zap.String("agent", agentID),
		zap.Bool("status_changed", transition.StatusChanged),
	)

	s.events.publish(ctx, models.ScanRecordedEvent{
		EventType:  "scan_recorded",
		ShipmentID: shipment.ID.String(),
		TrackingID: shipment.TrackingID,
		ScanType:   req.ScanType,
		ScannedBy:  agentID,
		Location:   req.Location,
		Timestamp:  now,
	})
	if transition.StatusChanged {
		s.events.publish(ctx, models.ShipmentUpdatedEvent{
			EventType:  "shipment_updated",
			ShipmentID: shipment.ID.String(),
			TrackingID: shipment.TrackingID,
			OldStatus:  shipment.Status,
			NewStatus:  transition.NewStatus,
			ChangedBy:  agentID,
			Timestamp:  now,
		})
	}

	return &models.ScanResult{
		TrackingID:    shipment.TrackingID,
		Status:        transition.NewStatus,
		StatusChanged: transition.StatusChanged,
		TimelineEvent: *event,
	}, nil
}
