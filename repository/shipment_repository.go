package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
)

var (
	// ErrNotFound is returned when no shipment matches the lookup key.
	ErrNotFound = errors.New("repository: shipment not found")
	// ErrStatusConflict is returned when the conditional status update
	// matched no row, meaning a concurrent writer changed the shipment
	// between read and write. The caller resubmits against fresh state.
	ErrStatusConflict = errors.New("repository: shipment status changed concurrently")
)

// StatusChange describes a conditional shipment status update. The update
// only applies while the shipment still has status From.
type StatusChange struct {
	From           string
	To             string
	ActualDelivery *time.Time
}

// ScanApplication bundles the effects of one accepted scan or back-office
// action. Scan is nil for back-office writes; Change is nil when the scan
// did not move the status. All non-nil parts commit or roll back together.
type ScanApplication struct {
	ShipmentID uuid.UUID
	Scan       *models.ShipmentScan
	Event      *models.TimelineEvent
	Change     *StatusChange
}

// ShipmentRepository defines data-access operations for shipments and
// their timeline and scan logs.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *models.Shipment, initial *models.TimelineEvent) error
	FindByTrackingID(ctx context.Context, trackingID string) (*models.Shipment, error)
	ExistsByTrackingID(ctx context.Context, trackingID string) (bool, error)
	FindTimeline(ctx context.Context, shipmentID uuid.UUID) ([]models.TimelineEvent, error)
	ApplyScan(ctx context.Context, app *ScanApplication) error
}

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository.
func NewGormShipmentRepository(db *gorm.DB) ShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Create persists a new shipment together with its initial timeline event.
func (r *GormShipmentRepository) Create(ctx context.Context, shipment *models.Shipment, initial *models.TimelineEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shipment).Error; err != nil {
			return err
		}
		initial.ShipmentID = shipment.ID
		return tx.Create(initial).Error
	})
}

func (r *GormShipmentRepository) FindByTrackingID(ctx context.Context, trackingID string) (*models.Shipment, error) {
	var s models.Shipment
	if err := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormShipmentRepository) ExistsByTrackingID(ctx context.Context, trackingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Shipment{}).
		Where("tracking_id = ?", trackingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormShipmentRepository) FindTimeline(ctx context.Context, shipmentID uuid.UUID) ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ApplyScan commits the scan record, the conditional status update and the
// timeline append as one transaction. The status update is a compare-and-
// swap on the previous status, so two agents racing on the same shipment
// cannot both advance it and no event is left with a stale current flag.
func (r *GormShipmentRepository) ApplyScan(ctx context.Context, app *ScanApplication) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if app.Scan != nil {
			app.Scan.ShipmentID = app.ShipmentID
			if err := tx.Create(app.Scan).Error; err != nil {
				return err
			}
		}

		if app.Change != nil {
			updates := map[string]interface{}{"status": app.Change.To}
			if app.Change.ActualDelivery != nil {
				updates["actual_delivery"] = *app.Change.ActualDelivery
			}
			res := tx.Model(&models.Shipment{}).
				Where("id = ? AND status = ?", app.ShipmentID, app.Change.From).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Distinguish a vanished shipment from a racing writer.
				var count int64
				if err := tx.Model(&models.Shipment{}).
					Where("id = ?", app.ShipmentID).
					Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return ErrNotFound
				}
				return ErrStatusConflict
			}
		}

		if app.Event.IsCurrent {
			// Hand the current flag over: the superseded event is done.
			if err := tx.Model(&models.TimelineEvent{}).
				Where("shipment_id = ? AND is_current = ?", app.ShipmentID, true).
				Updates(map[string]interface{}{"is_current": false, "completed": true}).Error; err != nil {
				return err
			}
		}

		app.Event.ShipmentID = app.ShipmentID
		return tx.Create(app.Event).Error
	})
}
