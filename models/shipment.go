package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shipment status constants. Statuses form a fixed linear order; only the
// display labels vary with route direction.
const (
	StatusBooked             = "booked"
	StatusPickedUp           = "picked_up"
	StatusAtFacility         = "at_facility"
	StatusInTransit          = "in_transit"
	StatusArrivedDestination = "arrived_destination"
	StatusOutForDelivery     = "out_for_delivery"
	StatusDelivered          = "delivered"
	StatusCancelled          = "cancelled" // admin override only, never set by scans
)

// Route constants.
const (
	RouteBDToCA = "bd-to-ca"
	RouteCAToBD = "ca-to-bd"
)

// Scan type constants.
const (
	ScanTypePickup     = "pickup"
	ScanTypeHandover   = "handover"
	ScanTypeCheckpoint = "checkpoint"
	ScanTypeDelivery   = "delivery"
)

// Tracking identifier prefixes. Cargo shipments and flight bookings share
// the WC- namespace.
const (
	TrackingPrefixShipment = "WC-SH-"
	TrackingPrefixFlight   = "WC-FL-"
)

// Shipment is the GORM model persisted in Postgres. The status column is
// mutated only through the transition paths, never directly by handlers.
type Shipment struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TrackingID        string         `gorm:"type:varchar(32);not null;uniqueIndex" json:"tracking_id"`
	Route             string         `gorm:"type:varchar(16);not null" json:"route"` // bd-to-ca | ca-to-bd
	CargoType         string         `gorm:"type:varchar(64)" json:"cargo_type"`
	WeightKg          float64        `gorm:"not null" json:"weight_kg"`
	Packages          int            `gorm:"not null;default:1" json:"packages"`
	SenderName        string         `gorm:"type:varchar(128);not null" json:"sender_name"`
	SenderPhone       string         `gorm:"type:varchar(32)" json:"sender_phone"`
	ReceiverName      string         `gorm:"type:varchar(128);not null" json:"receiver_name"`
	ReceiverPhone     string         `gorm:"type:varchar(32)" json:"receiver_phone"`
	Amount            float64        `json:"amount"`
	Status            string         `gorm:"type:varchar(32);not null;default:'booked'" json:"status"`
	EstimatedDelivery *time.Time     `json:"estimated_delivery,omitempty"`
	ActualDelivery    *time.Time     `json:"actual_delivery,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TimelineEvent is one customer-visible lifecycle milestone for a shipment.
// Rows are append-only; the only permitted update is the current-flag
// handoff, and that happens inside the same transaction that appends the
// successor event. At most one event per shipment carries IsCurrent=true.
type TimelineEvent struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"shipment_id"`
	Status      string    `gorm:"type:varchar(32);not null" json:"status"`
	Description string    `gorm:"type:varchar(512)" json:"description"`
	Location    string    `gorm:"type:varchar(128)" json:"location,omitempty"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	IsCurrent   bool      `gorm:"not null;default:false" json:"is_current"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ShipmentScan is the raw audit record of a physical scan action.
// Write-once: never updated or deleted.
type ShipmentScan struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"shipment_id"`
	ScannedBy  string    `gorm:"type:varchar(128);not null" json:"scanned_by"`
	ScanType   string    `gorm:"type:varchar(16);not null" json:"scan_type"`
	Location   string    `gorm:"type:varchar(128)" json:"location,omitempty"`
	Notes      string    `gorm:"type:varchar(512)" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CreateShipmentRequest is the booking intake payload.
type CreateShipmentRequest struct {
	Route         string  `json:"route" binding:"required,oneof=bd-to-ca ca-to-bd"`
	CargoType     string  `json:"cargo_type" binding:"required"`
	WeightKg      float64 `json:"weight_kg" binding:"required,gt=0"`
	Packages      int     `json:"packages" binding:"omitempty,gt=0"`
	SenderName    string  `json:"sender_name" binding:"required"`
	SenderPhone   string  `json:"sender_phone"`
	ReceiverName  string  `json:"receiver_name" binding:"required"`
	ReceiverPhone string  `json:"receiver_phone"`
	Amount        float64 `json:"amount"`
	ServiceType   string  `json:"service_type" binding:"omitempty,oneof=standard express priority"`
}

// SubmitScanRequest is the agent scan confirmation payload. The acting
// agent's identity comes from the auth token, not the body.
type SubmitScanRequest struct {
	TrackingID   string `json:"tracking_id" binding:"required"`
	ScanType     string `json:"scan_type" binding:"required,oneof=pickup handover checkpoint delivery"`
	Location     string `json:"location"`
	Notes        string `json:"notes"`
	TargetStatus string `json:"target_status"` // optional, handover scans only
}

// ResolveScanRequest carries raw text from the agent's QR scanner.
type ResolveScanRequest struct {
	Data string `json:"data" binding:"required"`
}

// AdminStatusRequest is the back-office status override payload.
type AdminStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// ScanResult is returned to the agent after a successful scan submission.
type ScanResult struct {
	TrackingID    string        `json:"tracking_id"`
	Status        string        `json:"status"`
	StatusChanged bool          `json:"status_changed"`
	TimelineEvent TimelineEvent `json:"timeline_event"`
}

// ShipmentCreatedEvent is published to SNS when a booking is made.
type ShipmentCreatedEvent struct {
	EventType  string    `json:"event_type"`
	ShipmentID string    `json:"shipment_id"`
	TrackingID string    `json:"tracking_id"`
	Route      string    `json:"route"`
	Timestamp  time.Time `json:"timestamp"`
}

// ShipmentUpdatedEvent is published to SNS when a shipment's status changes.
type ShipmentUpdatedEvent struct {
	EventType  string    `json:"event_type"`
	ShipmentID string    `json:"shipment_id"`
	TrackingID string    `json:"tracking_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedBy  string    `json:"changed_by"`
	Timestamp  time.Time `json:"timestamp"`
}

// ScanRecordedEvent is published to SNS for every accepted scan, whether or
// not it moved the status.
type ScanRecordedEvent struct {
	EventType  string    `json:"event_type"`
	ShipmentID string    `json:"shipment_id"`
	TrackingID string    `json:"tracking_id"`
	ScanType   string    `json:"scan_type"`
	ScannedBy  string    `json:"scanned_by"`
	Location   string    `json:"location,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// IsTerminalStatus reports whether no further transitions are accepted.
func IsTerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}
