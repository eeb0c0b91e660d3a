package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flight booking statuses. Flight bookings are a simple record with no
// multi-writer lifecycle; there is no scan path into them.
const (
	FlightStatusConfirmed = "confirmed"
	FlightStatusCancelled = "cancelled"
)

// FlightBooking is the GORM model for an air-ticket booking. It shares the
// WC- tracking namespace with shipments (WC-FL-NNNNN).
type FlightBooking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BookingRef    string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"booking_ref"`
	PNR           string    `gorm:"type:varchar(16)" json:"pnr"`
	Status        string    `gorm:"type:varchar(32);not null;default:'confirmed'" json:"status"`
	Airline       string    `gorm:"type:varchar(64);not null" json:"airline"`
	FlightNumber  string    `gorm:"type:varchar(16);not null" json:"flight_number"`
	Origin        string    `gorm:"type:varchar(64);not null" json:"origin"`
	Destination   string    `gorm:"type:varchar(64);not null" json:"destination"`
	DepartureAt   time.Time `gorm:"not null" json:"departure_at"`
	ArrivalAt     time.Time `gorm:"not null" json:"arrival_at"`
	CabinClass    string    `gorm:"type:varchar(32)" json:"cabin_class"`
	// Passenger names and ticket numbers, stored as a JSON array.
	PassengersJSON string         `gorm:"type:jsonb" json:"-"`
	TotalAmount    float64        `json:"total_amount"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Passenger is one traveller on a flight booking.
type Passenger struct {
	Name     string `json:"name"`
	TicketNo string `json:"ticket_no"`
}

// CreateFlightBookingRequest is the flight booking intake payload.
type CreateFlightBookingRequest struct {
	PNR          string      `json:"pnr"`
	Airline      string      `json:"airline" binding:"required"`
	FlightNumber string      `json:"flight_number" binding:"required"`
	Origin       string      `json:"origin" binding:"required"`
	Destination  string      `json:"destination" binding:"required"`
	DepartureAt  time.Time   `json:"departure_at" binding:"required"`
	ArrivalAt    time.Time   `json:"arrival_at" binding:"required"`
	CabinClass   string      `json:"cabin_class"`
	Passengers   []Passenger `json:"passengers" binding:"required,min=1,dive"`
	TotalAmount  float64     `json:"total_amount"`
}
