package models

import "time"

// Tracking view discriminator values.
const (
	TrackingTypeCargo  = "cargo"
	TrackingTypeFlight = "flight"
)

// TimelineStep is one entry in the customer-facing timeline. Steps not yet
// reached are included as placeholders so the full expected journey is
// always visible.
type TimelineStep struct {
	Status      string     `json:"status"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Completed   bool       `json:"completed"`
	Current     bool       `json:"current"`
}

// CargoTrackingView is the read-only projection served to customers for a
// cargo shipment.
type CargoTrackingView struct {
	Type              string         `json:"type"` // always "cargo"
	TrackingID        string         `json:"tracking_id"`
	Route             string         `json:"route"`
	CargoType         string         `json:"cargo_type"`
	WeightKg          float64        `json:"weight_kg"`
	Packages          int            `json:"packages"`
	SenderName        string         `json:"sender_name"`
	ReceiverName      string         `json:"receiver_name"`
	Amount            float64        `json:"amount"`
	CurrentStatus     string         `json:"current_status"`
	BookedAt          time.Time      `json:"booked_at"`
	EstimatedDelivery *time.Time     `json:"estimated_delivery,omitempty"`
	ActualDelivery    *time.Time     `json:"actual_delivery,omitempty"`
	Timeline          []TimelineStep `json:"timeline"`
}

// FlightTrackingView is the read-only projection for a flight booking.
type FlightTrackingView struct {
	Type         string      `json:"type"` // always "flight"
	BookingRef   string      `json:"booking_ref"`
	PNR          string      `json:"pnr"`
	Status       string      `json:"status"`
	Airline      string      `json:"airline"`
	FlightNumber string      `json:"flight_number"`
	Origin       string      `json:"origin"`
	Destination  string      `json:"destination"`
	DepartureAt  time.Time   `json:"departure_at"`
	ArrivalAt    time.Time   `json:"arrival_at"`
	CabinClass   string      `json:"cabin_class"`
	Passengers   []Passenger `json:"passengers"`
	TotalAmount  float64     `json:"total_amount"`
}

// TrackingView is a tagged union over the two tracking variants. Exactly
// one of Cargo or Flight is set, matching Type.
type TrackingView struct {
	Type   string              `json:"type"`
	Cargo  *CargoTrackingView  `json:"cargo,omitempty"`
	Flight *FlightTrackingView `json:"flight,omitempty"`
}
