package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
)

// FlightRepository defines data-access operations for flight bookings.
type FlightRepository interface {
	Create(ctx context.Context, booking *models.FlightBooking) error
	FindByBookingRef(ctx context.Context, bookingRef string) (*models.FlightBooking, error)
	ExistsByBookingRef(ctx context.Context, bookingRef string) (bool, error)
}

// GormFlightRepository implements FlightRepository using GORM.
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GormFlightRepository.
func NewGormFlightRepository(db *gorm.DB) FlightRepository {
	return &GormFlightRepository{db: db}
}

func (r *GormFlightRepository) Create(ctx context.Context, booking *models.FlightBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *GormFlightRepository) FindByBookingRef(ctx context.Context, bookingRef string) (*models.FlightBooking, error) {
	var b models.FlightBooking
	if err := r.db.WithContext(ctx).
		Where("booking_ref = ?", bookingRef).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormFlightRepository) ExistsByBookingRef(ctx context.Context, bookingRef string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.FlightBooking{}).
		Where("booking_ref = ?", bookingRef).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
