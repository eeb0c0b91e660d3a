package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/iammarkzubarkusa-prog/wing-way-connect/models"
	"github.com/iammarkzubarkusa-prog/wing-way-connect/repository"
)

func TestFlightCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFlightRepository(gormDB)

	booking := &models.FlightBooking{
		BookingRef:   "WC-FL-20891",
		Status:       models.FlightStatusConfirmed,
		Airline:      "Emirates",
		FlightNumber: "EK585",
		Origin:       "DAC",
		Destination:  "YYZ",
		DepartureAt:  time.Now().Add(72 * time.Hour),
		ArrivalAt:    time.Now().Add(94 * time.Hour),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "flight_bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), booking)
	assert.NoError(t, err)
}

func TestFindByBookingRef_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFlightRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "booking_ref", "status", "airline", "flight_number", "origin", "destination", "departure_at", "arrival_at", "created_at", "updated_at"}).
		AddRow(uuid.New(), "WC-FL-20891", models.FlightStatusConfirmed, "Emirates", "EK585", "DAC", "YYZ", now, now.Add(22*time.Hour), now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "flight_bookings"`)).
		WithArgs("WC-FL-20891", 1).
		WillReturnRows(rows)

	b, err := repo.FindByBookingRef(context.Background(), "WC-FL-20891")
	assert.NoError(t, err)
	assert.Equal(t, "EK585", b.FlightNumber)
}

func TestFindByBookingRef_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFlightRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "flight_bookings"`)).
		WithArgs("WC-FL-99999", 1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	b, err := repo.FindByBookingRef(context.Background(), "WC-FL-99999")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, b)
}

func TestExistsByBookingRef(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFlightRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "flight_bookings"`)).
		WithArgs("WC-FL-20891").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.ExistsByBookingRef(context.Background(), "WC-FL-20891")
	assert.NoError(t, err)
	assert.False(t, taken)
}
