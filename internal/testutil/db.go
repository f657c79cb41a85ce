package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/khoulefall/padelcourt/internal/db"
	dbgen "github.com/khoulefall/padelcourt/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedUser inserts a user with a fixed password hash and returns the row.
func SeedUser(t *testing.T, database *db.DB, email, role string) dbgen.User {
	t.Helper()

	user, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{
		Email:        email,
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Name:         "Test User",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

// SeedCourt inserts an available court and returns the row.
func SeedCourt(t *testing.T, database *db.DB, name string, pricePerHour int64) dbgen.Court {
	t.Helper()

	court, err := database.Queries.CreateCourt(context.Background(), dbgen.CreateCourtParams{
		Name:         name,
		PricePerHour: pricePerHour,
		Status:       "available",
	})
	if err != nil {
		t.Fatalf("seed court %s: %v", name, err)
	}
	return court
}

// SeedReservation inserts a reservation with the given status and returns the row.
func SeedReservation(t *testing.T, database *db.DB, courtID, userID int64, start time.Time, hours int, totalPrice int64, status string) dbgen.Reservation {
	t.Helper()

	reservation, err := database.Queries.CreateReservation(context.Background(), dbgen.CreateReservationParams{
		CourtID:    courtID,
		UserID:     userID,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(hours) * time.Hour),
		TotalPrice: totalPrice,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	return reservation
}

// SeedPayment inserts a payment for a reservation and returns the row.
func SeedPayment(t *testing.T, database *db.DB, reservationID, userID, amount int64, method, status string) dbgen.Payment {
	t.Helper()

	payment, err := database.Queries.CreatePayment(context.Background(), dbgen.CreatePaymentParams{
		ReservationID: reservationID,
		UserID:        userID,
		Amount:        amount,
		Currency:      "XOF",
		Method:        method,
		Status:        status,
	})
	if err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return payment
}
